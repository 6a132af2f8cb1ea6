package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemamap/internal/schema"
)

// TextFormatter formats a parse result as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the tables in compact text format
func (f *TextFormatter) Format(r *schema.ParseResult) error {
	for i, table := range r.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.FormatTable(table, r.RelationshipsFrom(table.Name))
	}
	return nil
}

// FormatTable writes one table with its outgoing relationships
func (f *TextFormatter) FormatTable(table schema.Table, rels []schema.Relationship) {
	pkStr := ""
	if pk := table.PrimaryKey(); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s\n", table.Name, pkStr)

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", formatTextColumn(col))
	}

	if len(rels) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  RELATIONS:")
		for _, rel := range rels {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s.%s%s\n", rel.FromColumn, rel.ToTable, rel.ToColumn, actionSuffix(rel))
		}
	}

	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  INDEXES:")
		for _, idx := range table.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " UNIQUE"
			}
			name := idx.Name
			if name != "" {
				name += " "
			}
			_, _ = fmt.Fprintf(f.writer, "    %s(%s)%s\n", name, strings.Join(idx.Columns, ", "), unique)
		}
	}
}

func formatTextColumn(col schema.Column) string {
	parts := []string{col.Name + ":", col.Type}

	// PK is already in the table header
	for _, c := range col.Constraints {
		if c != schema.ConstraintPrimaryKey {
			parts = append(parts, c)
		}
	}

	if col.DefaultValue != nil {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}

	return strings.Join(parts, " ")
}
