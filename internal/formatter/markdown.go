package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemamap/internal/schema"
)

// MarkdownFormatter formats a parse result as markdown documentation
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes every table followed by the relationship list
func (f *MarkdownFormatter) Format(r *schema.ParseResult) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema Documentation")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range r.Tables {
		f.FormatTable(table)
	}

	if len(r.Relationships) > 0 {
		_, _ = fmt.Fprintln(f.writer, "## Relationships")
		_, _ = fmt.Fprintln(f.writer)
		for _, rel := range r.Relationships {
			_, _ = fmt.Fprintf(f.writer, "- **%s.%s** → **%s.%s**%s\n",
				rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, actionSuffix(rel))
		}
		_, _ = fmt.Fprintln(f.writer)
	}
	return nil
}

// FormatTable writes a single table section (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatTable(table schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name)
	f.FormatColumns(table.Columns)
	f.FormatIndexes(table.Indexes)
}

// FormatColumns writes the column table
func (f *MarkdownFormatter) FormatColumns(columns []schema.Column) {
	_, _ = fmt.Fprintln(f.writer, "| Column | Type | Nullable | Default | Constraints |")
	_, _ = fmt.Fprintln(f.writer, "|--------|------|----------|---------|-------------|")

	for _, col := range columns {
		nullable := "No"
		if col.Nullable {
			nullable = "Yes"
		}
		def := "-"
		if col.DefaultValue != nil {
			def = *col.DefaultValue
		}
		constraints := strings.Join(markdownConstraints(col), ", ")
		if constraints == "" {
			constraints = "-"
		}
		_, _ = fmt.Fprintf(f.writer, "| %s | %s | %s | %s | %s |\n",
			escapeCell(col.Name), escapeCell(col.Type), nullable, escapeCell(def), escapeCell(constraints))
	}
	_, _ = fmt.Fprintln(f.writer)
}

// FormatIndexes writes the index list, if any
func (f *MarkdownFormatter) FormatIndexes(indexes []schema.Index) {
	if len(indexes) == 0 {
		return
	}
	_, _ = fmt.Fprintln(f.writer, "### Indexes")
	_, _ = fmt.Fprintln(f.writer)
	for _, idx := range indexes {
		name := idx.Name
		if name == "" {
			name = "(unnamed)"
		}
		if idx.IsUnique {
			_, _ = fmt.Fprintf(f.writer, "- %s on (%s), unique\n", name, strings.Join(idx.Columns, ", "))
		} else {
			_, _ = fmt.Fprintf(f.writer, "- %s on (%s)\n", name, strings.Join(idx.Columns, ", "))
		}
	}
	_, _ = fmt.Fprintln(f.writer)
}

// markdownConstraints lists PK and FK markers first, then the remaining labels
func markdownConstraints(col schema.Column) []string {
	var out []string
	if col.IsPrimaryKey {
		out = append(out, "PK")
	}
	if col.IsForeignKey && col.References != nil {
		out = append(out, fmt.Sprintf("FK → %s.%s", col.References.Table, col.References.Column))
	}
	for _, c := range col.Constraints {
		if c != schema.ConstraintPrimaryKey {
			out = append(out, c)
		}
	}
	return out
}

func actionSuffix(rel schema.Relationship) string {
	var s string
	if rel.OnDelete != "" {
		s += fmt.Sprintf(" (ON DELETE %s)", rel.OnDelete)
	}
	if rel.OnUpdate != "" {
		s += fmt.Sprintf(" (ON UPDATE %s)", rel.OnUpdate)
	}
	return s
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
