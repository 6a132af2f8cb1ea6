package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/schemamap/internal/schema"
)

// MultiFileFormatter writes a parse result to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes _overview plus one file per table
func (f *MultiFileFormatter) Format(r *schema.ParseResult) error {
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeOverview(r); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, table := range r.Tables {
		if err := f.writeTableFile(table, r); err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", table.Name, err)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeOverview(r *schema.ParseResult) error {
	ext := f.getFileExtension()
	file, err := os.Create(filepath.Join(f.OutputDir, "_overview"+ext))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	markdown := f.OutputFormat == FormatMarkdown
	if markdown {
		_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(file, "Each table has a corresponding file: `<table_name>%s`\n\n", ext)
		_, _ = fmt.Fprintf(file, "## Tables\n\n")
	} else {
		_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW\n")
		_, _ = fmt.Fprintf(file, "Each table has a file: <table_name>%s\n\n", ext)
	}

	sortedTables := make([]schema.Table, len(r.Tables))
	copy(sortedTables, r.Tables)
	sort.Slice(sortedTables, func(i, j int) bool {
		return sortedTables[i].Name < sortedTables[j].Name
	})

	for _, table := range sortedTables {
		if markdown {
			_, _ = fmt.Fprintf(file, "- **%s**", table.Name)
		} else {
			_, _ = fmt.Fprintf(file, "%s", table.Name)
		}

		if targets := referencedTables(r.RelationshipsFrom(table.Name)); len(targets) > 0 {
			_, _ = fmt.Fprintf(file, " (references: %s)", strings.Join(targets, ", "))
		}
		_, _ = fmt.Fprintf(file, "\n")
	}

	return file.Close()
}

// writeTableFile writes a single table to its own file
func (f *MultiFileFormatter) writeTableFile(table schema.Table, r *schema.ParseResult) error {
	file, err := os.Create(filepath.Join(f.OutputDir, fileName(table.Name)+f.getFileExtension()))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	outgoing := r.RelationshipsFrom(table.Name)
	incoming := r.RelationshipsTo(table.Name)

	if f.OutputFormat == FormatMarkdown {
		md := NewMarkdownFormatter(file)
		md.FormatTable(table)

		if len(outgoing) > 0 {
			_, _ = fmt.Fprintf(file, "### References\n\n")
			for _, rel := range outgoing {
				_, _ = fmt.Fprintf(file, "- %s → %s.%s%s\n", rel.FromColumn, rel.ToTable, rel.ToColumn, actionSuffix(rel))
			}
			_, _ = fmt.Fprintln(file)
		}

		if len(incoming) > 0 {
			_, _ = fmt.Fprintf(file, "### Referenced by\n\n")
			for _, rel := range incoming {
				_, _ = fmt.Fprintf(file, "- %s.%s → %s%s\n", rel.FromTable, rel.FromColumn, rel.ToColumn, actionSuffix(rel))
			}
			_, _ = fmt.Fprintln(file)
		}
		return file.Close()
	}

	NewTextFormatter(file).FormatTable(table, outgoing)
	if len(incoming) > 0 {
		_, _ = fmt.Fprintln(file)
		_, _ = fmt.Fprintln(file, "  REFERENCED BY:")
		for _, rel := range incoming {
			_, _ = fmt.Fprintf(file, "    %s.%s → %s\n", rel.FromTable, rel.FromColumn, rel.ToColumn)
		}
	}
	return file.Close()
}

// referencedTables returns the distinct target tables in declaration order
func referencedTables(rels []schema.Relationship) []string {
	seen := make(map[string]bool)
	var targets []string
	for _, rel := range rels {
		if !seen[rel.ToTable] {
			seen[rel.ToTable] = true
			targets = append(targets, rel.ToTable)
		}
	}
	return targets
}

// fileName keeps table names with path separators inside the output directory
func fileName(table string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(table)
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
