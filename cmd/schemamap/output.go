package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemamap"
	"github.com/tordrt/schemamap/internal/schema"
)

// outputFlags are shared by the parse and extract commands
type outputFlags struct {
	outputFile     string
	outputDir      string
	format         string
	tables         string
	exclude        string
	splitThreshold int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "d", "", "Output directory for multi-file output")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text, markdown, typescript or json")
	cmd.Flags().StringVarP(&o.tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	cmd.Flags().StringVar(&o.exclude, "exclude", "", "Tables to leave out (comma-separated, optional)")
	cmd.Flags().IntVar(&o.splitThreshold, "split-threshold", 0, "Split into multiple files when table count exceeds this (requires --output-dir)")
}

func (o *outputFlags) validate() error {
	if o.outputDir != "" && o.outputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}
	return nil
}

// write renders the result to a directory, a file or stdout
func (o *outputFlags) write(cmd *cobra.Command, result *schema.ParseResult) error {
	shouldSplit := o.outputDir != "" && (o.splitThreshold == 0 || len(result.Tables) > o.splitThreshold)
	if shouldSplit {
		if err := schemamap.FormatResult(result, &schemamap.OutputOptions{OutputDir: o.outputDir, Format: o.format}); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	}

	var writer io.Writer = cmd.OutOrStdout()
	if o.outputFile != "" {
		f, err := os.Create(o.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	if err := schemamap.FormatResult(result, &schemamap.OutputOptions{Writer: writer, Format: o.format}); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// reportDiagnostics prints parser diagnostics to stderr
func reportDiagnostics(cmd *cobra.Command, diagnostics []string) {
	for _, msg := range diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
	}
}

// parseTableList splits a comma-separated table list
func parseTableList(tables string) []string {
	if tables == "" {
		return nil
	}

	var tableList []string
	for _, t := range strings.Split(tables, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tableList = append(tableList, t)
		}
	}
	return tableList
}
