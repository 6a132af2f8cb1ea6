package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemamap/internal/logging"
)

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	rootCmd := &cobra.Command{
		Use:   "schemamap",
		Short: "Map SQL DDL to tables, columns and relationships",
		Long: `SchemaMap parses CREATE TABLE statements, from files or dumped from PostgreSQL,
MySQL or SQLite databases, and renders the resulting schema as markdown, text,
TypeScript interfaces or JSON. It can also serve the parser over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel, logFormat, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(newParseCmd(), newExtractCmd(), newServeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
