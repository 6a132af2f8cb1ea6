package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemamap"
)

func newParseCmd() *cobra.Command {
	var (
		out                outputFlags
		allowUnterminated  bool
		reportUnrecognized bool
		mysqlCheck         bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse CREATE TABLE statements from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}

			sql, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			result := schemamap.ParseSQL(sql, &schemamap.Options{
				Tables:             parseTableList(out.tables),
				ExcludeTables:      parseTableList(out.exclude),
				AllowUnterminated:  allowUnterminated,
				ReportUnrecognized: reportUnrecognized,
				MySQLCheck:         mysqlCheck,
			})
			reportDiagnostics(cmd, result.Errors)

			return out.write(cmd, &result)
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&allowUnterminated, "allow-unterminated", false, "Accept a CREATE TABLE without a trailing semicolon")
	cmd.Flags().BoolVar(&reportUnrecognized, "report-unrecognized", false, "Report clauses that are neither columns nor constraints")
	cmd.Flags().BoolVar(&mysqlCheck, "mysql-check", false, "Validate every statement with a MySQL grammar")
	return cmd
}

// readInput reads the named file, or stdin when no file or "-" is given
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(b), nil
}
