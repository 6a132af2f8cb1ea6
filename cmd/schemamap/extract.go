package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemamap"
)

type extractFlags struct {
	dbURL      string
	mysqlURL   string
	sqlitePath string
	schemaName string
}

func newExtractCmd() *cobra.Command {
	var (
		src extractFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Dump and parse the schema of a live database",
		Long:  `Extract reads the CREATE TABLE statements of a PostgreSQL, MySQL or SQLite database and renders them like the parse command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}

			url, err := src.databaseURL()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			result, err := schemamap.ExtractSchema(ctx, url, &schemamap.Options{
				Tables:        parseTableList(out.tables),
				ExcludeTables: parseTableList(out.exclude),
				SchemaName:    src.schemaName,
			})
			if err != nil {
				return err
			}
			reportDiagnostics(cmd, result.Errors)

			return out.write(cmd, &result)
		},
	}

	cmd.Flags().StringVar(&src.dbURL, "db-url", "", "PostgreSQL connection string")
	cmd.Flags().StringVar(&src.mysqlURL, "mysql-url", "", "MySQL connection string")
	cmd.Flags().StringVar(&src.sqlitePath, "sqlite", "", "SQLite database file path")
	cmd.Flags().StringVarP(&src.schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL)")
	out.register(cmd)
	return cmd
}

// databaseURL turns the database flags into a schemamap connection URL
func (f *extractFlags) databaseURL() (string, error) {
	dbCount := 0
	for _, v := range []string{f.dbURL, f.mysqlURL, f.sqlitePath} {
		if v != "" {
			dbCount++
		}
	}
	if dbCount == 0 {
		return "", fmt.Errorf("one of --db-url, --mysql-url, or --sqlite must be specified")
	}
	if dbCount > 1 {
		return "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	switch {
	case f.sqlitePath != "":
		return "sqlite://" + f.sqlitePath, nil
	case f.mysqlURL != "":
		if strings.HasPrefix(f.mysqlURL, "mysql://") {
			return f.mysqlURL, nil
		}
		return "mysql://" + f.mysqlURL, nil
	default:
		return f.dbURL, nil
	}
}
