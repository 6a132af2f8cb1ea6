// Package db dumps CREATE TABLE statements from live databases so they can be
// fed to the DDL parser. Only catalog queries are executed.
package db

import (
	"context"
	"strings"
)

// Source produces DDL text for the tables of a database
type Source interface {
	// DumpDDL returns one CREATE TABLE statement per table, each terminated by
	// a semicolon. An empty tables slice dumps every table.
	DumpDDL(ctx context.Context, tables []string) (string, error)
	Close() error
}

// quoteIdent quotes a PostgreSQL or SQLite identifier
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteMySQLIdent quotes a MySQL identifier
func quoteMySQLIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func quoteIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// terminate makes sure a dumped statement ends with a semicolon and a blank line
func terminate(stmt string) string {
	stmt = strings.TrimRight(stmt, " \t\r\n;")
	return stmt + ";\n\n"
}
