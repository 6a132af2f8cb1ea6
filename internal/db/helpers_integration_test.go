//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"

	"github.com/tordrt/schemamap/internal/db"
	"github.com/tordrt/schemamap/internal/ddl"
	"github.com/tordrt/schemamap/internal/schema"
)

// dumpAndParse dumps the requested tables and parses the result
func dumpAndParse(t *testing.T, src db.Source, tables []string) schema.ParseResult {
	t.Helper()

	text, err := src.DumpDDL(context.Background(), tables)
	if err != nil {
		t.Fatalf("Failed to dump DDL: %v", err)
	}

	result := ddl.Parse(text)
	if len(result.Errors) > 0 {
		t.Errorf("Unexpected diagnostics: %v\n%s", result.Errors, text)
	}
	return result
}

// verifyTablesExist checks that exactly the expected tables were parsed
func verifyTablesExist(t *testing.T, r schema.ParseResult, expectedTables []string) {
	t.Helper()

	if len(r.Tables) != len(expectedTables) {
		t.Errorf("Expected %d tables, got %d", len(expectedTables), len(r.Tables))
	}

	for _, tableName := range expectedTables {
		if _, ok := r.Table(tableName); !ok {
			t.Errorf("Expected table %s not found", tableName)
		}
	}
}

// verifyColumns checks that expected columns exist in a table
func verifyColumns(t *testing.T, table *schema.Table, expectedColumns []string) {
	t.Helper()

	for _, colName := range expectedColumns {
		if _, ok := table.Column(colName); !ok {
			t.Errorf("Expected column %s not found in %s table", colName, table.Name)
		}
	}
}

// verifyPrimaryKey checks that a table has the expected primary key
func verifyPrimaryKey(t *testing.T, table *schema.Table, expectedPK []string) {
	t.Helper()

	pk := table.PrimaryKey()
	if len(pk) != len(expectedPK) {
		t.Errorf("Expected primary key %v, got %v", expectedPK, pk)
		return
	}
	for i := range expectedPK {
		if pk[i] != expectedPK[i] {
			t.Errorf("Expected primary key %v, got %v", expectedPK, pk)
			return
		}
	}
}

// verifyForeignKey checks that a relationship from table.column to target exists
func verifyForeignKey(t *testing.T, r schema.ParseResult, tableName, sourceColumn, targetTable string) {
	t.Helper()

	for _, rel := range r.RelationshipsFrom(tableName) {
		if rel.FromColumn == sourceColumn && rel.ToTable == targetTable {
			return
		}
	}
	t.Errorf("Expected foreign key relationship from %s.%s to %s not found", tableName, sourceColumn, targetTable)
}

// verifyUniqueIndex checks that a unique index covers the given column
func verifyUniqueIndex(t *testing.T, table *schema.Table, column string) {
	t.Helper()

	for _, idx := range table.Indexes {
		if idx.IsUnique && len(idx.Columns) == 1 && idx.Columns[0] == column {
			return
		}
	}
	if col, ok := table.Column(column); ok && col.HasConstraint(schema.ConstraintUnique) {
		return
	}
	t.Errorf("Expected %s.%s to be unique", table.Name, column)
}
