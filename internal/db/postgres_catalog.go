package db

import (
	"context"
	"fmt"
	"strings"
)

const varcharType = "varchar"

// getTableNames returns the list of tables to dump
func (s *PostgresSource) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := s.conn.Query(ctx, query, s.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// columnDefinitions returns one rendered column definition per column
func (s *PostgresSource) columnDefinitions(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.udt_name,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.is_nullable,
			c.column_default,
			c.is_identity
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := s.conn.Query(ctx, query, s.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var (
			name, dataType, udtName, nullable, identity string
			charMaxLength, precision, scale             *int
			defaultVal                                  *string
		)
		if err := rows.Scan(&name, &dataType, &udtName, &charMaxLength, &precision, &scale, &nullable, &defaultVal, &identity); err != nil {
			return nil, err
		}

		parts := []string{quoteIdent(name), normalizePostgresType(dataType, udtName, charMaxLength, precision, scale)}
		if identity == "YES" {
			parts = append(parts, "GENERATED BY DEFAULT AS IDENTITY")
		}
		if nullable == "NO" {
			parts = append(parts, "NOT NULL")
		}
		if defaultVal != nil {
			parts = append(parts, "DEFAULT "+*defaultVal)
		}
		defs = append(defs, strings.Join(parts, " "))
	}

	return defs, rows.Err()
}

// normalizePostgresType maps verbose SQL type names to commonly-used PostgreSQL equivalents
func normalizePostgresType(dataType, udtName string, charMaxLength, precision, scale *int) string {
	switch dataType {
	case "timestamp with time zone":
		return "timestamptz"
	case "timestamp without time zone":
		return "timestamp"
	case "time with time zone":
		return "timetz"
	case "time without time zone":
		return "time"
	case "character varying":
		if charMaxLength != nil {
			return fmt.Sprintf("varchar(%d)", *charMaxLength)
		}
		return varcharType
	case "character":
		if charMaxLength != nil {
			return fmt.Sprintf("char(%d)", *charMaxLength)
		}
		return "char"
	case "numeric":
		if precision != nil && scale != nil {
			return fmt.Sprintf("numeric(%d,%d)", *precision, *scale)
		}
		return "numeric"
	case "ARRAY":
		// udt_name has underscore prefix for arrays (e.g., "_text" for text[], "_int4" for integer[])
		if len(udtName) > 0 && udtName[0] == '_' {
			return normalizeUdtName(udtName[1:]) + "[]"
		}
		return "array"
	case "USER-DEFINED":
		return udtName
	default:
		return dataType
	}
}

// normalizeUdtName converts PostgreSQL internal type names to more readable forms
func normalizeUdtName(udtName string) string {
	switch udtName {
	case "int4":
		return "integer"
	case "int8":
		return "bigint"
	case "int2":
		return "smallint"
	case "float4":
		return "real"
	case "float8":
		return "double precision"
	case "bool":
		return "boolean"
	case varcharType:
		return varcharType
	default:
		return udtName
	}
}

// primaryKey returns the primary key columns in key order
func (s *PostgresSource) primaryKey(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.table_schema = $1
			AND tc.table_name = $2
			AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`

	rows, err := s.conn.Query(ctx, query, s.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pk []string
	for rows.Next() {
		var colName string
		if err := rows.Scan(&colName); err != nil {
			return nil, err
		}
		pk = append(pk, colName)
	}

	return pk, rows.Err()
}

// referentialActions maps pg_constraint action codes to SQL
var referentialActions = map[string]string{
	"r": "RESTRICT",
	"c": "CASCADE",
	"n": "SET NULL",
	"d": "SET DEFAULT",
}

// foreignKeys returns rendered FOREIGN KEY clauses. Composite keys keep their
// column pairing through unnest ... WITH ORDINALITY.
func (s *PostgresSource) foreignKeys(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT
			con.conname,
			array_agg(a.attname::text ORDER BY k.ord) AS columns,
			ref.relname AS ref_table,
			array_agg(ra.attname::text ORDER BY k.ord) AS ref_columns,
			con.confdeltype::text,
			con.confupdtype::text
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_class ref ON ref.oid = con.confrelid
		CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(attnum, refattnum, ord)
		JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
		JOIN pg_attribute ra ON ra.attrelid = con.confrelid AND ra.attnum = k.refattnum
		WHERE con.contype = 'f' AND n.nspname = $1 AND c.relname = $2
		GROUP BY con.conname, ref.relname, con.confdeltype, con.confupdtype
		ORDER BY con.conname
	`

	rows, err := s.conn.Query(ctx, query, s.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []string
	for rows.Next() {
		var (
			name, refTable, onDelete, onUpdate string
			columns, refColumns                []string
		)
		if err := rows.Scan(&name, &columns, &refTable, &refColumns, &onDelete, &onUpdate); err != nil {
			return nil, err
		}

		clause := fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteIdent(name), quoteIdents(columns), quoteIdent(refTable), quoteIdents(refColumns))
		if action, ok := referentialActions[onDelete]; ok {
			clause += " ON DELETE " + action
		}
		if action, ok := referentialActions[onUpdate]; ok {
			clause += " ON UPDATE " + action
		}
		clauses = append(clauses, clause)
	}

	return clauses, rows.Err()
}

// uniqueIndexes returns rendered UNIQUE constraints for unique, non primary indexes
func (s *PostgresSource) uniqueIndexes(ctx context.Context, tableName string) ([]string, error) {
	query := `
		SELECT
			i.relname AS index_name,
			array_agg(a.attname::text ORDER BY array_position(ix.indkey, a.attnum)) AS column_names
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
			AND ix.indisunique
			AND NOT ix.indisprimary
		GROUP BY i.relname
		ORDER BY i.relname
	`

	rows, err := s.conn.Query(ctx, query, s.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clauses []string
	for rows.Next() {
		var name string
		var columns []string
		if err := rows.Scan(&name, &columns); err != nil {
			return nil, err
		}
		clauses = append(clauses, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)", quoteIdent(name), quoteIdents(columns)))
	}

	return clauses, rows.Err()
}
