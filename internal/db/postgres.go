package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// PostgresSource renders CREATE TABLE statements from the PostgreSQL catalog
type PostgresSource struct {
	conn   *pgx.Conn
	schema string
}

// NewPostgresSource connects to PostgreSQL. An empty schemaName means "public".
func NewPostgresSource(ctx context.Context, connString, schemaName string) (*PostgresSource, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if schemaName == "" {
		schemaName = "public"
	}
	return &PostgresSource{conn: conn, schema: schemaName}, nil
}

// Close closes the database connection
func (s *PostgresSource) Close() error {
	return s.conn.Close(context.Background())
}

// DumpDDL renders every requested table
func (s *PostgresSource) DumpDDL(ctx context.Context, tables []string) (string, error) {
	tableNames, err := s.getTableNames(ctx, tables)
	if err != nil {
		return "", fmt.Errorf("failed to get table names: %w", err)
	}

	var b strings.Builder
	for _, tableName := range tableNames {
		stmt, err := s.renderTable(ctx, tableName)
		if err != nil {
			return "", fmt.Errorf("failed to render table %s: %w", tableName, err)
		}
		b.WriteString(stmt)
	}

	log.WithFields(log.Fields{"schema": s.schema, "tables": len(tableNames)}).Debug("dumped postgres ddl")
	return b.String(), nil
}

// renderTable builds a CREATE TABLE statement from columns and constraints
func (s *PostgresSource) renderTable(ctx context.Context, tableName string) (string, error) {
	columns, err := s.columnDefinitions(ctx, tableName)
	if err != nil {
		return "", fmt.Errorf("failed to extract columns: %w", err)
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("table %s not found in schema %s", tableName, s.schema)
	}

	pk, err := s.primaryKey(ctx, tableName)
	if err != nil {
		return "", fmt.Errorf("failed to extract primary key: %w", err)
	}

	fks, err := s.foreignKeys(ctx, tableName)
	if err != nil {
		return "", fmt.Errorf("failed to extract foreign keys: %w", err)
	}

	uniques, err := s.uniqueIndexes(ctx, tableName)
	if err != nil {
		return "", fmt.Errorf("failed to extract indexes: %w", err)
	}

	clauses := columns
	if len(pk) > 0 {
		clauses = append(clauses, fmt.Sprintf("PRIMARY KEY (%s)", quoteIdents(pk)))
	}
	clauses = append(clauses, uniques...)
	clauses = append(clauses, fks...)

	return terminate(fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoteIdent(tableName), strings.Join(clauses, ",\n  "))), nil
}
