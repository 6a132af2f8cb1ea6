package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
)

// MySQLSource dumps tables with SHOW CREATE TABLE
type MySQLSource struct {
	db         *sql.DB
	schemaName string
}

// NewMySQLSource connects to MySQL. An empty schemaName is taken from the DSN.
func NewMySQLSource(ctx context.Context, dsn, schemaName string) (*MySQLSource, error) {
	if schemaName == "" {
		name, err := ParseDatabaseName(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to determine database name: %w", err)
		}
		schemaName = name
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLSource{db: db, schemaName: schemaName}, nil
}

// ParseDatabaseName returns the database name of a go-sql-driver DSN
// such as user:pass@tcp(host:3306)/shop?parseTime=true
func ParseDatabaseName(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("no database name in MySQL DSN")
	}
	return cfg.DBName, nil
}

// Close closes the database connection
func (s *MySQLSource) Close() error {
	return s.db.Close()
}

// DumpDDL returns the SHOW CREATE TABLE output of every requested table
func (s *MySQLSource) DumpDDL(ctx context.Context, tables []string) (string, error) {
	tableNames, err := s.getTableNames(ctx, tables)
	if err != nil {
		return "", fmt.Errorf("failed to get table names: %w", err)
	}

	var b strings.Builder
	for _, tableName := range tableNames {
		var name, stmt string
		query := fmt.Sprintf("SHOW CREATE TABLE %s.%s", quoteMySQLIdent(s.schemaName), quoteMySQLIdent(tableName))
		if err := s.db.QueryRowContext(ctx, query).Scan(&name, &stmt); err != nil {
			return "", fmt.Errorf("failed to show create table %s: %w", tableName, err)
		}
		b.WriteString(terminate(stmt))
	}

	log.WithFields(log.Fields{"schema": s.schemaName, "tables": len(tableNames)}).Debug("dumped mysql ddl")
	return b.String(), nil
}

// getTableNames returns the list of tables to dump
func (s *MySQLSource) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := s.db.QueryContext(ctx, query, s.schemaName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
