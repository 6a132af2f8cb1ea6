package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

// SQLiteSource reads the stored CREATE TABLE text from sqlite_master
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// NewSQLiteSource opens the database file at path
func NewSQLiteSource(ctx context.Context, path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteSource{db: db, path: path}, nil
}

// Close closes the database connection
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// DumpDDL returns the stored statements in table name order, or in the
// requested order when tables is not empty
func (s *SQLiteSource) DumpDDL(ctx context.Context, tables []string) (string, error) {
	var b strings.Builder

	if len(tables) == 0 {
		query := `
			SELECT sql
			FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL
			ORDER BY name
		`
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return "", fmt.Errorf("failed to list tables: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var stmt string
			if err := rows.Scan(&stmt); err != nil {
				return "", err
			}
			b.WriteString(terminate(stmt))
		}
		if err := rows.Err(); err != nil {
			return "", err
		}
	} else {
		for _, tableName := range tables {
			var stmt string
			err := s.db.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, tableName).Scan(&stmt)
			if errors.Is(err, sql.ErrNoRows) {
				return "", fmt.Errorf("table %s not found", tableName)
			}
			if err != nil {
				return "", fmt.Errorf("failed to read table %s: %w", tableName, err)
			}
			b.WriteString(terminate(stmt))
		}
	}

	log.WithField("path", s.path).Debug("dumped sqlite ddl")
	return b.String(), nil
}
