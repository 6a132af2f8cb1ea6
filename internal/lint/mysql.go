// Package lint validates captured CREATE TABLE statements against a real SQL
// grammar. It plugs into the DDL parser as a ddl.StatementChecker.
package lint

import (
	"errors"
	"fmt"
	"strings"

	"vitess.io/vitess/go/vt/sqlparser"
)

var (
	ErrEmptyStatement   = errors.New("statement cannot be empty")
	ErrNotCreateTable   = errors.New("not a CREATE TABLE statement")
	ErrStatementTooLong = errors.New("statement exceeds maximum length")
)

// MySQLChecker checks statements with the vitess MySQL parser
type MySQLChecker struct {
	maxLength int
	parser    *sqlparser.Parser
}

// NewMySQLChecker creates a checker. A non-positive maxLength disables the
// length limit.
func NewMySQLChecker(maxLength int) *MySQLChecker {
	return &MySQLChecker{
		maxLength: maxLength,
		parser:    sqlparser.NewTestParser(),
	}
}

// CheckStatement parses text as a MySQL CREATE TABLE statement
func (c *MySQLChecker) CheckStatement(table, text string) error {
	stmt, err := c.Parse(text)
	if err != nil {
		return err
	}

	create, ok := stmt.(*sqlparser.CreateTable)
	if !ok {
		return ErrNotCreateTable
	}
	if name := create.Table.Name.String(); !strings.EqualFold(name, table) {
		return fmt.Errorf("MySQL parser read table name %q", name)
	}
	return nil
}

// Parse parses a single statement, ignoring a trailing semicolon
func (c *MySQLChecker) Parse(text string) (sqlparser.Statement, error) {
	text = normalizeStatement(text)
	if text == "" {
		return nil, ErrEmptyStatement
	}
	if c.maxLength > 0 && len(text) > c.maxLength {
		return nil, ErrStatementTooLong
	}

	stmt, err := c.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("MySQL syntax error: %w", err)
	}
	return stmt, nil
}

func normalizeStatement(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, ";")
	return strings.TrimSpace(text)
}
