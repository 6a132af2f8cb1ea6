// Package ddl turns SQL CREATE TABLE statements into a schema.ParseResult.
//
// Parsing never fails: problems with individual statements are reported as
// diagnostics in ParseResult.Errors and the remaining statements are still
// returned.
package ddl

import (
	"fmt"

	"github.com/tordrt/schemamap/internal/schema"
)

// NoTablesMessage is the diagnostic added when the input has no CREATE TABLE statement
const NoTablesMessage = "No CREATE TABLE statements found. Make sure your SQL uses standard CREATE TABLE syntax."

// StatementChecker validates the full text of a captured CREATE TABLE
// statement. A non-nil error is reported as a diagnostic; the table is kept.
type StatementChecker interface {
	CheckStatement(table, text string) error
}

// Options tunes the parser
type Options struct {
	// AllowUnterminated accepts a CREATE TABLE without a trailing semicolon,
	// ending it at the next CREATE or at end of input.
	AllowUnterminated bool

	// ReportUnrecognized adds a diagnostic for every clause that is neither a
	// column nor a known table constraint.
	ReportUnrecognized bool

	Checker StatementChecker
}

// Parser parses DDL text. It holds no state between calls and is safe for
// concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a parser with the given options
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses sql with the default options
func Parse(sql string) schema.ParseResult {
	return NewParser(Options{}).Parse(sql)
}

// Parse extracts every CREATE TABLE statement in sql
func (p *Parser) Parse(sql string) (result schema.ParseResult) {
	result = schema.ParseResult{
		Tables:        []schema.Table{},
		Relationships: []schema.Relationship{},
		Errors:        []string{},
	}
	defer func() {
		if r := recover(); r != nil {
			recovered(&result, r)
		}
	}()

	input := Normalize(sql)
	tokens, lexErrs := lex(input)
	result.Errors = append(result.Errors, lexErrs...)

	seen := make(map[string]bool)
	for _, st := range segment(input, tokens, p.opts.AllowUnterminated) {
		if st.skipped != "" {
			result.Errors = append(result.Errors, st.skipped)
			continue
		}
		if st.err != nil {
			result.Errors = append(result.Errors, "Error parsing table: "+st.err.Error())
			continue
		}
		if seen[st.table] {
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate table %q ignored", st.table))
			continue
		}

		table, rels, warnings, err := p.parseStatement(input, st)
		if err != nil {
			result.Errors = append(result.Errors, "Error parsing table: "+err.Error())
			continue
		}
		seen[st.table] = true

		if err := p.checkStatement(st); err != nil {
			warnings = append(warnings, fmt.Sprintf("Syntax check failed for table %q: %v", st.table, err))
		}

		result.Tables = append(result.Tables, table)
		result.Relationships = append(result.Relationships, rels...)
		result.Errors = append(result.Errors, warnings...)
	}

	if len(result.Tables) == 0 {
		result.Errors = append(result.Errors, NoTablesMessage)
	}
	return result
}

// recovered records a panic that escaped statement isolation
func recovered(result *schema.ParseResult, r any) {
	result.Errors = append(result.Errors, fmt.Sprintf("Error parsing SQL: %v", r))
	if len(result.Tables) == 0 {
		result.Errors = append(result.Errors, NoTablesMessage)
	}
}

// parseStatement builds one table. A panic inside the clause grammar is
// confined to the statement that caused it.
func (p *Parser) parseStatement(input string, st statement) (table schema.Table, rels []schema.Relationship, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	b := newTableBuilder(st.table, p.opts.ReportUnrecognized)
	for _, clause := range splitClauses(st.body) {
		b.clause(input, clause)
	}
	table, rels = b.resolve()
	return table, rels, b.warnings, nil
}

// checkStatement runs the optional Checker. A panicking checker is reported
// against its own table and the table is kept.
func (p *Parser) checkStatement(st statement) (err error) {
	if p.opts.Checker == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return p.opts.Checker.CheckStatement(st.table, st.text)
}
