package ddl

import (
	"fmt"
	"strings"

	"github.com/tordrt/schemamap/internal/schema"
)

// foreignKey is a FOREIGN KEY or inline REFERENCES declaration that has not
// been attached to its column yet
type foreignKey struct {
	columns    []string
	refTable   string
	refColumns []string
	onDelete   string
	onUpdate   string
}

// tableBuilder accumulates the clauses of one table body
type tableBuilder struct {
	name               string
	reportUnrecognized bool

	columns     []schema.Column
	seen        map[string]bool
	primaryKey  []string
	foreignKeys []foreignKey
	indexes     []schema.Index
	warnings    []string
}

func newTableBuilder(name string, reportUnrecognized bool) *tableBuilder {
	return &tableBuilder{
		name:               name,
		reportUnrecognized: reportUnrecognized,
		columns:            []schema.Column{},
		seen:               make(map[string]bool),
	}
}

// constraintKeywords start a table-level constraint after CONSTRAINT name
var constraintKeywords = []string{"PRIMARY", "FOREIGN", "UNIQUE", "CHECK", "EXCLUDE"}

func isConstraintKeyword(tok token) bool {
	for _, kw := range constraintKeywords {
		if tok.isWord(kw) {
			return true
		}
	}
	return false
}

// clause classifies one top-level clause and records what it declares
func (b *tableBuilder) clause(input string, toks []token) {
	c := &cursor{input: input, toks: toks}

	// CONSTRAINT [name] followed by a constraint keyword
	var constraintName string
	if c.matchWords("CONSTRAINT") {
		switch {
		case c.peekAt(1).isIdentifier() && isConstraintKeyword(c.peekAt(2)):
			constraintName = c.peekAt(1).ident()
			c.pos += 2
		case isConstraintKeyword(c.peekAt(1)):
			c.pos++
		}
	}

	var ok bool
	switch {
	case c.matchWords("PRIMARY", "KEY"):
		ok = b.primaryKeyClause(c)
	case c.matchWords("FOREIGN", "KEY"):
		ok = b.foreignKeyClause(c)
	case c.matchWords("CHECK"):
		ok = true
	case c.matchWords("EXCLUDE") && (c.pos > 0 || c.peekAt(1).isWord("USING") || c.peekAt(1).isSymbol("(")):
		ok = true
	case b.isIndexClause(c):
		ok = b.indexClause(c, constraintName)
	default:
		ok = b.columnClause(c)
	}

	if !ok && b.reportUnrecognized {
		b.warnings = append(b.warnings,
			fmt.Sprintf("Skipped unrecognized clause in table %q: %s", b.name, c.text(0, len(toks))))
	}
}

func (b *tableBuilder) primaryKeyClause(c *cursor) bool {
	c.acceptWords("PRIMARY", "KEY")
	b.skipIndexName(c)
	cols, ok := c.nameList()
	if !ok || len(cols) == 0 {
		return false
	}
	b.primaryKey = append(b.primaryKey, cols...)
	return true
}

func (b *tableBuilder) foreignKeyClause(c *cursor) bool {
	c.acceptWords("FOREIGN", "KEY")
	b.skipIndexName(c)
	cols, ok := c.nameList()
	if !ok || len(cols) == 0 {
		return false
	}
	if !c.acceptWords("REFERENCES") {
		return false
	}
	fk, ok := references(c)
	if !ok {
		return false
	}
	fk.columns = cols
	b.foreignKeys = append(b.foreignKeys, fk)
	return true
}

// isIndexClause reports whether the clause is a table-level UNIQUE, INDEX or
// KEY declaration rather than a column that happens to share the keyword.
func (b *tableBuilder) isIndexClause(c *cursor) bool {
	first := c.peek()
	switch {
	case first.isWord("UNIQUE"):
		return true
	case first.isWord("FULLTEXT"), first.isWord("SPATIAL"):
		next := c.peekAt(1)
		return next.isWord("INDEX") || next.isWord("KEY") || indexBodyAt(c, 1)
	case first.isWord("INDEX"), first.isWord("KEY"):
		return indexBodyAt(c, 1)
	}
	return false
}

// indexBodyAt reports whether the tokens from offset n read as an optional
// index name or USING method followed by a column list. "key VARCHAR(20)"
// is a column: a type's parenthesized arguments are never names.
func indexBodyAt(c *cursor, n int) bool {
	tok := c.peekAt(n)
	switch {
	case tok.isWord("USING"):
		return true
	case tok.isSymbol("("):
		return isColumnName(c.peekAt(n + 1))
	case tok.isIdentifier():
		next := c.peekAt(n + 1)
		return next.isWord("USING") || next.isSymbol("(") && isColumnName(c.peekAt(n+2))
	}
	return false
}

func isColumnName(tok token) bool {
	return tok.kind == tokenWord || tok.kind == tokenQuoted
}

// indexClause records UNIQUE, INDEX and KEY declarations. The name falls back
// to the CONSTRAINT name when the declaration itself has none.
func (b *tableBuilder) indexClause(c *cursor, constraintName string) bool {
	unique := c.acceptWords("UNIQUE")
	c.acceptAnyWord("FULLTEXT", "SPATIAL")
	c.acceptAnyWord("INDEX", "KEY")
	name := b.skipIndexName(c)
	if name == "" {
		name = constraintName
	}
	cols, ok := c.nameList()
	if !ok || len(cols) == 0 {
		return false
	}
	b.indexes = append(b.indexes, schema.Index{Name: name, Columns: cols, IsUnique: unique})
	return true
}

// skipIndexName consumes an optional index name and USING method before a
// column list and returns the name
func (b *tableBuilder) skipIndexName(c *cursor) string {
	var name string
	if !c.matchSymbol("(") && c.peek().isIdentifier() && !c.peek().isWord("USING") {
		name, _ = c.identifier()
	}
	if c.acceptWords("USING") {
		c.advance()
	}
	return name
}

// references parses "[schema.]table (col, ...) [actions]" after REFERENCES
func references(c *cursor) (foreignKey, bool) {
	table, ok := c.qualifiedName()
	if !ok {
		return foreignKey{}, false
	}
	cols, ok := c.nameList()
	if !ok || len(cols) == 0 {
		return foreignKey{}, false
	}
	fk := foreignKey{refTable: table, refColumns: cols}
	referentialActions(c, &fk)
	return fk, true
}

// referentialActions consumes ON DELETE / ON UPDATE in either order, plus
// MATCH and deferrability options which are not recorded
func referentialActions(c *cursor, fk *foreignKey) {
	for {
		switch {
		case c.acceptWords("ON", "DELETE"):
			fk.onDelete = action(c)
		case c.acceptWords("ON", "UPDATE"):
			fk.onUpdate = action(c)
		case c.acceptWords("MATCH"):
			c.advance()
		case c.acceptWords("NOT", "DEFERRABLE"), c.acceptWords("DEFERRABLE"):
		case c.acceptWords("INITIALLY"):
			c.advance()
		default:
			return
		}
	}
}

// action reads a one or two word referential action
func action(c *cursor) string {
	first := c.peek()
	if first.kind != tokenWord {
		return ""
	}
	c.advance()
	words := []string{strings.ToUpper(first.val)}
	if (first.isWord("SET") || first.isWord("NO")) && c.peek().kind == tokenWord {
		words = append(words, strings.ToUpper(c.advance().val))
	}
	return strings.Join(words, " ")
}

// typeQualifiers are single words that belong to the preceding type
var typeQualifiers = []string{"UNSIGNED", "SIGNED", "ZEROFILL", "VARYING", "PRECISION"}

// columnClause parses "name type [modifiers...]"
func (b *tableBuilder) columnClause(c *cursor) bool {
	name, ok := c.identifier()
	if !ok {
		return false
	}
	typeStart := c.pos
	if !c.columnType() {
		return false
	}
	col := schema.Column{
		Name:        name,
		Type:        c.text(typeStart, c.pos),
		Nullable:    true,
		Constraints: []string{},
	}

	var primary, unique, autoIncrement, notNull bool
	var fk *foreignKey

	if strings.Contains(strings.ToUpper(col.Type), "SERIAL") {
		autoIncrement = true
	}

	for !c.done() {
		switch {
		case c.acceptWords("NOT", "NULL"):
			notNull = true
		case c.acceptWords("NULL"):
		case c.acceptWords("PRIMARY", "KEY"):
			primary = true
			c.acceptAnyWord("ASC", "DESC")
		case c.acceptWords("UNIQUE"):
			unique = true
			c.acceptAnyWord("KEY", "INDEX")
		case c.matchWords("AUTO_INCREMENT"), c.matchWords("AUTOINCREMENT"), c.matchWords("SERIAL"):
			c.advance()
			autoIncrement = true
		case c.acceptWords("IDENTITY"):
			autoIncrement = true
			c.skipGroup()
		case c.acceptWords("GENERATED"):
			if generatedColumn(c) {
				autoIncrement = true
			}
		case c.acceptWords("DEFAULT"):
			col.DefaultValue = defaultValue(c)
		case c.acceptWords("REFERENCES"):
			if ref, ok := references(c); ok {
				ref.columns = []string{name}
				fk = &ref
			}
		case c.acceptWords("CHECK"):
			c.skipGroup()
		case c.acceptWords("CONSTRAINT"):
			if !isConstraintKeyword(c.peek()) && c.peek().isIdentifier() {
				c.advance()
			}
		case c.acceptWords("COLLATE"), c.acceptWords("COMMENT"):
			c.advance()
		case c.acceptWords("ON", "UPDATE"):
			defaultValue(c)
		default:
			c.advance()
		}
	}

	if b.seen[name] {
		b.warnings = append(b.warnings, fmt.Sprintf("Duplicate column %q in table %q ignored", name, b.name))
		return true
	}
	b.seen[name] = true

	if primary {
		b.primaryKey = append(b.primaryKey, name)
		col.IsPrimaryKey = true
		col.Constraints = append(col.Constraints, schema.ConstraintPrimaryKey)
	}
	if unique {
		col.Constraints = append(col.Constraints, schema.ConstraintUnique)
	}
	if autoIncrement {
		col.Constraints = append(col.Constraints, schema.ConstraintAutoIncrement)
	}
	if notNull {
		col.Nullable = false
		col.Constraints = append(col.Constraints, schema.ConstraintNotNull)
	}
	if fk != nil {
		col.IsForeignKey = true
		col.References = &schema.Reference{Table: fk.refTable, Column: fk.refColumns[0]}
		b.foreignKeys = append(b.foreignKeys, *fk)
	}

	b.columns = append(b.columns, col)
	return true
}

// columnType consumes a type name with its parameters and qualifiers
func (c *cursor) columnType() bool {
	first := c.peek()
	if first.kind != tokenWord && first.kind != tokenQuoted {
		return false
	}
	c.advance()
	for {
		switch {
		case c.matchSymbol("("):
			c.skipGroup()
		case c.matchSymbol(".") && c.peekAt(1).isIdentifier():
			c.pos += 2
		case c.matchSymbol("[") && c.peekAt(1).isSymbol("]"):
			c.pos += 2
		case c.matchWords("WITHOUT", "TIME", "ZONE"), c.matchWords("WITH", "TIME", "ZONE"):
			c.pos += 3
		case c.matchWords("CHARACTER", "SET"):
			c.pos += 3
		case c.matchWords("CHARSET"):
			c.pos += 2
		default:
			if _, ok := c.acceptAnyWord(typeQualifiers...); !ok {
				return true
			}
		}
	}
}

// generatedColumn consumes the remainder of GENERATED ... and reports whether
// it declared an identity column
func generatedColumn(c *cursor) bool {
	c.acceptWords("ALWAYS")
	c.acceptWords("BY", "DEFAULT")
	if !c.acceptWords("AS") {
		return false
	}
	if c.acceptWords("IDENTITY") {
		c.skipGroup()
		return true
	}
	c.skipGroup()
	c.acceptAnyWord("STORED", "VIRTUAL")
	return false
}

// defaultValue reads a DEFAULT expression. A quoted literal is returned
// without its quotes; anything else is the source text of the adjacent tokens
// that follow, so now(), -1 and 'a'::text survive intact.
func defaultValue(c *cursor) *string {
	first := c.peek()
	if first.kind == tokenEOF {
		return nil
	}
	if first.kind == tokenString || (first.kind == tokenQuoted && strings.HasPrefix(first.val, `"`)) {
		next := c.peekAt(1)
		if next.kind == tokenEOF || next.pos > first.end {
			c.advance()
			v := unescape(first)
			return &v
		}
	}

	start := c.pos
	depth := 0
	prevEnd := first.pos
	for !c.done() {
		tok := c.peek()
		if depth == 0 && tok.pos > prevEnd {
			break
		}
		switch {
		case tok.isSymbol("("):
			depth++
		case tok.isSymbol(")"):
			depth--
		}
		c.advance()
		prevEnd = tok.end
		if depth < 0 {
			break
		}
	}
	v := c.text(start, c.pos)
	return &v
}

// unescape returns the contents of a quoted literal with doubled quotes and
// backslash escaped quotes collapsed
func unescape(tok token) string {
	v := unquote(tok.val)
	if tok.kind == tokenString {
		v = strings.ReplaceAll(v, `\'`, `'`)
	}
	return v
}
