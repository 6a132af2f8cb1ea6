package ddl

import "fmt"

// statement is one CREATE TABLE occurrence found by the segmenter
type statement struct {
	table string
	body  []token // tokens between the outer parentheses
	text  string  // source text from CREATE through the terminator
	line  int

	err     error  // the statement could not be segmented
	skipped string // the statement was recognized but deliberately not captured
}

// tableModifiers may appear between CREATE and TABLE
var tableModifiers = []string{"TEMP", "TEMPORARY", "UNLOGGED", "GLOBAL", "LOCAL"}

// segment finds every CREATE TABLE statement in a single forward scan and
// yields them in source order. All other statements are passed over.
func segment(input string, tokens []token, allowUnterminated bool) []statement {
	c := &cursor{input: input, toks: tokens}

	var stmts []statement
	for !c.done() {
		if !c.matchWords("CREATE") {
			c.advance()
			continue
		}
		create := c.advance()
		if st, ok := c.createTable(create, allowUnterminated); ok {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

// createTable parses the statement header after CREATE. It returns false when
// the statement is not a CREATE TABLE with a column list.
func (c *cursor) createTable(create token, allowUnterminated bool) (statement, bool) {
	for {
		if c.acceptWords("OR", "REPLACE") {
			continue
		}
		if _, ok := c.acceptAnyWord(tableModifiers...); ok {
			continue
		}
		break
	}
	if !c.acceptWords("TABLE") {
		return statement{}, false
	}
	c.acceptWords("IF", "NOT", "EXISTS")

	name, ok := c.qualifiedName()
	if !ok {
		return statement{}, false
	}
	st := statement{table: name, line: create.line}

	// CREATE TABLE ... AS SELECT and CREATE TABLE ... LIKE carry no column list
	if !c.matchSymbol("(") {
		return statement{}, false
	}

	open := c.pos
	closing := c.matchingParen(open)
	if closing < 0 {
		// rescan from inside the list so later statements are still found
		c.pos = open + 1
		st.err = fmt.Errorf("unterminated column list for table %q (line %d)", name, create.line)
		return st, true
	}
	st.body = c.toks[open+1 : closing]
	c.pos = closing + 1

	// table options: ENGINE=, DEFAULT CHARSET=, COLLATE=, AUTO_INCREMENT=, ...
	for !c.done() && !c.matchSymbol(";") && !c.matchWords("CREATE") {
		c.advance()
	}

	if c.matchSymbol(";") {
		semi := c.advance()
		st.text = c.input[create.pos:semi.end]
		return st, true
	}

	if !allowUnterminated {
		return statement{
			table:   name,
			line:    create.line,
			skipped: fmt.Sprintf("Skipped CREATE TABLE %q (line %d): missing terminating semicolon", name, create.line),
		}, true
	}
	st.text = c.input[create.pos:c.toks[c.pos-1].end]
	return st, true
}

// matchingParen returns the index of the parenthesis closing the one at open,
// or -1 when a statement terminator or the end of input comes first.
func (c *cursor) matchingParen(open int) int {
	depth := 0
	for i := open; i < len(c.toks); i++ {
		tok := c.toks[i]
		switch {
		case tok.kind == tokenEOF, tok.isSymbol(";"):
			return -1
		case tok.isSymbol("("):
			depth++
		case tok.isSymbol(")"):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
