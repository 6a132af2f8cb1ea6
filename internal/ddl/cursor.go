package ddl

import "strings"

// cursor walks a token slice for the recursive descent helpers.
// Reading past the end yields an EOF token.
type cursor struct {
	input string
	toks  []token
	pos   int
}

func (c *cursor) peekAt(n int) token {
	if i := c.pos + n; i < len(c.toks) {
		return c.toks[i]
	}
	return token{kind: tokenEOF, pos: len(c.input), end: len(c.input)}
}

func (c *cursor) peek() token {
	return c.peekAt(0)
}

func (c *cursor) advance() token {
	tok := c.peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return tok
}

func (c *cursor) done() bool {
	return c.peek().kind == tokenEOF
}

// matchWords reports whether the next tokens are the given keywords
func (c *cursor) matchWords(kws ...string) bool {
	for i, kw := range kws {
		if !c.peekAt(i).isWord(kw) {
			return false
		}
	}
	return true
}

// acceptWords consumes the keyword sequence if it is next
func (c *cursor) acceptWords(kws ...string) bool {
	if !c.matchWords(kws...) {
		return false
	}
	c.pos += len(kws)
	return true
}

// acceptAnyWord consumes one token if it is any of the given keywords
func (c *cursor) acceptAnyWord(kws ...string) (string, bool) {
	tok := c.peek()
	for _, kw := range kws {
		if tok.isWord(kw) {
			c.pos++
			return strings.ToUpper(tok.val), true
		}
	}
	return "", false
}

func (c *cursor) matchSymbol(s string) bool {
	return c.peek().isSymbol(s)
}

func (c *cursor) acceptSymbol(s string) bool {
	if !c.matchSymbol(s) {
		return false
	}
	c.pos++
	return true
}

// identifier consumes a bare, quoted or single-quoted name
func (c *cursor) identifier() (string, bool) {
	tok := c.peek()
	if !tok.isIdentifier() {
		return "", false
	}
	c.pos++
	return tok.ident(), true
}

// qualifiedName consumes name[.name...] and returns the last part, so
// schema.table resolves to table.
func (c *cursor) qualifiedName() (string, bool) {
	name, ok := c.identifier()
	if !ok {
		return "", false
	}
	for c.matchSymbol(".") && c.peekAt(1).isIdentifier() {
		c.pos++
		name, _ = c.identifier()
	}
	return name, true
}

// nameList consumes a parenthesized, comma separated list and returns the
// leading identifier of each element. Anything else inside an element, such
// as a prefix length or ASC/DESC, is skipped.
func (c *cursor) nameList() ([]string, bool) {
	if !c.acceptSymbol("(") {
		return nil, false
	}
	var names []string
	depth := 0
	expectName := true
	for !c.done() {
		tok := c.advance()
		switch {
		case tok.isSymbol("("):
			depth++
		case tok.isSymbol(")"):
			if depth == 0 {
				return names, true
			}
			depth--
		case tok.isSymbol(",") && depth == 0:
			expectName = true
		case expectName && depth == 0 && tok.isIdentifier():
			names = append(names, tok.ident())
			expectName = false
		}
	}
	return names, false
}

// skipGroup consumes a balanced parenthesized group if one is next
func (c *cursor) skipGroup() bool {
	if !c.matchSymbol("(") {
		return false
	}
	depth := 0
	for !c.done() {
		tok := c.advance()
		if tok.isSymbol("(") {
			depth++
		} else if tok.isSymbol(")") {
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return true
}

// text returns the source text spanned by toks[from:to]
func (c *cursor) text(from, to int) string {
	if from >= to || from >= len(c.toks) {
		return ""
	}
	if to > len(c.toks) {
		to = len(c.toks)
	}
	return c.input[c.toks[from].pos:c.toks[to-1].end]
}
