package ddl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

//
// The lexer follows the state function design of the Go template lexer.
// It runs synchronously and appends tokens to a slice, so a parse never
// starts goroutines.
//

// tokenKind is the kind of a scanned token
type tokenKind int

const (
	tokenEOF    tokenKind = iota
	tokenWord             // bare identifier or keyword
	tokenQuoted           // "identifier" or `identifier`
	tokenString           // 'literal'
	tokenNumber           // 42, 3.14
	tokenSymbol           // ( ) , ; . = and any other single rune
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenWord:
		return "Word"
	case tokenQuoted:
		return "QuotedIdentifier"
	case tokenString:
		return "String"
	case tokenNumber:
		return "Number"
	case tokenSymbol:
		return "Symbol"
	}
	return ""
}

// token is a single lexeme with its byte span in the normalized input
type token struct {
	kind tokenKind
	val  string
	pos  int
	end  int
	line int
}

func (t token) String() string {
	if t.kind == tokenEOF {
		return "EOF"
	}
	if len(t.val) > 10 {
		return fmt.Sprintf("%.10q...", t.val)
	}
	return fmt.Sprintf("%q", t.val)
}

func (t token) isSymbol(s string) bool {
	return t.kind == tokenSymbol && t.val == s
}

func (t token) isWord(kw string) bool {
	return t.kind == tokenWord && strings.EqualFold(t.val, kw)
}

// isIdentifier reports whether the token may name a table or column.
// Single-quoted names are accepted because MySQL dumps in the wild use them.
func (t token) isIdentifier() bool {
	return t.kind == tokenWord || t.kind == tokenQuoted || t.kind == tokenString
}

// ident returns the identifier text with surrounding quotes removed
func (t token) ident() string {
	switch t.kind {
	case tokenQuoted, tokenString:
		return unquote(t.val)
	}
	return t.val
}

// unquote strips the surrounding quote characters and collapses doubled quotes
func unquote(s string) string {
	if len(s) == 0 {
		return s
	}
	quote := s[0]
	if quote != '\'' && quote != '"' && quote != '`' {
		return s
	}
	inner := s[1:]
	if len(inner) > 0 && inner[len(inner)-1] == quote {
		inner = inner[:len(inner)-1]
	}
	q := string(quote)
	return strings.ReplaceAll(inner, q+q, q)
}

const eof = -1

// lexer holds the scanning state
type lexer struct {
	input     string
	start     int // start position of the current token
	pos       int // current position in the input
	width     int // width of the last rune read
	line      int // line of pos
	startLine int // line of start
	tokens    []token
	errs      []string
}

// stateFn represents a lexer state and returns the next one
type stateFn func(*lexer) stateFn

// lex scans the whole input and returns its tokens, always terminated by an
// EOF token, plus diagnostics for unterminated literals.
func lex(input string) ([]token, []string) {
	l := &lexer{input: input, line: 1, startLine: 1}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	return l.tokens, l.errs
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

// backup steps back one rune. Can be called only once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
	if l.width == 1 && l.input[l.pos] == '\n' {
		l.line--
	}
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) acceptWhile(pred func(rune) bool) int {
	count := 0
	for pred(l.next()) {
		count++
	}
	l.backup()
	return count
}

func (l *lexer) ignore() {
	l.start = l.pos
	l.startLine = l.line
}

func (l *lexer) emit(kind tokenKind) {
	l.tokens = append(l.tokens, token{
		kind: kind,
		val:  l.input[l.start:l.pos],
		pos:  l.start,
		end:  l.pos,
		line: l.startLine,
	})
	l.ignore()
}

func (l *lexer) errorf(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func isSpace(r rune) bool { return r != eof && unicode.IsSpace(r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isWordStart(r rune) bool { return r == '_' || (r != eof && unicode.IsLetter(r)) }

func isWordChar(r rune) bool { return isWordStart(r) || isDigit(r) || r == '$' }

func lexAny(l *lexer) stateFn {
	l.acceptWhile(isSpace)
	l.ignore()

	r := l.peek()
	switch {
	case r == eof:
		l.emit(tokenEOF)
		return nil
	case r == '\'':
		return lexString
	case r == '"' || r == '`':
		return lexQuotedIdentifier
	case isDigit(r):
		return lexNumber
	case isWordStart(r):
		return lexWord
	}

	l.next()
	l.emit(tokenSymbol)
	return lexAny
}

func lexWord(l *lexer) stateFn {
	l.acceptWhile(isWordChar)
	l.emit(tokenWord)
	return lexAny
}

// lexNumber scans digits with an optional fraction. A digit run glued to
// letters (2fa_code) becomes a word.
func lexNumber(l *lexer) stateFn {
	l.acceptWhile(isDigit)
	if l.peek() == '.' {
		l.next()
		l.acceptWhile(isDigit)
	}
	if isWordChar(l.peek()) {
		l.acceptWhile(isWordChar)
		l.emit(tokenWord)
		return lexAny
	}
	l.emit(tokenNumber)
	return lexAny
}

func lexString(l *lexer) stateFn {
	l.next() // opening quote
	for {
		switch l.next() {
		case eof:
			l.errorf("Unterminated string literal starting on line %d", l.startLine)
			l.emit(tokenString)
			return lexAny
		case '\\':
			l.next()
		case '\'':
			if l.peek() == '\'' {
				l.next()
				continue
			}
			l.emit(tokenString)
			return lexAny
		}
	}
}

func lexQuotedIdentifier(l *lexer) stateFn {
	quote := l.next()
	for {
		switch l.next() {
		case eof:
			l.errorf("Unterminated quoted identifier starting on line %d", l.startLine)
			l.emit(tokenQuoted)
			return lexAny
		case quote:
			if l.peek() == quote {
				l.next()
				continue
			}
			l.emit(tokenQuoted)
			return lexAny
		}
	}
}
