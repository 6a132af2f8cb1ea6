package ddl

// splitClauses splits a table body on top-level commas. Commas nested in
// parentheses, as in DECIMAL(10,2) or PRIMARY KEY (a, b), do not split.
// Empty clauses are dropped. Unbalanced closing parentheses never take the
// depth below zero.
func splitClauses(body []token) [][]token {
	var clauses [][]token
	depth := 0
	start := 0
	for i, tok := range body {
		switch {
		case tok.isSymbol("("):
			depth++
		case tok.isSymbol(")"):
			if depth > 0 {
				depth--
			}
		case tok.isSymbol(",") && depth == 0:
			if i > start {
				clauses = append(clauses, body[start:i])
			}
			start = i + 1
		}
	}
	if start < len(body) {
		clauses = append(clauses, body[start:])
	}
	return clauses
}
