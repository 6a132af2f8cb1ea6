package ddl

import "strings"

// Normalize strips SQL comments and converts line endings to LF.
//
// Quoted spans ('...', "..." and `...`) are copied through untouched, so a "--"
// or "/*" inside a literal is never treated as a comment start. Block comments
// are replaced by the newlines they contained (or a single space) which keeps
// line numbers of the remaining text stable.
func Normalize(sql string) string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")
	sql = strings.ReplaceAll(sql, "\r", "\n")

	var b strings.Builder
	b.Grow(len(sql))

	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := skipQuoted(sql, i)
			b.WriteString(sql[i:end])
			i = end

		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			// keep the newline itself
			nl := strings.IndexByte(sql[i:], '\n')
			if nl < 0 {
				i = len(sql)
			} else {
				i += nl
			}

		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			var comment string
			if end < 0 {
				comment = sql[i:]
				i = len(sql)
			} else {
				comment = sql[i : i+end+4]
				i += end + 4
			}
			if n := strings.Count(comment, "\n"); n > 0 {
				b.WriteString(strings.Repeat("\n", n))
			} else {
				b.WriteByte(' ')
			}

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

// skipQuoted returns the offset just past the quoted span starting at i.
// Doubled quotes are escapes for every quote kind, backslash escapes only
// apply to single-quoted literals. An unterminated span runs to the end.
func skipQuoted(s string, i int) int {
	quote := s[i]
	j := i + 1
	for j < len(s) {
		switch {
		case s[j] == '\\' && quote == '\'':
			j += 2
		case s[j] == quote:
			if j+1 < len(s) && s[j+1] == quote {
				j += 2
				continue
			}
			return j + 1
		default:
			j++
		}
	}
	return len(s)
}
