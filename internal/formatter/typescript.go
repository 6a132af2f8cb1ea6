package formatter

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tordrt/schemamap/internal/schema"
)

// sqlToTS maps base SQL type names to TypeScript types
var sqlToTS = map[string]string{
	"int":         "number",
	"integer":     "number",
	"smallint":    "number",
	"bigint":      "number",
	"tinyint":     "number",
	"mediumint":   "number",
	"float":       "number",
	"double":      "number",
	"decimal":     "number",
	"numeric":     "number",
	"real":        "number",
	"serial":      "number",
	"bigserial":   "number",
	"smallserial": "number",

	"varchar":    "string",
	"char":       "string",
	"character":  "string",
	"text":       "string",
	"mediumtext": "string",
	"longtext":   "string",
	"tinytext":   "string",
	"uuid":       "string",
	"citext":     "string",
	"name":       "string",

	"boolean": "boolean",
	"bool":    "boolean",

	"date":        "string",
	"datetime":    "string",
	"timestamp":   "string",
	"timestamptz": "string",
	"time":        "string",
	"timetz":      "string",
	"interval":    "string",

	"json":  "any",
	"jsonb": "any",

	"bytea": "Uint8Array",
	"blob":  "Uint8Array",

	"enum": "string",
}

var (
	typeParams   = regexp.MustCompile(`\(.*\)`)
	wordBoundary = regexp.MustCompile(`[_\s-]+`)
)

// TypeScriptFormatter emits one TypeScript interface per table
type TypeScriptFormatter struct {
	writer io.Writer
}

// NewTypeScriptFormatter creates a new TypeScript formatter
func NewTypeScriptFormatter(w io.Writer) *TypeScriptFormatter {
	return &TypeScriptFormatter{writer: w}
}

// Format writes the interfaces separated by blank lines
func (f *TypeScriptFormatter) Format(r *schema.ParseResult) error {
	interfaces := make([]string, 0, len(r.Tables))
	for _, table := range r.Tables {
		interfaces = append(interfaces, Interface(table))
	}
	_, err := io.WriteString(f.writer, strings.Join(interfaces, "\n\n")+"\n")
	return err
}

// Interface renders a table as a TypeScript interface. Nullable columns are optional.
func Interface(table schema.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", PascalCase(table.Name))
	for _, col := range table.Columns {
		optional := ""
		if col.Nullable {
			optional = "?"
		}
		fmt.Fprintf(&b, "  %s%s: %s;\n", col.Name, optional, TSType(col.Type))
	}
	b.WriteString("}")
	return b.String()
}

// TSType maps a declared SQL type to a TypeScript type, falling back to any.
// Multi-word types fall back to their first word, so "double precision" maps
// through "double".
func TSType(sqlType string) string {
	base := strings.ToLower(typeParams.ReplaceAllString(sqlType, ""))
	base = strings.TrimSpace(base)
	if ts, ok := sqlToTS[base]; ok {
		return ts
	}
	if fields := strings.Fields(base); len(fields) > 0 {
		if ts, ok := sqlToTS[fields[0]]; ok {
			return ts
		}
	}
	return "any"
}

// PascalCase converts snake, kebab or spaced names to PascalCase
func PascalCase(name string) string {
	var b strings.Builder
	for _, word := range wordBoundary.Split(name, -1) {
		if word == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(strings.ToLower(word[size:]))
	}
	return b.String()
}
