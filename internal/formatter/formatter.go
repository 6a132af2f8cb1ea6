package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemamap/internal/schema"
)

// Output format names
const (
	FormatText       = "text"
	FormatMarkdown   = "markdown"
	FormatTypeScript = "typescript"
	FormatJSON       = "json"
)

// Formatter renders a parse result
type Formatter interface {
	Format(r *schema.ParseResult) error
}

// Formats lists the names accepted by New
func Formats() []string {
	return []string{FormatText, FormatMarkdown, FormatTypeScript, FormatJSON}
}

// New returns the formatter for the named format writing to w
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText, "txt":
		return NewTextFormatter(w), nil
	case FormatMarkdown, "md":
		return NewMarkdownFormatter(w), nil
	case FormatTypeScript, "ts":
		return NewTypeScriptFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
}

// ContentType returns the MIME type of the named format
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return "text/markdown; charset=utf-8"
	case FormatTypeScript, "ts":
		return "application/typescript; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}
