package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tordrt/schemamap/internal/schema"
)

// JSONFormatter writes the parse result as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format encodes the whole result
func (f *JSONFormatter) Format(r *schema.ParseResult) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
