// Package logging configures the process-wide logrus logger
package logging

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and formatter of the standard logger. format is
// "text" or "json".
func Setup(level, format string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", format)
	}

	log.SetLevel(lvl)
	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
