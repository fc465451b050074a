// Package observability configures logging and Prometheus metrics.
package observability

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogger sets the level and format ("text" or "json") of the
// standard logrus logger and directs it to out.
func ConfigureLogger(out io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q: want text or json", format)
	}

	log.SetLevel(lvl)
	log.SetOutput(out)
	return nil
}
