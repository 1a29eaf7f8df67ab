package logger

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup configures the package level logrus logger. Records at warn and above are
// also attached to the active span.
func Setup(level, format string) error {
	if level == "" {
		level = "info"
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger.Setup: %w", err)
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", FormatText:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("logger.Setup: unknown log format %q", format)
	}

	log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
	)))

	return nil
}
