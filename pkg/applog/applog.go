// Package applog configures zerolog for meikipop's daemon, following
// the component-tagged leveled event style used elsewhere in the corpus.
package applog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global zerolog logger level and output, parsing levelName
// case-insensitively ("debug", "info", "warn", "error"); an unrecognized
// level falls back to info rather than failing startup over a logging
// misconfiguration.
func Init(levelName string, w io.Writer) {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		level = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// Component returns a logger tagged with a "component" field, so log lines
// from pkg/pipeline's three workers and the daemon entrypoint can be
// filtered independently.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
