package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// envLogLevel supplies the default for --log-level.
const envLogLevel = "FINDREPLACE_LOG_LEVEL"

// newLogger builds the diagnostics logger. It writes human-readable lines to
// w, which is stderr so that stdout stays reserved for the tool's report.
func newLogger(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(cw).With().Timestamp().Logger().Level(level)
}

// resolveLevel picks the log level: an explicit value wins, otherwise info
// in verbose mode and warn in silent mode.
func resolveLevel(explicit string, verbose bool) (zerolog.Level, error) {
	if explicit == "" {
		if verbose {
			return zerolog.InfoLevel, nil
		}
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(explicit)
}
