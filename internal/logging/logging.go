// Package logging configures the zerolog global logger for the monoseed CLI.
//
// All diagnostic output goes to stderr through a zerolog ConsoleWriter,
// keeping stdout free for command results (text or JSON). The level is
// selected once at startup from the -v/--verbose flag count; components
// obtain named loggers via GetLogger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on verbosity level.
// 0 shows warnings and errors only, 1 adds info, 2 adds debug,
// anything higher enables trace.
func Setup(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()

	// Caller information is only useful when debugging the tool itself.
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("logger initialized")
}

// GetLogger returns a contextualized logger tagged with the given
// component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
