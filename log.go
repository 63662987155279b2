package matrix

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = defaultLogger()

func defaultLogger() zerolog.Logger {
	if os.Getenv("MATRIX_DEBUG") == "" {
		return zerolog.Nop()
	}
	return zerolog.New(os.Stderr).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("module", "matrix").
		Logger()
}

// SetLogger replaces the logger used by this package. Logging is disabled by default,
// unless the MATRIX_DEBUG environment variable is set.
func SetLogger(l zerolog.Logger) {
	logger = l
}
