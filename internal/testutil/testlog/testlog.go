// Package testlog sets up the shared logger's test profile for tests. Log
// output goes to stderr; it is not routed through t.Log.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/embedwire/umsg/internal/logging"
)

// Start configures test-profile logging and returns the logger for
// components that take one explicitly.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logger := logging.ConfigureTests()
	logger.Debug().Str("test", t.Name()).Msg("start")
	return logger
}
