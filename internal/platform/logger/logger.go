// Package logger builds the process-wide zerolog logger for the catalog
// service and its CLI tooling.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a timestamped JSON logger tagged with the service name. All
// components derive their loggers from this one so log lines stay uniform.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
