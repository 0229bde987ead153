package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output keeps log lines machine
// readable for the collectors downstream.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
