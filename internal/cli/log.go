package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes timestamped lines to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "softbrush",
	})
}
