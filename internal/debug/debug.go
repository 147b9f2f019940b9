// Package debug traces wire traffic when WAYLAND_DEBUG is set to a
// positive integer, mirroring libwayland's switch of the same name.
package debug

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

func init() {
	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil || debugLevel <= 0 {
		return
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "wayland",
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
}

// Enabled reports whether tracing is switched on.
func Enabled() bool {
	return logger != nil
}

func Printf(str string, args ...any) {
	if logger == nil {
		return
	}
	logger.Debugf(str, args...)
}
