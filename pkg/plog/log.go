// Package plog holds the shared go-kit logger used by the file writer and
// the CLI demo, following pkg/util/log/log.go in the teacher: a no-op default,
// swapped for a level-filtered writer by InitLogger.
package plog

import (
	"io"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger is the package-level logger used by pkg/parquetfile and the CLI
// demo. It defaults to discarding everything.
var Logger = kitlog.NewNopLogger()

// InitLogger installs a leveled logger writing to w and returns it. levelName
// is one of "debug", "info", "warn", "error"; anything else defaults to info.
func InitLogger(w io.Writer, levelName string) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.Caller(5))
	logger = level.NewFilter(logger, levelOption(levelName))
	Logger = logger
	return logger
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
