// Package logger provides modifications to charmbracelet/log's default
// logger to be used across lexiserve's packages.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a new charm log that respects the global log level,
// prefixed and without a timestamp — used for short-lived CLI output.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// New creates a new charm log with a timestamp, used by long-running
// processes such as the server and daemon.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a charm log with fully custom options.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
