// Package logger holds the command-line logger.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetLevel(log.InfoLevel)
}

// SetLevel sets the level by name. Unknown names are an error and leave the
// level unchanged.
func SetLevel(name string) error {
	switch strings.ToUpper(name) {
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "", "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("unknown log level %q", name)
	}
	return nil
}

// Convenience functions for common operations
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
