// Package common provides logging utilities for the client library
package common

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	baseLogger *logrus.Logger
	loggerOnce sync.Once
)

// base returns the shared logrus instance, creating it on first use.
func base() *logrus.Logger {
	loggerOnce.Do(func() {
		baseLogger = logrus.New()
		baseLogger.SetOutput(os.Stdout)
		baseLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		baseLogger.SetLevel(logrus.InfoLevel)
	})
	return baseLogger
}

// GetLogger returns a component-tagged logger for the given package name.
// All loggers share one output and one level.
func GetLogger(pkgName string) *logrus.Entry {
	return base().WithField("component", pkgName)
}

// SetLogLevel sets the level for all loggers created with GetLogger.
func SetLogLevel(level string) error {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	base().SetLevel(parsed)
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to a logrus.Level
func parseLogLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warning", "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}
