// Package log builds the logrus logger shared by the store and the CLI.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/taskboard/internal/errors"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = logrus.WarnLevel

type Option func(logger *logrus.Logger)

func WithOutput(output io.Writer) Option {
	return func(logger *logrus.Logger) {
		logger.SetOutput(output)
	}
}

func WithLevel(level logrus.Level) Option {
	return func(logger *logrus.Logger) {
		logger.SetLevel(level)
	}
}

func WithFormatter(formatter logrus.Formatter) Option {
	return func(logger *logrus.Logger) {
		logger.SetFormatter(formatter)
	}
}

// New returns a logger writing text lines to stderr at DefaultLevel, adjusted by opts.
func New(opts ...Option) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(DefaultLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	for _, opt := range opts {
		opt(logger)
	}
	return logger
}

// ParseLevel converts a level name such as "debug" or "warn". An empty name is DefaultLevel.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return DefaultLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return DefaultLevel, errors.WithStackTrace(err)
	}
	return level, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	return New(WithOutput(io.Discard), WithLevel(logrus.PanicLevel))
}
