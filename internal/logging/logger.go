package logging

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

var (
	defaultLogger     *logrus.Entry
	defaultLoggerOnce sync.Once
)

func DefaultLogger() *logrus.Entry {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger(os.Stderr, logrus.InfoLevel)
	})
	return defaultLogger
}

// NewLogger returns a text logger. Diagnostics never share a stream with the rates output
func NewLogger(w io.Writer, level logrus.Level) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	return logrus.NewEntry(logger)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func FromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return logger
	}
	return DefaultLogger()
}
