package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Init configures the process-wide logger. format is "json" or "text".
func Init(level, format string) {
	log.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// L returns the shared logger
func L() *logrus.Logger {
	return log
}

// WithFields is shorthand for L().WithFields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithError is shorthand for L().WithError
func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}
