package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ServiceName is attached to every log entry
const ServiceName = "perceive-reports-api"

// Options controls logger construction
type Options struct {
	Level  string
	Format string // json or text
	Output io.Writer
}

// New builds a logrus logger. Unknown levels fall back to info and an empty
// format picks json.
func New(opts Options) *logrus.Entry {
	log := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(opts.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log.WithField("service", ServiceName)
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Entry {
	return New(Options{Output: io.Discard, Level: "panic"})
}
