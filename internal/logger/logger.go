// Package logger configures the shared logrus instance used across ytmix.
package logger

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

var std = log.New()

func init() {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	std.SetLevel(log.InfoLevel)
}

// SetLevel adjusts the global log level. Unknown levels are ignored.
func SetLevel(level string) {
	if lv, err := log.ParseLevel(level); err == nil {
		std.SetLevel(lv)
	}
}

// WithComponent returns an entry tagged with the originating component.
func WithComponent(name string) *log.Entry {
	return std.WithField("component", name)
}
