package core

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// NewLogger returns a new pre-configured logger writing to stderr, leaving stdout to command output.
func NewLogger(level uint32) *log.Logger {
	logger := log.New()

	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Only log the given severity or above.
	logger.SetLevel(log.Level(level))

	return logger
}
