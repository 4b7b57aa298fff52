package internal

import (
	"log"
	"os"

	"github.com/google/uuid"
)

// InitLogging sends the standard logger to stdout with microsecond stamps.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// StartRun generates an identifier for one CLI invocation and prefixes every
// subsequent log line with its first eight characters.
func StartRun() string {
	id := uuid.NewString()
	log.SetPrefix("[run " + ShortID(id) + "] ")
	return id
}

// ShortID returns the leading eight characters of a run identifier.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
