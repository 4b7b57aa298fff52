package trailmerge

import "log"

func logf(format string, args ...any) {
	log.Printf("[merge] "+format, args...)
}
