package main

import (
	"context"
	"log"
	"net/http"

	"github.com/theoremus-urban-solutions/trailmerge/config"
	"github.com/theoremus-urban-solutions/trailmerge/snap"
)

// service owns the snapping client and its optional response cache.
// This is CLI-specific wiring and is not part of the core library.
type service struct {
	client *snap.RoadsClient
	cache  *snap.Cache
}

// newService keeps up to workers idle connections to the snapping
// endpoint, one per concurrently prepared file.
func newService(c config.SnappingConfig, workers int) (*service, error) {
	if c.APIKey == "" && c.Endpoint == snap.DefaultEndpoint {
		log.Printf("[snap] no API key configured; set snapping.apiKey or %s", config.APIKeyEnv)
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = max(workers, 1)
	s := &service{client: snap.NewRoadsClient(c.Endpoint, c.APIKey,
		snap.WithHTTPClient(&http.Client{Transport: tr}),
		snap.WithTimeout(c.Timeout()),
		snap.WithMaxRetries(c.MaxRetries),
	)}
	if c.CachePath != "" {
		cache, err := snap.OpenCache(c.CachePath, s.client)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// snapper returns the outermost Snapper, or nil when s is nil.
func (s *service) snapper() snap.Snapper {
	switch {
	case s == nil:
		return nil
	case s.cache != nil:
		return s.cache
	default:
		return s.client
	}
}

func (s *service) close() {
	if s.cache == nil {
		return
	}
	hits, misses := s.cache.Stats()
	if n, err := s.cache.Len(context.Background()); err != nil {
		log.Printf("[cache] %d hits, %d misses; count stored: %v", hits, misses, err)
	} else {
		log.Printf("[cache] %d hits, %d misses, %d stored", hits, misses, n)
	}
	if err := s.cache.Close(); err != nil {
		log.Printf("[cache] close: %v", err)
	}
}
