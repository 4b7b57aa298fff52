package snap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// Inserted is the OriginalIndex of a point the service added on its own.
const Inserted = -1

var (
	// ErrMalformedResponse is returned when a response cannot be aligned
	// with its request.
	ErrMalformedResponse = errors.New("malformed snap response")

	// ErrInvalidWindow is returned for window settings outside 0 <= G < W.
	ErrInvalidWindow = errors.New("invalid snap window")
)

// Request is one window sent to the snapping service.
type Request struct {
	Path        []geo.Point
	Interpolate bool
}

// SnappedPoint is one point of a snapping response.
type SnappedPoint struct {
	Point         geo.Point `json:"point"`
	OriginalIndex int       `json:"originalIndex"`
	PlaceID       string    `json:"placeId,omitempty"`
}

// Snapper is the road-snapping service boundary.
type Snapper interface {
	Snap(ctx context.Context, req Request) ([]SnappedPoint, error)
}

// SnapperFunc adapts a function to the Snapper interface.
type SnapperFunc func(ctx context.Context, req Request) ([]SnappedPoint, error)

// Snap calls f.
func (f SnapperFunc) Snap(ctx context.Context, req Request) ([]SnappedPoint, error) {
	return f(ctx, req)
}

// APIError is a non-200 answer from the snapping service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("snap service: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("snap service: HTTP %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Validate checks that resp can be aligned with req: original indexes lie
// inside the request, strictly increase, and inserted points only appear
// when service-side interpolation was requested.
func Validate(req Request, resp []SnappedPoint) error {
	if len(req.Path) > 0 && len(resp) == 0 {
		return fmt.Errorf("%w: empty response for %d points", ErrMalformedResponse, len(req.Path))
	}
	last := -1
	for i, sp := range resp {
		if sp.OriginalIndex == Inserted {
			if !req.Interpolate {
				return fmt.Errorf("%w: point %d inserted without interpolation", ErrMalformedResponse, i)
			}
			continue
		}
		if sp.OriginalIndex < 0 || sp.OriginalIndex >= len(req.Path) {
			return fmt.Errorf("%w: point %d has original index %d outside request of %d", ErrMalformedResponse, i, sp.OriginalIndex, len(req.Path))
		}
		if sp.OriginalIndex <= last {
			return fmt.Errorf("%w: point %d original index %d after %d", ErrMalformedResponse, i, sp.OriginalIndex, last)
		}
		last = sp.OriginalIndex
	}
	return nil
}
