package snap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// DefaultEndpoint is the Google Roads snapToRoads endpoint.
const DefaultEndpoint = "https://roads.googleapis.com/v1/snapToRoads"

// RoadsClient is an HTTP Snapper for the snapToRoads JSON API.
// It is safe for concurrent use.
type RoadsClient struct {
	httpClient     *http.Client
	endpoint       string
	apiKey         string
	maxRetries     uint64
	initialBackoff time.Duration
	timeout        time.Duration
}

// ClientOption configures a RoadsClient.
type ClientOption func(*RoadsClient)

// WithHTTPClient sets the HTTP client requests are made with. The client
// is copied, never modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RoadsClient) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. It overrides the timeout of a
// client given with WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *RoadsClient) { c.timeout = d }
}

// WithMaxRetries bounds how often a transient failure is retried.
func WithMaxRetries(n int) ClientOption {
	return func(c *RoadsClient) {
		if n < 0 {
			n = 0
		}
		c.maxRetries = uint64(n)
	}
}

// WithInitialBackoff sets the first retry delay.
func WithInitialBackoff(d time.Duration) ClientOption {
	return func(c *RoadsClient) { c.initialBackoff = d }
}

// NewRoadsClient creates a client for endpoint; an empty endpoint means
// DefaultEndpoint.
func NewRoadsClient(endpoint, apiKey string, opts ...ClientOption) *RoadsClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &RoadsClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		endpoint:       endpoint,
		apiKey:         apiKey,
		maxRetries:     4,
		initialBackoff: 500 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

type roadsResponse struct {
	SnappedPoints []struct {
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		OriginalIndex *int   `json:"originalIndex"`
		PlaceID       string `json:"placeId"`
	} `json:"snappedPoints"`
	WarningMessage string `json:"warningMessage"`
}

type roadsError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Snap sends one window. Network errors, 429 and 5xx answers are retried
// with exponential backoff; everything else fails immediately.
func (c *RoadsClient) Snap(ctx context.Context, req Request) ([]SnappedPoint, error) {
	if len(req.Path) == 0 {
		return []SnappedPoint{}, nil
	}
	u, err := c.requestURL(req)
	if err != nil {
		return nil, err
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(backoff.WithInitialInterval(c.initialBackoff)), c.maxRetries),
		ctx,
	)
	notify := func(err error, next time.Duration) {
		log.Printf("[snap] %d points: %v; retrying in %s", len(req.Path), err, next.Round(time.Millisecond))
	}
	return backoff.RetryNotifyWithData(func() ([]SnappedPoint, error) {
		return c.do(ctx, u, req)
	}, b, notify)
}

func (c *RoadsClient) requestURL(req Request) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("snap endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("path", encodePath(req.Path))
	q.Set("interpolate", strconv.FormatBool(req.Interpolate))
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *RoadsClient) do(ctx context.Context, u string, req Request) ([]SnappedPoint, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("failed to call snap service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snap response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var re roadsError
		if json.Unmarshal(body, &re) == nil {
			apiErr.Status = re.Error.Status
			apiErr.Message = re.Error.Message
		}
		if apiErr.Temporary() {
			return nil, apiErr
		}
		return nil, backoff.Permanent(apiErr)
	}

	var rr roadsResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	if rr.WarningMessage != "" {
		log.Printf("[snap] service warning: %s", rr.WarningMessage)
	}

	out := make([]SnappedPoint, 0, len(rr.SnappedPoints))
	for _, sp := range rr.SnappedPoints {
		idx := Inserted
		if sp.OriginalIndex != nil {
			idx = *sp.OriginalIndex
		}
		out = append(out, SnappedPoint{
			Point:         geo.Point{Latitude: sp.Location.Latitude, Longitude: sp.Location.Longitude},
			OriginalIndex: idx,
			PlaceID:       sp.PlaceID,
		})
	}
	if err := Validate(req, out); err != nil {
		return nil, backoff.Permanent(err)
	}
	return out, nil
}

// encodePath renders points as the service's "lat,lng|lat,lng" path.
func encodePath(pts []geo.Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(p.Latitude, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	}
	return b.String()
}

// IsTemporary reports whether err is a retryable service failure.
func IsTemporary(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Temporary()
}
