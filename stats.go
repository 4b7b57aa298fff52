package trailmerge

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunStats summarizes one merge run.
type RunStats struct {
	RunID         string
	StartedAt     time.Time
	Duration      time.Duration
	MasterCreated bool
	Files         int
	Tracks        int
	InputPoints   int
	// SegmentMeters holds the length of every accepted segment in order.
	SegmentMeters []float64
	CellsBefore   int
	CellsAfter    int
	MasterPoints  int
}

// Segments returns the number of accepted segments.
func (s RunStats) Segments() int { return len(s.SegmentMeters) }

// AcceptedMeters returns the total length added to the master.
func (s RunStats) AcceptedMeters() float64 { return floats.Sum(s.SegmentMeters) }

// MeanSegmentMeters returns the mean accepted segment length, or 0.
func (s RunStats) MeanSegmentMeters() float64 {
	if len(s.SegmentMeters) == 0 {
		return 0
	}
	return stat.Mean(s.SegmentMeters, nil)
}

func (s RunStats) String() string {
	return fmt.Sprintf("started %s in %s: %d files, %d tracks, %d points; %d segments added (%.0f m, mean %.0f m); cells %d -> %d; master now %d points",
		iso8601(s.StartedAt), s.Duration.Round(time.Millisecond),
		s.Files, s.Tracks, s.InputPoints,
		s.Segments(), s.AcceptedMeters(), s.MeanSegmentMeters(),
		s.CellsBefore, s.CellsAfter, s.MasterPoints)
}
