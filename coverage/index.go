package coverage

import (
	"fmt"
	"sort"

	"github.com/uber/h3-go/v4"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// DefaultResolution is the H3 resolution used when none is configured.
const DefaultResolution = 11

const maxResolution = 15

// Reader is the read-only view of an Index.
type Reader interface {
	Contains(p geo.Point) bool
	Len() int
	Resolution() int
}

// Index is a grow-only set of H3 cells.
type Index struct {
	resolution int
	cells      map[h3.Cell]struct{}
}

// NewIndex creates an empty index at the given resolution.
func NewIndex(resolution int) (*Index, error) {
	if resolution < 0 || resolution > maxResolution {
		return nil, fmt.Errorf("h3 resolution %d out of range 0..%d", resolution, maxResolution)
	}
	return &Index{resolution: resolution, cells: map[h3.Cell]struct{}{}}, nil
}

// FromTrail builds an index covering every point of every track in t.
func FromTrail(t geo.Trail, resolution int) (*Index, error) {
	ix, err := NewIndex(resolution)
	if err != nil {
		return nil, err
	}
	for _, s := range t.Segments() {
		ix.Add(s)
	}
	return ix, nil
}

// CellID returns the cell p falls in at the index resolution.
func (ix *Index) CellID(p geo.Point) h3.Cell {
	return h3.LatLngToCell(h3.NewLatLng(p.Latitude, p.Longitude), ix.resolution)
}

// Contains reports whether p's cell is covered.
func (ix *Index) Contains(p geo.Point) bool {
	_, ok := ix.cells[ix.CellID(p)]
	return ok
}

// Add marks every point of s as covered.
func (ix *Index) Add(s geo.Segment) {
	ix.AddPoints(s.Points)
}

// AddPoints marks every point in pts as covered.
func (ix *Index) AddPoints(pts []geo.Point) {
	for _, p := range pts {
		ix.cells[ix.CellID(p)] = struct{}{}
	}
}

// Len returns the number of covered cells.
func (ix *Index) Len() int { return len(ix.cells) }

// Resolution returns the H3 resolution of the index.
func (ix *Index) Resolution() int { return ix.resolution }

// Cells returns the covered cells in ascending order.
func (ix *Index) Cells() []h3.Cell {
	out := make([]h3.Cell, 0, len(ix.cells))
	for c := range ix.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
