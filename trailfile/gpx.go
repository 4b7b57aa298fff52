package trailfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/theoremus-urban-solutions/trailmerge/geo"
)

// Creator is written into every GPX document this package produces.
const Creator = "trailmerge"

// Read parses the trail file at path.
func Read(path string) (*gpx.GPX, error) {
	g, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// Parse parses a trail document held in memory.
func Parse(b []byte) (*gpx.GPX, error) {
	g, err := gpx.ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("parse trail: %w", err)
	}
	return g, nil
}

// ReadTrail reads path and converts it to a trail named after the file.
func ReadTrail(path string) (geo.Trail, error) {
	g, err := Read(path)
	if err != nil {
		return geo.Trail{}, err
	}
	return ToTrail(g, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))), nil
}

// ReadMaster reads the master document. A master that does not exist yet
// is a new empty document and exists is false; any other failure is an
// error.
func ReadMaster(path string) (g *gpx.GPX, exists bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return FromTrail(geo.Trail{Name: "master"}), false, nil
	}
	g, err = Read(path)
	if err != nil {
		return nil, false, err
	}
	return g, true, nil
}

// ToTrail converts the tracks of g. Waypoints and routes are ignored.
func ToTrail(g *gpx.GPX, name string) geo.Trail {
	if g.Name != "" {
		name = g.Name
	}
	t := geo.Trail{Name: name, Tracks: make([]geo.Track, 0, len(g.Tracks))}
	for _, trk := range g.Tracks {
		track := geo.Track{Name: trk.Name, Segments: make([]geo.Segment, 0, len(trk.Segments))}
		for _, seg := range trk.Segments {
			pts := make([]geo.Point, 0, len(seg.Points))
			for _, p := range seg.Points {
				pts = append(pts, geo.Point{Latitude: p.Latitude, Longitude: p.Longitude})
			}
			track.Segments = append(track.Segments, geo.Segment{Points: pts})
		}
		t.Tracks = append(t.Tracks, track)
	}
	return t
}

// FromTrail builds a new GPX document holding the tracks of t.
func FromTrail(t geo.Trail) *gpx.GPX {
	g := &gpx.GPX{Version: "1.1", Creator: Creator, Name: t.Name}
	ReplaceTracks(g, t)
	return g
}

// ReplaceTracks swaps the tracks of g for those of t, leaving every other
// element of the document as it was.
func ReplaceTracks(g *gpx.GPX, t geo.Trail) {
	g.Tracks = make([]gpx.GPXTrack, 0, len(t.Tracks))
	for _, tr := range t.Tracks {
		trk := gpx.GPXTrack{Name: tr.Name, Segments: make([]gpx.GPXTrackSegment, 0, len(tr.Segments))}
		for _, seg := range tr.Segments {
			trk.Segments = append(trk.Segments, segment(seg))
		}
		g.Tracks = append(g.Tracks, trk)
	}
}

// AppendSegments adds segs as new segments of the first track of g,
// creating the track when g has none. Existing tracks, points and every
// other element of the document are left as they were.
func AppendSegments(g *gpx.GPX, segs []geo.Segment) int {
	if len(segs) == 0 {
		return 0
	}
	if len(g.Tracks) == 0 {
		g.Tracks = append(g.Tracks, gpx.GPXTrack{Name: g.Name})
	}
	trk := &g.Tracks[0]
	for _, s := range segs {
		trk.Segments = append(trk.Segments, segment(s))
	}
	return len(segs)
}

func segment(s geo.Segment) gpx.GPXTrackSegment {
	pts := make([]gpx.GPXPoint, 0, len(s.Points))
	for _, p := range s.Points {
		pts = append(pts, gpx.GPXPoint{Point: gpx.Point{Latitude: p.Latitude, Longitude: p.Longitude}})
	}
	return gpx.GPXTrackSegment{Points: pts}
}

// Strip removes waypoints and routes from g, keeping only tracks.
func Strip(g *gpx.GPX) {
	g.Waypoints = nil
	g.Routes = nil
}

// Marshal renders g as indented GPX 1.1.
func Marshal(g *gpx.GPX) ([]byte, error) {
	b, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("encode trail: %w", err)
	}
	return b, nil
}

// Write renders g to path atomically.
func Write(path string, g *gpx.GPX) error {
	b, err := Marshal(g)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, b, 0o644)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
