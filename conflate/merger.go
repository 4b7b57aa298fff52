package conflate

import "github.com/theoremus-urban-solutions/trailmerge/geo"

// Merge appends segs, in order, as new segments of the master's first
// track. A master without tracks gets one. Existing segments are never
// touched. It returns the number of segments appended.
func Merge(master *geo.Trail, segs []geo.Segment) int {
	if len(segs) == 0 {
		return 0
	}
	if len(master.Tracks) == 0 {
		master.Tracks = append(master.Tracks, geo.Track{Name: master.Name})
	}
	track := &master.Tracks[0]
	for _, s := range segs {
		track.Segments = append(track.Segments, geo.Segment{Points: append([]geo.Point(nil), s.Points...)})
	}
	return len(segs)
}
