package debugviz

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/trailmerge/trailfile"
)

// FeatureCollection returns one LineString feature per non-empty segment.
// Every feature carries its layer name and its index inside the layer.
func FeatureCollection(l Layers) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, ly := range l.ordered() {
		for i, s := range ly.Segments {
			if len(s.Points) == 0 {
				continue
			}
			f := geojson.NewFeature(s.LineString())
			f.Properties["layer"] = ly.Name
			f.Properties["index"] = i
			f.Properties["meters"] = s.Length()
			fc.Append(f)
		}
	}
	return fc
}

// WriteGeoJSON writes the GeoJSON rendering of l to path.
func WriteGeoJSON(path string, l Layers) error {
	b, err := FeatureCollection(l).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return trailfile.WriteFileAtomic(path, b, 0o644)
}
