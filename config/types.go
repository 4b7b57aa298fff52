package config

import "time"

// InterpolationConfig controls geodesic densification before snapping
type InterpolationConfig struct {
	MaxDistanceMeters float64 `yaml:"maxDistanceMeters" validate:"gt=0"`
}

// SnappingConfig contains road-snapping service configuration
type SnappingConfig struct {
	Endpoint          string `yaml:"endpoint" validate:"required,url"`
	APIKey            string `yaml:"apiKey"`
	WindowSize        int    `yaml:"windowSize" validate:"gte=2"`
	GuidingPoints     int    `yaml:"guidingPoints" validate:"gte=0,ltfield=WindowSize"`
	Interpolate       bool   `yaml:"interpolate"`
	KeepGuidingPoints bool   `yaml:"keepGuidingPoints"`
	TimeoutMS         int    `yaml:"timeoutMS" validate:"gte=0"`
	MaxRetries        int    `yaml:"maxRetries" validate:"gte=0"`
	CachePath         string `yaml:"cachePath"`
}

// Timeout returns the per-request timeout; zero means no timeout.
func (s SnappingConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// CoverageConfig contains coverage index configuration
type CoverageConfig struct {
	Resolution   int    `yaml:"resolution" validate:"gte=0,lte=15"`
	SnapshotPath string `yaml:"snapshotPath"`
}

// DiffConfig contains segment differ configuration
type DiffConfig struct {
	MinSegmentMeters float64 `yaml:"minSegmentMeters" validate:"gt=0"`
}

// MergeConfig contains merge run configuration
type MergeConfig struct {
	SnapInputs     bool   `yaml:"snapInputs"`
	Workers        int    `yaml:"workers" validate:"gte=1"`
	InputExtension string `yaml:"inputExtension"`
}

// DebugConfig names the optional debug outputs; empty paths are skipped
type DebugConfig struct {
	ScriptPath        string  `yaml:"scriptPath"`
	GeoJSONPath       string  `yaml:"geojsonPath"`
	PlotPath          string  `yaml:"plotPath"`
	SimplifyTolerance float64 `yaml:"simplifyTolerance" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Snapping      SnappingConfig      `yaml:"snapping"`
	Coverage      CoverageConfig      `yaml:"coverage"`
	Diff          DiffConfig          `yaml:"diff"`
	Merge         MergeConfig         `yaml:"merge"`
	Debug         DebugConfig         `yaml:"debug"`
}
