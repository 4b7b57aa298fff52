package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// APIKeyEnv overrides snapping.apiKey when set.
const APIKeyEnv = "TRAILMERGE_API_KEY"

// DefaultPaths are tried in order when no configuration file is named.
var DefaultPaths = []string{"trailmerge.yml", "config.yml"}

// Config is the global application configuration
var Config = Default()

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		Interpolation: InterpolationConfig{MaxDistanceMeters: 290},
		Snapping: SnappingConfig{
			Endpoint:      "https://roads.googleapis.com/v1/snapToRoads",
			WindowSize:    100,
			GuidingPoints: 10,
			TimeoutMS:     10000,
			MaxRetries:    4,
		},
		Coverage: CoverageConfig{Resolution: 11},
		Diff:     DiffConfig{MinSegmentMeters: 50},
		Merge: MergeConfig{
			SnapInputs:     true,
			Workers:        2,
			InputExtension: ".gpx",
		},
	}
}

// Load reads path on top of Default() and validates the result. An empty
// path tries DefaultPaths and falls back to the defaults when none exists;
// a named file that cannot be read is an error.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	data, err := read(path)
	if err != nil {
		return AppConfig{}, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Snapping.APIKey = key
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// LoadAppConfig loads the configuration into the global Config.
func LoadAppConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg AppConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func read(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return data, nil
	}
	for _, p := range DefaultPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}
	return nil, nil
}
