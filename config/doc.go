// Package config handles application configuration loading and validation.
//
// Configuration is read from a YAML file (trailmerge.yml or config.yml in the
// working directory unless a path is given) on top of Default(), so a file
// only needs the keys it changes. The result is validated using struct tags.
// TRAILMERGE_API_KEY in the environment overrides snapping.apiKey.
package config
