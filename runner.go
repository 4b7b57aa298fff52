package trailmerge

import (
	"errors"

	"github.com/theoremus-urban-solutions/trailmerge/config"
	"github.com/theoremus-urban-solutions/trailmerge/snap"
)

// ErrNoSnapper is returned by SnapDir when the runner has no snapping service.
var ErrNoSnapper = errors.New("no snapping service configured")

// Runner executes merge and preparation runs with one configuration.
type Runner struct {
	Cfg     config.AppConfig
	Snapper *snap.Orchestrator
	RunID   string
}

// NewRunner validates cfg and wraps s in a window orchestrator. A nil s
// disables snapping: merges diff the raw input tracks.
func NewRunner(cfg config.AppConfig, s snap.Snapper) (*Runner, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	r := &Runner{Cfg: cfg}
	if s != nil {
		o, err := snap.NewOrchestrator(s, SnapOptions(cfg.Snapping))
		if err != nil {
			return nil, err
		}
		r.Snapper = o
	}
	return r, nil
}

// SnapOptions maps the snapping configuration to orchestrator options.
func SnapOptions(c config.SnappingConfig) snap.Options {
	return snap.Options{
		WindowSize:        c.WindowSize,
		GuidingPoints:     c.GuidingPoints,
		Interpolate:       c.Interpolate,
		KeepGuidingPoints: c.KeepGuidingPoints,
	}
}

func (r *Runner) workers() int {
	if r.Cfg.Merge.Workers < 1 {
		return 1
	}
	return r.Cfg.Merge.Workers
}

func (r *Runner) snapping() bool {
	return r.Cfg.Merge.SnapInputs && r.Snapper != nil
}

