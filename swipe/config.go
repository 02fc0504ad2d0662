package swipe

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidThreshold = errors.New("threshold must be a positive, finite number")

// Config configures a Tracker. A Config must not be modified once it has been passed to a tracker; use
// Tracker.SetConfig to change the configuration.
type Config struct {
	// Directions is the set of directions the element may be dragged in. Only Left and Right have an
	// effect; Up and Down are accepted but never move the element.
	Directions Directions
	// Threshold, in pixels, is the pointer travel beyond which motion is resisted and at which a release
	// commits a swipe.
	Threshold float32
	// Policy selects the mapper used by trackers that don't have an explicit one.
	Policy Policy
}

func (cfg Config) Validate() error {
	if !(cfg.Threshold > 0) || math.IsInf(float64(cfg.Threshold), 1) {
		return fmt.Errorf("%w, got %v", ErrInvalidThreshold, cfg.Threshold)
	}
	if cfg.Policy >= numPolicies {
		return fmt.Errorf("invalid policy %s", cfg.Policy)
	}
	return nil
}

func (cfg Config) clone() Config {
	cfg.Directions = NewDirections(cfg.Directions.Slice()...)
	return cfg
}
