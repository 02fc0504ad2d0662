package config

import (
	"flag"
	"fmt"

	"gioui.org/unit"
)

// Flags holds command-line overrides for a configuration file.
type Flags struct {
	Path       string
	Threshold  float64
	Directions string
	Policy     string
}

// Register defines the flags on fs.
func (fl *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&fl.Path, "config", "", "configuration file")
	fs.Float64Var(&fl.Threshold, "threshold", 0, "swipe threshold in dp (overrides the configuration file)")
	fs.StringVar(&fl.Directions, "directions", "", "supported directions, as a bitmask or comma-separated names (overrides the configuration file)")
	fs.StringVar(&fl.Policy, "policy", "", "motion policy: resistance, clamp or directional-clamp (overrides the configuration file)")
}

// File loads the configuration file, if any, and applies the overrides.
func (fl *Flags) File() (File, error) {
	var f File
	if fl.Path != "" {
		var err error
		f, err = Load(fl.Path)
		if err != nil {
			return File{}, err
		}
	}
	if fl.Threshold < 0 {
		return File{}, fmt.Errorf("invalid threshold %v", fl.Threshold)
	}
	if fl.Threshold > 0 {
		f.Threshold = unit.Dp(fl.Threshold)
	}
	if fl.Directions != "" {
		ds, err := ParseDirections(fl.Directions)
		if err != nil {
			return File{}, err
		}
		f.Directions = &Directions{ds}
	}
	if fl.Policy != "" {
		f.Policy = fl.Policy
	}
	return f, nil
}
