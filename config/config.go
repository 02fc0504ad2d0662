// Package config loads swipe configurations from JSON files and command-line flags.
//
// A configuration file looks like this:
//
//	{
//		"directions": ["left", "right"],
//		"threshold": 50,
//		"policy": "resistance"
//	}
//
// Directions may also be given as a bitmask (left=1, up=2, right=4, down=8). The threshold is in
// device-independent pixels and converted to pixels with a unit.Metric.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"honnef.co/go/swipeview/swipe"

	"gioui.org/unit"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultThreshold is the threshold used when the file doesn't specify one.
const DefaultThreshold unit.Dp = 50

//go:embed schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("mem://swipeview/config.json", schemaSource)

// Directions is a set of directions that decodes from either a bitmask or a list of names.
type Directions struct {
	swipe.Directions
}

func (ds *Directions) UnmarshalJSON(b []byte) error {
	var flags int
	if err := json.Unmarshal(b, &flags); err == nil {
		ds.Directions = swipe.DirectionsFromFlags(flags)
		return nil
	}
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return fmt.Errorf("directions must be a bitmask or a list of names: %w", err)
	}
	dirs, err := parseNames(names)
	if err != nil {
		return err
	}
	ds.Directions = dirs
	return nil
}

func (ds Directions) MarshalJSON() ([]byte, error) {
	dirs := ds.Slice()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return json.Marshal(names)
}

// ParseDirections parses either a bitmask or a comma-separated list of direction names.
func ParseDirections(s string) (swipe.Directions, error) {
	if flags, err := strconv.Atoi(s); err == nil {
		return swipe.DirectionsFromFlags(flags), nil
	}
	if strings.TrimSpace(s) == "" {
		return swipe.NewDirections(), nil
	}
	return parseNames(strings.Split(s, ","))
}

func parseNames(names []string) (swipe.Directions, error) {
	ds := swipe.NewDirections()
	for _, name := range names {
		d, err := swipe.ParseDirection(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		ds.Add(d)
	}
	return ds, nil
}

// File is the content of a configuration file. Zero fields take their defaults.
type File struct {
	// Directions defaults to left and right.
	Directions *Directions `json:"directions,omitempty"`
	// Threshold is in dp and defaults to DefaultThreshold.
	Threshold unit.Dp `json:"threshold,omitempty"`
	// Policy defaults to "resistance".
	Policy string `json:"policy,omitempty"`
}

// Parse validates and decodes a configuration file.
func Parse(data []byte) (File, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return File{}, fmt.Errorf("couldn't parse configuration: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return File{}, fmt.Errorf("invalid configuration: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("couldn't decode configuration: %w", err)
	}
	return f, nil
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Config converts the file to a swipe configuration, using m to convert the threshold to pixels.
func (f File) Config(m unit.Metric) (swipe.Config, error) {
	cfg := swipe.Config{
		Directions: swipe.NewDirections(swipe.Left, swipe.Right),
		Threshold:  float32(m.Dp(DefaultThreshold)),
	}
	if f.Directions != nil {
		cfg.Directions = f.Directions.Directions
	}
	if f.Threshold != 0 {
		cfg.Threshold = float32(m.Dp(f.Threshold))
	}
	if f.Policy != "" {
		p, err := swipe.ParsePolicy(f.Policy)
		if err != nil {
			return swipe.Config{}, err
		}
		cfg.Policy = p
	}
	if err := cfg.Validate(); err != nil {
		return swipe.Config{}, err
	}
	return cfg, nil
}
