package swipe

import (
	"fmt"
	"math"
	"strings"

	"honnef.co/go/swipeview/container"

	"gioui.org/f32"
)

// Direction is one of the four cardinal swipe directions. The values double as bit flags so that a set of
// directions can be stored as a single integer in configuration files.
type Direction uint8

const (
	Left Direction = 1 << iota
	Up
	Right
	Down
)

// allFlags is the union of all direction flags.
const allFlags = int(Left | Up | Right | Down)

var directionNames = map[Direction]string{
	Left:  "left",
	Up:    "up",
	Right: "right",
	Down:  "down",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Horizontal reports whether d is Left or Right.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// ParseDirection parses the lower-case name of a direction.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Directions is a set of directions.
type Directions container.Set[Direction]

// NewDirections returns a set containing dirs.
func NewDirections(dirs ...Direction) Directions {
	ds := make(Directions, len(dirs))
	for _, d := range dirs {
		ds.Add(d)
	}
	return ds
}

// DirectionsFromFlags decodes a bitmask of direction flags. Bits that don't correspond to a direction are
// ignored.
func DirectionsFromFlags(flags int) Directions {
	ds := Directions{}
	for d := range directionNames {
		if flags&int(d) == int(d) {
			ds.Add(d)
		}
	}
	return ds
}

func (ds Directions) Add(d Direction) {
	container.Set[Direction](ds).Add(d)
}

func (ds Directions) Has(d Direction) bool {
	return container.Set[Direction](ds).Has(d)
}

// Flags encodes the set as a bitmask.
func (ds Directions) Flags() int {
	var flags int
	for d := range ds {
		flags |= int(d)
	}
	return flags & allFlags
}

// Slice returns the directions in flag order.
func (ds Directions) Slice() []Direction {
	return container.Sorted(container.Set[Direction](ds))
}

func (ds Directions) String() string {
	dirs := ds.Slice()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Bearing returns the direction of travel from one point to another in degrees, in the range [0, 360). 0° means
// that the pointer moved right, 90° that it moved up. Coordinates use the usual screen convention of Y pointing
// down. Identical points have a bearing of 0°.
func Bearing(from, to f32.Point) float64 {
	rad := math.Atan2(float64(from.Y-to.Y), float64(to.X-from.X))
	return math.Mod(rad*180/math.Pi+360, 360)
}

// Classify buckets the bearing from one point to another into one of four 90° sectors. The sectors are
// half-open and partition [0, 360): [45, 135) is Up, [225, 315) is Down, [135, 225) is Left and everything
// else is Right. Classify(p, p) is Right.
func Classify(from, to f32.Point) Direction {
	return classifyBearing(Bearing(from, to))
}

func classifyBearing(deg float64) Direction {
	switch {
	case deg >= 45 && deg < 135:
		return Up
	case deg >= 0 && deg < 45, deg >= 315 && deg < 360:
		return Right
	case deg >= 225 && deg < 315:
		return Down
	default:
		return Left
	}
}
