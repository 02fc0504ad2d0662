package swipe

import (
	"errors"
	"fmt"
	"image"
	"math"

	"honnef.co/go/swipeview/container"

	"gioui.org/f32"
	"golang.org/x/exp/constraints"
)

var (
	// ErrUnsupportedDirection is returned by mappers when the gesture moves in a direction that isn't part of
	// the configured set. The element must not move.
	ErrUnsupportedDirection = errors.New("unsupported direction")
	// ErrVertical is returned by mappers for vertical gestures, which never move the element.
	ErrVertical = errors.New("vertical dragging is not implemented")
	// ErrOutOfRange is returned by Tracker.Move when a mapper places the element at a position that isn't a
	// finite coordinate within the int32 range.
	ErrOutOfRange = errors.New("element position out of range")
)

// resistanceExponent shapes the curve applied to travel beyond the threshold.
const resistanceExponent = 0.8

// Motion describes a single pointer move within a gesture.
type Motion struct {
	// Direction is the classified bearing from OriginPointer to Pointer.
	Direction Direction
	// OriginElement is the element's (left, top) when the gesture started.
	OriginElement f32.Point
	// OriginPointer is the pointer position when the gesture started.
	OriginPointer f32.Point
	// Pointer is the current pointer position.
	Pointer f32.Point
	// Element and Container are the current bounds of the dragged element and of the area it lives in.
	Element   image.Rectangle
	Container image.Rectangle
}

// Moved returns the horizontal pointer travel since the start of the gesture.
func (m Motion) Moved() float32 {
	return m.Pointer.X - m.OriginPointer.X
}

// A Mapper turns pointer motion into a new left coordinate for the dragged element. A non-nil error means that
// the element must stay where it is.
type Mapper interface {
	Left(cfg Config, m Motion) (float32, error)
}

// Resistance tracks the pointer 1:1 up to the threshold and eases further travel with a power curve, producing
// a rubber band effect. Only horizontal, supported directions move the element.
type Resistance struct{}

func (Resistance) Left(cfg Config, m Motion) (float32, error) {
	if !cfg.Directions.Has(m.Direction) {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedDirection, m.Direction)
	}
	if !m.Direction.Horizontal() {
		return 0, ErrVertical
	}
	return m.OriginElement.X + Ease(m.Moved(), cfg.Threshold), nil
}

// Ease maps pointer travel to element travel. Travel shorter than the threshold is returned unchanged. Beyond
// that, the excess grows with an exponent of 0.8. Both branches agree at the threshold and the result is
// monotonically non-decreasing in moved.
func Ease(moved, threshold float32) float32 {
	a := abs(moved)
	if a < threshold {
		return moved
	}
	eased := math.Pow(float64(a-threshold), resistanceExponent) + float64(threshold)
	return sign(moved) * float32(eased)
}

// Clamp lets the element follow the pointer but keeps its left edge within [Container.Min.X, Container.Max.X -
// element width]. It ignores the gesture's direction.
type Clamp struct{}

func (Clamp) Left(cfg Config, m Motion) (float32, error) {
	left := m.OriginElement.X + m.Moved()
	lo := float32(m.Container.Min.X)
	hi := float32(m.Container.Max.X - m.Element.Dx())
	// The upper bound wins when the element is wider than the container.
	return atMost(atLeast(left, lo), hi), nil
}

// DirectionalClamp lets the element follow the pointer but stops it at its original position on sides whose
// direction isn't supported.
type DirectionalClamp struct{}

func (DirectionalClamp) Left(cfg Config, m Motion) (float32, error) {
	left := m.OriginElement.X + m.Moved()
	if !cfg.Directions.Has(Right) {
		left = atMost(left, m.OriginElement.X)
	}
	if !cfg.Directions.Has(Left) {
		left = atLeast(left, m.OriginElement.X)
	}
	return left, nil
}

// ShouldCommit decides whether the total horizontal pointer travel of a gesture counts as a swipe. Travel of at
// least threshold to the right commits Right, travel of at least threshold to the left commits Left.
func ShouldCommit(dx, threshold float32) container.Option[Direction] {
	switch {
	case dx >= threshold:
		return container.Some(Right)
	case dx <= -threshold:
		return container.Some(Left)
	default:
		return container.None[Direction]()
	}
}

// Policy selects one of the built-in mappers.
type Policy uint8

const (
	PolicyResistance Policy = iota
	PolicyClamp
	PolicyDirectionalClamp

	numPolicies
)

var policyNames = [...]string{
	PolicyResistance:       "resistance",
	PolicyClamp:            "clamp",
	PolicyDirectionalClamp: "directional-clamp",
}

func (p Policy) String() string {
	if p < numPolicies {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// ParsePolicy parses the name of a policy, as returned by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return Policy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q", s)
}

// Mapper returns the mapper implementing the policy.
func (p Policy) Mapper() Mapper {
	switch p {
	case PolicyResistance:
		return Resistance{}
	case PolicyClamp:
		return Clamp{}
	case PolicyDirectionalClamp:
		return DirectionalClamp{}
	default:
		panic(fmt.Sprintf("unhandled policy %s", p))
	}
}

func abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func sign[T constraints.Signed | constraints.Float](v T) T {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

func atLeast[T constraints.Ordered](v, lo T) T {
	if v < lo {
		return lo
	}
	return v
}

func atMost[T constraints.Ordered](v, hi T) T {
	if v > hi {
		return hi
	}
	return v
}
