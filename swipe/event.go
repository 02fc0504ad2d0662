package swipe

import (
	"fmt"
	"image"

	"honnef.co/go/swipeview/container"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

const (
	// TypePress starts a gesture if it hits the element.
	TypePress EventType = iota + 1
	// TypeMove reports the new position of the active pointer.
	TypeMove
	// TypeRelease ends the gesture and may commit a swipe.
	TypeRelease
	// TypeCancel ends the gesture without committing a swipe.
	TypeCancel
)

type EventType uint8

var eventTypeNames = map[EventType]string{
	TypePress:   "press",
	TypeMove:    "move",
	TypeRelease: "release",
	TypeCancel:  "cancel",
}

func (typ EventType) String() string {
	if s, ok := eventTypeNames[typ]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", uint8(typ))
}

// ParseEventType parses the name of an event type, as returned by EventType.String.
func ParseEventType(s string) (EventType, error) {
	for typ, name := range eventTypeNames {
		if name == s {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// Event is a pointer sample delivered by the host, in the host's local coordinate space.
type Event struct {
	Type      EventType
	PointerID pointer.ID
	Position  f32.Point
}

func (ev Event) String() string {
	return fmt.Sprintf("%s(%d, %g, %g)", ev.Type, ev.PointerID, ev.Position.X, ev.Position.Y)
}

// Offset is a relative move that the host has to apply to the element.
type Offset struct {
	DX, DY int
}

func (off Offset) IsZero() bool {
	return off == Offset{}
}

func (off Offset) Point() image.Point {
	return image.Pt(off.DX, off.DY)
}

// Geometry provides the tracker with read access to the host's layout.
type Geometry interface {
	// Element returns the current bounds of the dragged element.
	Element() image.Rectangle
	// Container returns the area the element lives in, excluding padding.
	Container() image.Rectangle
}

// MoveResult describes the outcome of a pointer move during a gesture.
type MoveResult struct {
	// Direction is the classified bearing from the gesture's origin to the pointer.
	Direction Direction
	// Left is the element's new left coordinate. It is only meaningful if Err is nil.
	Left float32
	// Offset moves the element from its current position to Left.
	Offset Offset
	// Err explains why the element doesn't move, such as ErrUnsupportedDirection.
	Err error
}

// ReleaseResult describes the end of a gesture.
type ReleaseResult struct {
	// Reset moves the element back to the position it had when the gesture started.
	Reset Offset
	// Swiped is set if the gesture committed a swipe.
	Swiped container.Option[Direction]
}

// Result is the outcome of Tracker.Handle.
type Result struct {
	// Offset has to be applied to the element by the host.
	Offset Offset
	// Direction is set for moves during a gesture.
	Direction container.Option[Direction]
	// Swiped is set if the event committed a swipe.
	Swiped container.Option[Direction]
}
