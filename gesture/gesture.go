package gesture

import (
	"honnef.co/go/swipeview/swipe"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
)

// Swipe converts Gio pointer events into events for a swipe.Tracker. It follows the first pointer that presses
// the primary button and grabs it until the gesture ends.
type Swipe struct {
	// pressed tracks whether a pointer is pressed.
	pressed bool
	// pid is the pointer.ID of the pressed pointer.
	pid pointer.ID
}

// Add the handler to the operation list to receive pointer events.
func (s *Swipe) Add(ops *op.Ops) {
	pointer.InputOp{
		Tag:   s,
		Grab:  s.pressed,
		Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
	}.Add(ops)
}

// Pressed returns whether a pointer is pressing.
func (s *Swipe) Pressed() bool {
	return s.pressed
}

// Events returns the next swipe events, if any.
func (s *Swipe) Events(q event.Queue) []swipe.Event {
	var events []swipe.Event
	for _, evt := range q.Events(s) {
		e, ok := evt.(pointer.Event)
		if !ok {
			continue
		}

		switch e.Kind {
		case pointer.Press:
			if s.pressed {
				continue
			}
			if e.Source == pointer.Mouse && e.Buttons != pointer.ButtonPrimary {
				continue
			}
			s.pressed = true
			s.pid = e.PointerID
			events = append(events, FromPointer(swipe.TypePress, e))
		case pointer.Drag:
			if !s.pressed || e.PointerID != s.pid {
				continue
			}
			events = append(events, FromPointer(swipe.TypeMove, e))
		case pointer.Release:
			if !s.pressed || e.PointerID != s.pid {
				continue
			}
			s.pressed = false
			events = append(events, FromPointer(swipe.TypeRelease, e))
		case pointer.Cancel:
			// Cancel affects all pointers
			if !s.pressed {
				continue
			}
			s.pressed = false
			events = append(events, swipe.Event{Type: swipe.TypeCancel, PointerID: s.pid})
		}
	}
	return events
}

// FromPointer converts a Gio pointer event to a swipe event of the given type.
func FromPointer(typ swipe.EventType, e pointer.Event) swipe.Event {
	return swipe.Event{
		Type:      typ,
		PointerID: e.PointerID,
		Position:  e.Position,
	}
}
