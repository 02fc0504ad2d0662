package widget

import (
	"context"
	"image"
	rtrace "runtime/trace"
	"time"

	"honnef.co/go/swipeview/container"
	"honnef.co/go/swipeview/gesture"
	"honnef.co/go/swipeview/layout"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/op"
	"gioui.org/op/clip"
)

// DefaultSnapDuration is how long the element takes to travel back to its resting position after a gesture.
const DefaultSnapDuration = 150 * time.Millisecond

// Swipeable lays out a child that can be dragged and swiped horizontally. The child rests centered in the
// area given to Swipeable. Swipeable implements swipe.Geometry in the coordinate space of that area.
type Swipeable struct {
	Tracker *swipe.Tracker
	// SnapDuration overrides DefaultSnapDuration. A negative value disables the animation.
	SnapDuration time.Duration

	gesture gesture.Swipe
	// area is the size of the container, size the size of the child, as of the last layout.
	area, size image.Point
	// delta is the child's displacement from its resting position.
	delta image.Point
	snap  Animation[float32]

	swiped []swipe.Direction
}

var _ swipe.Geometry = (*Swipeable)(nil)

// NewSwipeable returns a Swipeable using cfg.
func NewSwipeable(cfg swipe.Config) (*Swipeable, error) {
	sw := &Swipeable{}
	tr, err := swipe.NewTracker(cfg, sw)
	if err != nil {
		return nil, err
	}
	sw.Tracker = tr
	return sw, nil
}

func (sw *Swipeable) rest() image.Point {
	return image.Pt((sw.area.X-sw.size.X)/2, (sw.area.Y-sw.size.Y)/2)
}

func (sw *Swipeable) Element() image.Rectangle {
	pos := sw.rest().Add(sw.delta)
	return image.Rectangle{Min: pos, Max: pos.Add(sw.size)}
}

func (sw *Swipeable) Container() image.Rectangle {
	return image.Rectangle{Max: sw.area}
}

// Dragging reports whether the child is being dragged.
func (sw *Swipeable) Dragging() bool {
	return sw.Tracker.Dragging()
}

// Update processes pending pointer events and returns the swipes they committed.
func (sw *Swipeable) Update(gtx layout.Context) []swipe.Direction {
	sw.swiped = sw.swiped[:0]
	if gtx.Queue == nil {
		return nil
	}
	for _, ev := range sw.gesture.Events(gtx.Queue) {
		before := sw.delta.X
		res, _ := sw.Tracker.Handle(ev)
		sw.delta = sw.delta.Add(res.Offset.Point())
		if dir, ok := res.Swiped.Get(); ok {
			sw.swiped = append(sw.swiped, dir)
		}
		if ev.Type == swipe.TypeRelease || ev.Type == swipe.TypeCancel {
			sw.startSnap(gtx, before)
		} else {
			sw.snap.Cancel()
		}
	}
	return sw.swiped
}

func (sw *Swipeable) startSnap(gtx layout.Context, from int) {
	d := sw.SnapDuration
	if d == 0 {
		d = DefaultSnapDuration
	}
	if d < 0 || from == sw.delta.X {
		return
	}
	StartSimpleAnimation(gtx, &sw.snap, float32(from), float32(sw.delta.X), d, EaseOut(3))
}

// Layout updates the state and lays out w at its current position. Swipeable fills the maximum constraints.
func (sw *Swipeable) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Swipeable.Layout").End()

	sw.Update(gtx)

	sw.area = gtx.Constraints.Max
	cgtx := gtx
	cgtx.Constraints.Min = image.Point{}
	m := op.Record(gtx.Ops)
	dims := w(cgtx)
	call := m.Stop()
	sw.size = dims.Size

	// Pointer input covers the whole area so that the gesture's coordinates don't move with the child.
	area := clip.Rect{Max: sw.area}.Push(gtx.Ops)
	sw.gesture.Add(gtx.Ops)

	pos := sw.Element().Min
	if !sw.snap.Done() {
		pos.X = sw.rest().X + int(sw.snap.Value(gtx))
	}
	stack := op.Offset(pos).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
	area.Pop()

	return layout.Dimensions{Size: sw.area}
}

// Last returns the most recent swipe committed during the last call to Update.
func (sw *Swipeable) Last() container.Option[swipe.Direction] {
	if len(sw.swiped) == 0 {
		return container.None[swipe.Direction]()
	}
	return container.Some(sw.swiped[len(sw.swiped)-1])
}
