// Package geom provides a free-standing element that hosts without a layout system of their own, tests and
// replays can use as the geometry of a swipe tracker.
package geom

import (
	"image"

	"honnef.co/go/swipeview/swipe"
)

// Box is a rectangular element inside a container. It implements swipe.Geometry.
type Box struct {
	Bounds image.Rectangle
	// Area is the container's content area.
	Area image.Rectangle
}

var _ swipe.Geometry = (*Box)(nil)

// NewBox returns a box of the given size whose top-left corner is at pos.
func NewBox(pos, size image.Point, area image.Rectangle) *Box {
	return &Box{
		Bounds: image.Rectangle{Min: pos, Max: pos.Add(size)},
		Area:   area,
	}
}

func (b *Box) Element() image.Rectangle   { return b.Bounds }
func (b *Box) Container() image.Rectangle { return b.Area }

// Apply moves the box by off.
func (b *Box) Apply(off swipe.Offset) {
	b.Bounds = b.Bounds.Add(off.Point())
}

// Handle passes ev to t and applies the resulting offset to the box.
func (b *Box) Handle(t *swipe.Tracker, ev swipe.Event) (swipe.Result, bool) {
	res, ok := t.Handle(ev)
	b.Apply(res.Offset)
	return res, ok
}
