// Package swipe implements the interaction logic of a swipeable element: it follows a single pointer, moves
// the element within the configured directions, resists travel past a threshold and decides on release
// whether the gesture was a swipe.
//
// The package never touches a rendering system. Hosts feed it pointer events and a Geometry and apply the
// returned offsets to whatever they render.
package swipe

import (
	"errors"
	"log"
	"math"

	"honnef.co/go/swipeview/container"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

type session struct {
	pid pointer.ID
	// pointer is the pointer position at the press.
	pointer f32.Point
	// element is the element's (left, top) at the press.
	element f32.Point
}

// Tracker turns the pointer events of one gesture at a time into element offsets and swipe notifications.
// A Tracker isn't safe for concurrent use; events must be delivered in the order they occurred.
type Tracker struct {
	Geometry Geometry
	// Mapper overrides the mapper selected by the configuration's policy.
	Mapper Mapper
	// OnSwiped, if set, is called once for each gesture that commits a swipe.
	OnSwiped func(Direction)
	// Log receives warnings, and debug messages if Debug is set. A nil Log discards them.
	Log   *log.Logger
	Debug bool

	cfg  Config
	next container.Option[Config]
	sess container.Option[session]
	// pending holds the result of a release while OnSwiped runs.
	pending container.Option[ReleaseResult]
}

// NewTracker returns a tracker for the element described by geom.
func NewTracker(cfg Config, geom Geometry) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		Geometry: geom,
		cfg:      cfg.clone(),
	}, nil
}

// Config returns a copy of the configuration in effect.
func (t *Tracker) Config() Config {
	return t.cfg.clone()
}

// SetConfig replaces the configuration. A gesture in progress keeps using the old configuration; the new one
// takes effect with the next press.
func (t *Tracker) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if t.sess.Set() {
		t.next = container.Some(cfg.clone())
	} else {
		t.cfg = cfg.clone()
	}
	return nil
}

// Dragging reports whether a gesture is in progress.
func (t *Tracker) Dragging() bool {
	return t.sess.Set()
}

func (t *Tracker) mapper() Mapper {
	if t.Mapper != nil {
		return t.Mapper
	}
	return t.cfg.Policy.Mapper()
}

// Press starts a gesture if p lies within the element's bounds. It reports whether a gesture was started.
// Presses while a gesture is in progress are ignored.
func (t *Tracker) Press(p f32.Point, pid pointer.ID) bool {
	if t.sess.Set() {
		t.debugf("ignoring press of pointer %d during gesture", pid)
		return false
	}
	if next, ok := t.next.Get(); ok {
		t.cfg = next
		t.next = container.None[Config]()
	}

	b := t.Geometry.Element()
	if !(p.X >= float32(b.Min.X) && p.X < float32(b.Max.X) && p.Y >= float32(b.Min.Y) && p.Y < float32(b.Max.Y)) {
		t.debugf("press at %v misses element %v", p, b)
		return false
	}
	t.sess = container.Some(session{
		pid:     pid,
		pointer: p,
		element: f32.Pt(float32(b.Min.X), float32(b.Min.Y)),
	})
	return true
}

// Move processes a pointer move. It returns false if no gesture is in progress.
func (t *Tracker) Move(p f32.Point) (MoveResult, bool) {
	s, ok := t.sess.Get()
	if !ok {
		return MoveResult{}, false
	}

	dir := Classify(s.pointer, p)
	b := t.Geometry.Element()
	m := Motion{
		Direction:     dir,
		OriginElement: s.element,
		OriginPointer: s.pointer,
		Pointer:       p,
		Element:       b,
		Container:     t.Geometry.Container(),
	}
	left, err := t.mapper().Left(t.cfg, m)
	if err != nil {
		if errors.Is(err, ErrUnsupportedDirection) {
			t.warnf("not moving element: %s", err)
		}
		return MoveResult{Direction: dir, Err: err}, true
	}
	if !inRange(left) {
		t.warnf("not moving element to x=%v: %s", left, ErrOutOfRange)
		return MoveResult{Direction: dir, Err: ErrOutOfRange}, true
	}
	return MoveResult{
		Direction: dir,
		Left:      left,
		Offset:    Offset{DX: int(math.Floor(float64(left))) - b.Min.X},
	}, true
}

// Release ends the gesture. The swipe is committed based on how far the pointer travelled, not on how far the
// element moved. The returned reset offset moves the element back to where it was when the gesture started;
// acting on a committed swipe is up to the host. Release without a gesture in progress returns the zero
// result.
func (t *Tracker) Release(p f32.Point) ReleaseResult {
	s, ok := t.sess.Get()
	if !ok {
		return ReleaseResult{}
	}
	t.sess = container.None[session]()

	res := ReleaseResult{
		Reset:  t.reset(s),
		Swiped: ShouldCommit(p.X-s.pointer.X, t.cfg.Threshold),
	}
	if dir, ok := res.Swiped.Get(); ok {
		t.debugf("swiped %s", dir)
		if t.OnSwiped != nil {
			t.pending = container.Some(res)
			t.OnSwiped(dir)
			t.pending = container.None[ReleaseResult]()
		}
	}
	return res
}

// Cancel ends the gesture without committing a swipe. It is a no-op without a gesture in progress.
func (t *Tracker) Cancel() ReleaseResult {
	s, ok := t.sess.Get()
	if !ok {
		return ReleaseResult{}
	}
	t.sess = container.None[session]()
	return ReleaseResult{Reset: t.reset(s)}
}

func (t *Tracker) reset(s session) Offset {
	b := t.Geometry.Element()
	return Offset{
		DX: int(s.element.X) - b.Min.X,
		DY: int(s.element.Y) - b.Min.Y,
	}
}

// Handle dispatches a host event and reports whether the event belonged to a gesture. Events of pointers other
// than the one that started the gesture are ignored.
//
// Events with a NaN or infinite position are logged and consumed without effect.
//
// A panic in the host's geometry or in a custom mapper ends the gesture without a reset offset. A panic in
// OnSwiped still returns the reset offset of the release. The panic is logged and the event is reported as
// handled, so that hosts don't deliver it elsewhere.
func (t *Tracker) Handle(ev Event) (res Result, handled bool) {
	t.pending = container.None[ReleaseResult]()
	defer func() {
		if r := recover(); r != nil {
			t.sess = container.None[session]()
			t.warnf("dropping gesture after failing to process %s: %v", ev, r)
			res = Result{}
			if p, ok := t.pending.Get(); ok {
				res = Result{Offset: p.Reset, Swiped: p.Swiped}
				t.pending = container.None[ReleaseResult]()
			}
			handled = true
		}
	}()

	if ev.Type != TypePress {
		if s, ok := t.sess.Get(); ok && s.pid != ev.PointerID {
			return Result{}, false
		}
	}
	if ev.Type != TypeCancel && !(finite(ev.Position.X) && finite(ev.Position.Y)) {
		t.warnf("ignoring %s with invalid position", ev)
		return Result{}, true
	}

	switch ev.Type {
	case TypePress:
		return Result{}, t.Press(ev.Position, ev.PointerID)
	case TypeMove:
		mres, ok := t.Move(ev.Position)
		if !ok {
			return Result{}, false
		}
		return Result{Offset: mres.Offset, Direction: container.Some(mres.Direction)}, true
	case TypeRelease, TypeCancel:
		if !t.sess.Set() {
			return Result{}, false
		}
		var rres ReleaseResult
		if ev.Type == TypeRelease {
			rres = t.Release(ev.Position)
		} else {
			rres = t.Cancel()
		}
		return Result{Offset: rres.Reset, Swiped: rres.Swiped}, true
	default:
		t.warnf("ignoring event of unknown type %s", ev.Type)
		return Result{}, true
	}
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// inRange reports whether left can be converted to an int coordinate.
func inRange(left float32) bool {
	return finite(left) && float64(left) >= math.MinInt32 && float64(left) <= math.MaxInt32
}

func (t *Tracker) warnf(format string, args ...any) {
	if t.Log != nil {
		t.Log.Printf("warning: "+format, args...)
	}
}

func (t *Tracker) debugf(format string, args ...any) {
	if t.Log != nil && t.Debug {
		t.Log.Printf("debug: "+format, args...)
	}
}
