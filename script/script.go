// Package script runs Lua scripts that drive a swipe tracker against a simulated element.
//
// Scripts have access to the following functions, in addition to Lua's standard library:
//
//	press(x, y [, pointer])   -> handled
//	move(x, y [, pointer])    -> dx, dy, direction or nil
//	release(x, y [, pointer]) -> committed direction or nil
//	cancel([pointer])         -> handled
//	element()                 -> left, top, right, bottom
//	configure{directions = {"left", "right"}, threshold = 50, policy = "resistance"}
//
// Directions may also be given as a bitmask. Fields missing from configure's table keep their current values.
package script

import (
	"context"
	"fmt"

	"honnef.co/go/swipeview/container"
	"honnef.co/go/swipeview/geom"
	"honnef.co/go/swipeview/recording"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	lua "github.com/yuin/gopher-lua"
)

// Runner executes scripts. It isn't safe for concurrent use.
type Runner struct {
	Tracker *swipe.Tracker
	Box     *geom.Box
	// Trace, if set, is called after every event a script generates.
	Trace func(recording.Step)

	events []swipe.Event
	state  *lua.LState
}

// NewRunner returns a runner whose scripts drive tr. The tracker's geometry should be box.
func NewRunner(tr *swipe.Tracker, box *geom.Box) *Runner {
	r := &Runner{
		Tracker: tr,
		Box:     box,
		state:   lua.NewState(),
	}
	fns := map[string]lua.LGFunction{
		"press":     r.press,
		"move":      r.move,
		"release":   r.release,
		"cancel":    r.cancel,
		"element":   r.element,
		"configure": r.configure,
	}
	for name, fn := range fns {
		r.state.SetGlobal(name, r.state.NewFunction(fn))
	}
	return r
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.state.Close()
}

// Events returns all events generated so far, in order.
func (r *Runner) Events() []swipe.Event {
	return r.events
}

// DoString runs the script src. Cancelling ctx aborts the script.
func (r *Runner) DoString(ctx context.Context, src string) error {
	r.state.SetContext(ctx)
	defer r.state.RemoveContext()
	return r.state.DoString(src)
}

// DoFile runs the script in the file at path. Cancelling ctx aborts the script.
func (r *Runner) DoFile(ctx context.Context, path string) error {
	r.state.SetContext(ctx)
	defer r.state.RemoveContext()
	return r.state.DoFile(path)
}

func (r *Runner) handle(ev swipe.Event) (swipe.Result, bool) {
	r.events = append(r.events, ev)
	res, ok := r.Box.Handle(r.Tracker, ev)
	if r.Trace != nil {
		r.Trace(recording.Step{Event: ev, Result: res, Handled: ok, Box: *r.Box})
	}
	return res, ok
}

// pointerEvent builds an event from the arguments x, y and an optional pointer ID.
func pointerEvent(L *lua.LState, typ swipe.EventType) swipe.Event {
	x := L.CheckNumber(1)
	y := L.CheckNumber(2)
	pid := L.OptInt(3, 0)
	return swipe.Event{
		Type:      typ,
		PointerID: pointer.ID(pid),
		Position:  f32.Pt(float32(x), float32(y)),
	}
}

func pushDirection(L *lua.LState, opt container.Option[swipe.Direction]) {
	if dir, ok := opt.Get(); ok {
		L.Push(lua.LString(dir.String()))
	} else {
		L.Push(lua.LNil)
	}
}

func (r *Runner) press(L *lua.LState) int {
	_, ok := r.handle(pointerEvent(L, swipe.TypePress))
	L.Push(lua.LBool(ok))
	return 1
}

func (r *Runner) move(L *lua.LState) int {
	res, _ := r.handle(pointerEvent(L, swipe.TypeMove))
	L.Push(lua.LNumber(res.Offset.DX))
	L.Push(lua.LNumber(res.Offset.DY))
	pushDirection(L, res.Direction)
	return 3
}

func (r *Runner) release(L *lua.LState) int {
	res, _ := r.handle(pointerEvent(L, swipe.TypeRelease))
	pushDirection(L, res.Swiped)
	return 1
}

func (r *Runner) cancel(L *lua.LState) int {
	_, ok := r.handle(swipe.Event{
		Type:      swipe.TypeCancel,
		PointerID: pointer.ID(L.OptInt(1, 0)),
	})
	L.Push(lua.LBool(ok))
	return 1
}

func (r *Runner) element(L *lua.LState) int {
	b := r.Box.Bounds
	L.Push(lua.LNumber(b.Min.X))
	L.Push(lua.LNumber(b.Min.Y))
	L.Push(lua.LNumber(b.Max.X))
	L.Push(lua.LNumber(b.Max.Y))
	return 4
}

func (r *Runner) configure(L *lua.LState) int {
	tbl := L.CheckTable(1)
	cfg := r.Tracker.Config()

	switch v := tbl.RawGetString("directions").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		cfg.Directions = swipe.DirectionsFromFlags(int(v))
	case *lua.LTable:
		ds := swipe.NewDirections()
		var err error
		v.ForEach(func(_, name lua.LValue) {
			if err != nil {
				return
			}
			d, perr := swipe.ParseDirection(name.String())
			if perr != nil {
				err = perr
				return
			}
			ds.Add(d)
		})
		if err != nil {
			L.RaiseError("%s", err)
		}
		cfg.Directions = ds
	default:
		L.ArgError(1, fmt.Sprintf("directions must be a number or a list, got %s", v.Type()))
	}

	switch v := tbl.RawGetString("threshold").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		cfg.Threshold = float32(v)
	default:
		L.ArgError(1, fmt.Sprintf("threshold must be a number, got %s", v.Type()))
	}

	switch v := tbl.RawGetString("policy").(type) {
	case *lua.LNilType:
	case lua.LString:
		p, err := swipe.ParsePolicy(string(v))
		if err != nil {
			L.RaiseError("%s", err)
		}
		cfg.Policy = p
	default:
		L.ArgError(1, fmt.Sprintf("policy must be a string, got %s", v.Type()))
	}

	if err := r.Tracker.SetConfig(cfg); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}
