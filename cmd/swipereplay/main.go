// Command swipereplay feeds a recorded or scripted gesture to a swipe tracker and prints what happens.
//
// Usage:
//
//	swipereplay [flags] recording.csv[.sz]
//	swipereplay [flags] -script gesture.lua
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"

	"honnef.co/go/swipeview/config"
	"honnef.co/go/swipeview/geom"
	"honnef.co/go/swipeview/recording"
	"honnef.co/go/swipeview/script"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/unit"
	"github.com/davecgh/go-spew/spew"
)

var (
	fl       config.Flags
	pxPerDp  float64
	area     string
	element  string
	luaPath  string
	dump     bool
	record   string
	debug    bool
	swipes   int
	failures int
)

func main() {
	fl.Register(flag.CommandLine)
	flag.Float64Var(&pxPerDp, "px-per-dp", 1, "number of pixels per dp")
	flag.StringVar(&area, "area", "400x300", "size of the container")
	flag.StringVar(&element, "element", "100x50", "size of the element, which starts out centered in the container")
	flag.StringVar(&luaPath, "script", "", "run this Lua script instead of replaying a recording")
	flag.BoolVar(&dump, "dump", false, "dump the events after reading or running them")
	flag.StringVar(&record, "record", "", "write the events to this recording")
	flag.BoolVar(&debug, "debug", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <recording> | -script <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if (luaPath == "") == (flag.NArg() != 1) {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		log.Fatal(err)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func parseSize(s string) (image.Point, error) {
	var p image.Point
	if _, err := fmt.Sscanf(s, "%dx%d", &p.X, &p.Y); err != nil || p.X <= 0 || p.Y <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	return p, nil
}

func newBox() (*geom.Box, error) {
	a, err := parseSize(area)
	if err != nil {
		return nil, err
	}
	e, err := parseSize(element)
	if err != nil {
		return nil, err
	}
	pos := a.Sub(e).Div(2)
	return geom.NewBox(pos, e, image.Rectangle{Max: a}), nil
}

func run() error {
	f, err := fl.File()
	if err != nil {
		return err
	}
	cfg, err := f.Config(unit.Metric{PxPerDp: float32(pxPerDp)})
	if err != nil {
		return err
	}
	box, err := newBox()
	if err != nil {
		return err
	}
	tr, err := swipe.NewTracker(cfg, box)
	if err != nil {
		return err
	}
	tr.Log = log.New(os.Stderr, "", 0)
	tr.Debug = debug
	tr.OnSwiped = func(swipe.Direction) { swipes++ }

	fmt.Printf("config: directions %s, threshold %gpx, policy %s\n", cfg.Directions, cfg.Threshold, cfg.Policy)
	fmt.Printf("element: %v in %v\n", box.Bounds, box.Area)

	var events []swipe.Event
	if luaPath != "" {
		events, err = runScript(tr, box)
	} else {
		events, err = recording.ReadFile(flag.Arg(0))
		if err == nil {
			recording.Replay(tr, box, events, func(s recording.Step) bool {
				printStep(s)
				return true
			})
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d events, %d swipes\n", len(events), swipes)
	if dump {
		spew.Dump(events)
	}
	if record != "" {
		if err := recording.WriteFile(record, events); err != nil {
			return err
		}
	}
	return nil
}

func runScript(tr *swipe.Tracker, box *geom.Box) ([]swipe.Event, error) {
	r := script.NewRunner(tr, box)
	defer r.Close()
	r.Trace = printStep

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := r.DoFile(ctx, luaPath); err != nil {
		// Report the script's failure but keep the events it generated so far.
		log.Printf("script failed: %s", err)
		failures++
	}
	return r.Events(), nil
}

func printStep(s recording.Step) {
	var notes []string
	if !s.Handled {
		notes = append(notes, "ignored")
	}
	if dir, ok := s.Result.Direction.Get(); ok {
		notes = append(notes, "bearing "+dir.String())
	}
	if dir, ok := s.Result.Swiped.Get(); ok {
		notes = append(notes, "swiped "+dir.String())
	}
	fmt.Printf("%-32s offset (%d, %d)  element %v  %s\n",
		s.Event, s.Result.Offset.DX, s.Result.Offset.DY, s.Box.Bounds, strings.Join(notes, ", "))
}
