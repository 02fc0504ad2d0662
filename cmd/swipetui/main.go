// Command swipetui shows a box in the terminal that can be swiped with the mouse.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"time"

	"honnef.co/go/swipeview/config"
	"honnef.co/go/swipeview/container"
	"honnef.co/go/swipeview/geom"
	"honnef.co/go/swipeview/recording"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/f32"
	"gioui.org/unit"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	boxWidth  = 24
	boxHeight = 7
)

var (
	fl         config.Flags
	cellsPerDp float64
	record     string
	logFile    string
	debug      bool
	mute       bool
)

type ui struct {
	screen  tcell.Screen
	tracker *swipe.Tracker
	box     *geom.Box
	watcher *config.Watcher

	audio   bool
	buttons tcell.ButtonMask
	last    container.Option[swipe.Direction]
	status  string
	events  []swipe.Event
}

func main() {
	fl.Register(flag.CommandLine)
	flag.Float64Var(&cellsPerDp, "cells-per-dp", 0.2, "number of terminal cells per dp")
	flag.StringVar(&record, "record", "", "write the processed events to this recording on exit")
	flag.StringVar(&logFile, "log", "", "write log messages to this file")
	flag.BoolVar(&debug, "debug", false, "log debug messages")
	flag.BoolVar(&mute, "mute", false, "don't play a tone on swipes")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logOut = f
	}

	// The terminal belongs to the UI until cleanup, so log messages can't go to stderr.
	log.SetOutput(logOut)
	u, err := newUI()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	u.run()
	u.cleanup()
	log.SetOutput(os.Stderr)

	if record != "" {
		if err := recording.WriteFile(record, u.events); err != nil {
			log.Fatal(err)
		}
	}
}

func load() (swipe.Config, error) {
	f, err := fl.File()
	if err != nil {
		return swipe.Config{}, err
	}
	return f.Config(unit.Metric{PxPerDp: float32(cellsPerDp)})
}

func newUI() (*ui, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseDragEvents)

	u := &ui{
		screen: screen,
		box:    &geom.Box{},
	}
	u.layout()
	u.tracker, err = swipe.NewTracker(cfg, u.box)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	u.tracker.Log = log.Default()
	u.tracker.Debug = debug
	u.tracker.OnSwiped = u.swiped

	if fl.Path != "" {
		u.watcher, err = config.Watch(fl.Path, load)
		if err != nil {
			screen.Fini()
			return nil, err
		}
		go u.watcher.Run()
	}

	if !mute {
		if err := u.initAudio(); err != nil {
			// Non-fatal, swiping works without sound
			log.Printf("audio initialization failed: %v", err)
		}
	}
	return u, nil
}

// layout centers the box on the screen.
func (u *ui) layout() {
	w, h := u.screen.Size()
	area := image.Rect(0, 0, w, h-1)
	pos := image.Pt((w-boxWidth)/2, (h-1-boxHeight)/2)
	*u.box = *geom.NewBox(pos, image.Pt(boxWidth, boxHeight), area)
}

func (u *ui) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		u.audio = true
	}
	return err
}

func (u *ui) playTone(freq float64) {
	if !u.audio {
		return
	}
	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(80*time.Millisecond), sine))
}

func (u *ui) swiped(dir swipe.Direction) {
	u.last = container.Some(dir)
	log.Printf("swiped %s", dir)
	switch dir {
	case swipe.Left:
		u.playTone(440)
	case swipe.Right:
		u.playTone(660)
	default:
		u.playTone(550)
	}
}

func (u *ui) handle(ev swipe.Event) {
	u.events = append(u.events, ev)
	u.box.Handle(u.tracker, ev)
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := f32.Pt(float32(x), float32(y))
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasPressed := u.buttons&tcell.Button1 != 0
	u.buttons = ev.Buttons()

	switch {
	case pressed && !wasPressed:
		u.handle(swipe.Event{Type: swipe.TypePress, Position: p})
	case pressed && wasPressed:
		u.handle(swipe.Event{Type: swipe.TypeMove, Position: p})
	case !pressed && wasPressed:
		u.handle(swipe.Event{Type: swipe.TypeRelease, Position: p})
	}
}

func (u *ui) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		if u.tracker.Dragging() {
			u.handle(swipe.Event{Type: swipe.TypeCancel})
		}
		u.layout()
		u.screen.Sync()
	}
	return true
}

func (u *ui) draw() {
	u.screen.Clear()

	style := tcell.StyleDefault.Background(tcell.ColorTeal)
	if u.tracker.Dragging() {
		style = tcell.StyleDefault.Background(tcell.ColorGreen)
	} else if dir, ok := u.last.Get(); ok {
		switch dir {
		case swipe.Left:
			style = tcell.StyleDefault.Background(tcell.ColorMaroon)
		case swipe.Right:
			style = tcell.StyleDefault.Background(tcell.ColorOlive)
		}
	}
	b := u.box.Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			u.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	cfg := u.tracker.Config()
	line := fmt.Sprintf("directions %s  threshold %g cells  policy %s  last swipe %s  %s",
		cfg.Directions, cfg.Threshold, cfg.Policy, u.last, u.status)
	_, h := u.screen.Size()
	for i, r := range []rune(line) {
		u.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}

	u.screen.Show()
}

func (u *ui) run() {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- u.screen.PollEvent()
		}
	}()

	var (
		changes <-chan struct{}
		errs    <-chan error
	)
	if u.watcher != nil {
		changes = u.watcher.Changes()
		errs = u.watcher.Errors()
	}

	u.draw()
	for {
		select {
		case ev := <-eventChan:
			if !u.handleInput(ev) {
				return
			}
		case <-changes:
			if err := u.tracker.SetConfig(u.watcher.Current()); err != nil {
				u.status = err.Error()
			} else {
				u.status = "configuration reloaded"
			}
		case err := <-errs:
			u.status = err.Error()
			log.Printf("couldn't reload configuration: %s", err)
		}
		u.draw()
	}
}

func (u *ui) cleanup() {
	if u.watcher != nil {
		u.watcher.Close()
	}
	if u.audio {
		speaker.Close()
	}
	u.screen.Fini()
}
