// Command swipedemo shows a card that can be swiped left and right.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"honnef.co/go/swipeview/config"
	"honnef.co/go/swipeview/container"
	"honnef.co/go/swipeview/layout"
	"honnef.co/go/swipeview/swipe"
	"honnef.co/go/swipeview/widget"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

const (
	colorBackground = 0xffffeaFF
	colorCard       = 0x4BACB8FF
	colorDragging   = 0x448844FF
	colorLeft       = 0xbb5d5dFF
	colorRight      = 0x6F9E4BFF
	colorOther      = 0x888888FF
)

var (
	fl    config.Flags
	debug bool
)

func main() {
	fl.Register(flag.CommandLine)
	flag.BoolVar(&debug, "debug", false, "log debug messages")
	flag.Parse()

	// Catch configuration errors before opening a window.
	if _, err := fl.File(); err != nil {
		log.Fatal(err)
	}

	go func() {
		w := app.NewWindow(app.Title("swipeview"))
		err := run(w)
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func load(m unit.Metric) (swipe.Config, error) {
	f, err := fl.File()
	if err != nil {
		return swipe.Config{}, err
	}
	return f.Config(m)
}

func run(w *app.Window) error {
	var (
		ops     op.Ops
		sw      *widget.Swipeable
		last    container.Option[swipe.Direction]
		watcher *config.Watcher
		changes <-chan struct{}
		errs    <-chan error
	)

	// The configuration depends on the window's metric, which is only known once the first frame arrives.
	setup := func(m unit.Metric) error {
		cfg, err := load(m)
		if err != nil {
			return err
		}
		sw, err = widget.NewSwipeable(cfg)
		if err != nil {
			return err
		}
		sw.Tracker.Log = log.Default()
		sw.Tracker.Debug = debug
		sw.Tracker.OnSwiped = func(dir swipe.Direction) {
			log.Printf("swiped %s", dir)
		}

		if fl.Path == "" {
			return nil
		}
		watcher, err = config.Watch(fl.Path, func() (swipe.Config, error) { return load(m) })
		if err != nil {
			return err
		}
		go watcher.Run()
		changes = watcher.Changes()
		errs = watcher.Errors()
		return nil
	}

	card := func(gtx layout.Context) layout.Dimensions {
		size := image.Pt(gtx.Dp(240), gtx.Dp(140))
		c := uint32(colorCard)
		if sw.Dragging() {
			c = colorDragging
		} else if dir, ok := last.Get(); ok {
			switch dir {
			case swipe.Left:
				c = colorLeft
			case swipe.Right:
				c = colorRight
			default:
				c = colorOther
			}
		}
		paint.FillShape(gtx.Ops, rgba(c), clip.UniformRRect(image.Rectangle{Max: size}, gtx.Dp(12)).Op(gtx.Ops))
		return layout.Dimensions{Size: size}
	}

	for {
		select {
		case e := <-w.Events():
			switch ev := e.(type) {
			case system.DestroyEvent:
				return ev.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, ev)
				if sw == nil {
					if err := setup(gtx.Metric); err != nil {
						return err
					}
				}

				paint.Fill(gtx.Ops, rgba(colorBackground))
				for _, dir := range sw.Update(gtx) {
					last = container.Some(dir)
				}
				sw.Layout(gtx, card)

				ev.Frame(&ops)
			}
		case <-changes:
			cfg := watcher.Current()
			if err := sw.Tracker.SetConfig(cfg); err != nil {
				log.Printf("couldn't apply configuration: %s", err)
				continue
			}
			log.Printf("reloaded configuration: directions %s, threshold %gpx, policy %s", cfg.Directions, cfg.Threshold, cfg.Policy)
		case err := <-errs:
			log.Printf("couldn't reload configuration: %s", err)
		}
	}
}

func rgba(c uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(c & 0xFF),
		B: uint8(c >> 8 & 0xFF),
		G: uint8(c >> 16 & 0xFF),
		R: uint8(c >> 24 & 0xFF),
	}
}
