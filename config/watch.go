package config

import (
	"path/filepath"

	"honnef.co/go/swipeview/mysync"
	"honnef.co/go/swipeview/swipe"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a configuration whenever its file changes.
type Watcher struct {
	path    string
	load    func() (swipe.Config, error)
	w       *fsnotify.Watcher
	cur     *mysync.Mutex[swipe.Config]
	changes chan struct{}
	errors  chan error
}

// Watch watches the file at path and calls load to produce a new configuration after every change. The
// initial configuration is loaded before Watch returns. Call Run to start processing changes.
func Watch(path string, load func() (swipe.Config, error)) (*Watcher, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	// Watch the directory, as editors tend to replace files instead of writing to them.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{
		path:    path,
		load:    load,
		w:       w,
		cur:     mysync.NewMutex(cfg),
		changes: make(chan struct{}, 1),
		errors:  make(chan error, 1),
	}, nil
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() swipe.Config {
	return w.cur.Load()
}

// Changes receives a value after the configuration has changed. Changes that happen before the previous one
// has been received are coalesced.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors receives errors from watching and loading the file. Errors that can't be delivered immediately are
// dropped.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Run processes file system events until the watcher is closed.
func (w *Watcher) Run() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.load()
	if err != nil {
		w.report(err)
		return
	}
	w.cur.Store(cfg)
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Close stops watching. Run returns once the watcher is closed.
func (w *Watcher) Close() error {
	return w.w.Close()
}
