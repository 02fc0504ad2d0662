// Package recording stores sequences of swipe events as CSV, optionally compressed with snappy.
//
// A recording starts with the header "type,pointer,x,y", followed by one event per line:
//
//	type,pointer,x,y
//	press,0,150,125
//	move,0,200,130
//	release,0,250,130
//
// Lines starting with '#' are comments. Files whose names end in ".sz" use the snappy framing format.
package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"honnef.co/go/swipeview/geom"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/golang/snappy"
)

// CompressedExt is the file extension of snappy-compressed recordings.
const CompressedExt = ".sz"

var header = []string{"type", "pointer", "x", "y"}

var ErrHeader = errors.New("recording doesn't start with a type,pointer,x,y header")

// Writer writes events to a recording.
type Writer struct {
	csv *csv.Writer
	// sz is nil for uncompressed recordings.
	sz          *snappy.Writer
	wroteHeader bool
}

// NewWriter returns a writer of uncompressed recordings.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// NewCompressedWriter returns a writer that compresses the recording with snappy.
func NewCompressedWriter(w io.Writer) *Writer {
	sz := snappy.NewBufferedWriter(w)
	return &Writer{csv: csv.NewWriter(sz), sz: sz}
}

// Write appends ev to the recording.
func (w *Writer) Write(ev swipe.Event) error {
	if !w.wroteHeader {
		w.wroteHeader = true
		if err := w.csv.Write(header); err != nil {
			return err
		}
	}
	return w.csv.Write([]string{
		ev.Type.String(),
		strconv.FormatUint(uint64(ev.PointerID), 10),
		formatFloat(ev.Position.X),
		formatFloat(ev.Position.Y),
	})
}

// Close flushes buffered data. It doesn't close the underlying writer. An empty recording still gets a header.
func (w *Writer) Close() error {
	if !w.wroteHeader {
		w.wroteHeader = true
		if err := w.csv.Write(header); err != nil {
			return err
		}
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	if w.sz != nil {
		return w.sz.Close()
	}
	return nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// Read reads an uncompressed recording.
func Read(r io.Reader) ([]swipe.Event, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = len(header)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	rec, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrHeader
		}
		return nil, err
	}
	for i, name := range header {
		if rec[i] != name {
			return nil, ErrHeader
		}
	}

	var events []swipe.Event
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		ev, err := parseEvent(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
}

// ReadCompressed reads a snappy-compressed recording.
func ReadCompressed(r io.Reader) ([]swipe.Event, error) {
	return Read(snappy.NewReader(r))
}

func parseEvent(rec []string) (swipe.Event, error) {
	typ, err := swipe.ParseEventType(rec[0])
	if err != nil {
		return swipe.Event{}, err
	}
	pid, err := strconv.ParseUint(rec[1], 10, 16)
	if err != nil {
		return swipe.Event{}, fmt.Errorf("invalid pointer ID: %w", err)
	}
	x, err := strconv.ParseFloat(rec[2], 32)
	if err != nil {
		return swipe.Event{}, fmt.Errorf("invalid x coordinate: %w", err)
	}
	y, err := strconv.ParseFloat(rec[3], 32)
	if err != nil {
		return swipe.Event{}, fmt.Errorf("invalid y coordinate: %w", err)
	}
	return swipe.Event{
		Type:      typ,
		PointerID: pointer.ID(pid),
		Position:  f32.Pt(float32(x), float32(y)),
	}, nil
}

// Compressed reports whether path names a compressed recording.
func Compressed(path string) bool {
	return filepath.Ext(path) == CompressedExt
}

// ReadFile reads the recording at path, decompressing it if its name ends in CompressedExt.
func ReadFile(path string) ([]swipe.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var events []swipe.Event
	if Compressed(path) {
		events, err = ReadCompressed(f)
	} else {
		events, err = Read(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// WriteFile writes events to path, compressing them if its name ends in CompressedExt.
func WriteFile(path string, events []swipe.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	var w *Writer
	if Compressed(path) {
		w = NewCompressedWriter(f)
	} else {
		w = NewWriter(f)
	}
	for _, ev := range events {
		if err := w.Write(ev); err != nil {
			return err
		}
	}
	return w.Close()
}

// Step is an event as processed during a replay.
type Step struct {
	Event   swipe.Event
	Result  swipe.Result
	Handled bool
	// Box is the state of the box after the result has been applied.
	Box geom.Box
}

// Replay feeds events to t, applying the results to box, and calls fn after each event. Replay stops early if fn
// returns false.
func Replay(t *swipe.Tracker, box *geom.Box, events []swipe.Event, fn func(Step) bool) {
	for _, ev := range events {
		res, ok := box.Handle(t, ev)
		if fn != nil && !fn(Step{Event: ev, Result: res, Handled: ok, Box: *box}) {
			return
		}
	}
}
