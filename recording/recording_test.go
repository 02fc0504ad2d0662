package recording

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"honnef.co/go/swipeview/geom"
	"honnef.co/go/swipeview/swipe"

	"gioui.org/f32"
)

var gesture = []swipe.Event{
	{Type: swipe.TypePress, PointerID: 0, Position: f32.Pt(150, 125)},
	{Type: swipe.TypeMove, PointerID: 0, Position: f32.Pt(200, 130)},
	{Type: swipe.TypeMove, PointerID: 0, Position: f32.Pt(250.5, 130.25)},
	{Type: swipe.TypeRelease, PointerID: 0, Position: f32.Pt(250.5, 130.25)},
	{Type: swipe.TypeCancel, PointerID: 3},
}

func equalEvents(a, b []swipe.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, ev := range gesture[:2] {
		if err := w.Write(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	want := "type,pointer,x,y\npress,0,150,125\nmove,0,200,130\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyRecording(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).Close(); err != nil {
		t.Fatal(err)
	}
	events, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want none", len(events))
	}
}

func TestRead(t *testing.T) {
	in := `type,pointer,x,y
# a gesture that doesn't move
press, 1, 10, 20
release,1,10,20.5
`
	events, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []swipe.Event{
		{Type: swipe.TypePress, PointerID: 1, Position: f32.Pt(10, 20)},
		{Type: swipe.TypeRelease, PointerID: 1, Position: f32.Pt(10, 20.5)},
	}
	if !equalEvents(events, want) {
		t.Errorf("got %v, want %v", events, want)
	}
}

func TestReadInvalid(t *testing.T) {
	inputs := []string{
		"",
		"press,0,1,2\n",
		"kind,pid,x,y\n",
		"type,pointer,x,y\npress,0,1\n",
		"type,pointer,x,y\ntap,0,1,2\n",
		"type,pointer,x,y\npress,-1,1,2\n",
		"type,pointer,x,y\npress,0,one,2\n",
		"type,pointer,x,y\npress,0,1,two\n",
	}
	for _, in := range inputs {
		if _, err := Read(strings.NewReader(in)); err == nil {
			t.Errorf("Read(%q) succeeded, want error", in)
		}
	}
	if _, err := Read(strings.NewReader("")); !errors.Is(err, ErrHeader) {
		t.Errorf("Read of empty input returned %v, want %v", err, ErrHeader)
	}
}

func TestCompressed(t *testing.T) {
	var buf bytes.Buffer
	w := NewCompressedWriter(&buf)
	for _, ev := range gesture {
		if err := w.Write(ev); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if bytes.HasPrefix(buf.Bytes(), []byte("type")) {
		t.Fatal("compressed recording is stored as plain text")
	}
	events, err := ReadCompressed(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !equalEvents(events, gesture) {
		t.Errorf("got %v, want %v", events, gesture)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gesture.csv", "gesture.csv.sz"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, gesture); err != nil {
			t.Fatal(err)
		}
		events, err := ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !equalEvents(events, gesture) {
			t.Errorf("%s: got %v, want %v", name, events, gesture)
		}
	}
}

func TestReplay(t *testing.T) {
	box := geom.NewBox(image.Pt(100, 100), image.Pt(100, 50), image.Rect(0, 0, 400, 300))
	tr, err := swipe.NewTracker(swipe.Config{
		Directions: swipe.NewDirections(swipe.Left, swipe.Right),
		Threshold:  50,
	}, box)
	if err != nil {
		t.Fatal(err)
	}

	var steps []Step
	Replay(tr, box, gesture, func(s Step) bool {
		steps = append(steps, s)
		return true
	})
	if len(steps) != len(gesture) {
		t.Fatalf("got %d steps, want %d", len(steps), len(gesture))
	}
	// The second move is past the threshold: 100 + 50.5^0.8 + 50.
	if got := steps[2].Box.Bounds.Min.X; got != 173 {
		t.Errorf("element at x=%d after move, want 173", got)
	}
	if dir, ok := steps[3].Result.Swiped.Get(); !ok || dir != swipe.Right {
		t.Errorf("release committed %v, want right", steps[3].Result.Swiped)
	}
	if got := steps[3].Box.Bounds.Min; got != image.Pt(100, 100) {
		t.Errorf("element at %v after release, want (100,100)", got)
	}
	if steps[4].Handled {
		t.Error("cancel without gesture was handled")
	}

	n := 0
	box = geom.NewBox(image.Pt(100, 100), image.Pt(100, 50), image.Rect(0, 0, 400, 300))
	tr.Geometry = box
	Replay(tr, box, gesture, func(Step) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("Replay continued after callback returned false, %d calls", n)
	}
}
