package swipe

import (
	"math"
	"testing"

	"gioui.org/f32"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		from, to f32.Point
		want     Direction
	}{
		{f32.Pt(0, 0), f32.Pt(10, 0), Right},
		{f32.Pt(0, 0), f32.Pt(0, -10), Up},
		{f32.Pt(0, 0), f32.Pt(-10, 0), Left},
		{f32.Pt(0, 0), f32.Pt(0, 10), Down},
		{f32.Pt(100, 100), f32.Pt(200, 100), Right},
		{f32.Pt(100, 100), f32.Pt(200, 150), Right},
		{f32.Pt(100, 100), f32.Pt(200, 50), Right},
		{f32.Pt(100, 100), f32.Pt(110, 20), Up},
		{f32.Pt(100, 100), f32.Pt(40, 110), Left},
		{f32.Pt(100, 100), f32.Pt(90, 300), Down},
	}
	for _, tt := range tests {
		if got := Classify(tt.from, tt.to); got != tt.want {
			t.Errorf("Classify(%v, %v)=%s, want %s (bearing %f)", tt.from, tt.to, got, tt.want, Bearing(tt.from, tt.to))
		}
	}
}

func TestClassifyIdenticalPoints(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	points := []f32.Point{
		f32.Pt(0, 0),
		f32.Pt(negZero, negZero),
		f32.Pt(100, 100),
		f32.Pt(-3.5, 7.25),
		f32.Pt(1e6, -1e6),
	}
	for _, p := range points {
		for i := 0; i < 3; i++ {
			if got := Classify(p, p); got != Right {
				t.Errorf("Classify(%v, %v)=%s, want %s", p, p, got, Right)
			}
		}
	}
}

func TestClassifyBearingBoundaries(t *testing.T) {
	tests := []struct {
		deg  float64
		want Direction
	}{
		{0, Right},
		{44.999, Right},
		{45, Up},
		{134.999, Up},
		{135, Left},
		{224.999, Left},
		{225, Down},
		{314.999, Down},
		{315, Right},
		{359.999, Right},
	}
	for _, tt := range tests {
		if got := classifyBearing(tt.deg); got != tt.want {
			t.Errorf("classifyBearing(%v)=%s, want %s", tt.deg, got, tt.want)
		}
	}
}

func TestClassifySectorsPartition(t *testing.T) {
	counts := map[Direction]int{}
	for i := 0; i < 360*8; i++ {
		deg := float64(i) / 8
		var want Direction
		switch {
		case deg < 45:
			want = Right
		case deg < 135:
			want = Up
		case deg < 225:
			want = Left
		case deg < 315:
			want = Down
		default:
			want = Right
		}
		got := classifyBearing(deg)
		if got != want {
			t.Fatalf("classifyBearing(%v)=%s, want %s", deg, got, want)
		}
		counts[got]++
	}
	// Each sector spans exactly 90°.
	for _, d := range []Direction{Left, Up, Right, Down} {
		if counts[d] != 90*8 {
			t.Errorf("sector %s has %d samples, want %d", d, counts[d], 90*8)
		}
	}
}

func FuzzClassify(f *testing.F) {
	f.Add(float32(0), float32(0), float32(0), float32(0))
	f.Add(float32(100), float32(100), float32(200), float32(100))
	f.Add(float32(-1), float32(5), float32(3), float32(-7))
	f.Fuzz(func(t *testing.T, x1, y1, x2, y2 float32) {
		for _, v := range []float32{x1, y1, x2, y2} {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Skip()
			}
		}
		from, to := f32.Pt(x1, y1), f32.Pt(x2, y2)
		deg := Bearing(from, to)
		if !(deg >= 0 && deg < 360) {
			t.Fatalf("Bearing(%v, %v)=%v, want value in [0, 360)", from, to, deg)
		}
		d1, d2 := Classify(from, to), Classify(from, to)
		if d1 != d2 {
			t.Fatalf("Classify(%v, %v) isn't deterministic: %s != %s", from, to, d1, d2)
		}
		switch d1 {
		case Left, Up, Right, Down:
		default:
			t.Fatalf("Classify(%v, %v)=%s, want a cardinal direction", from, to, d1)
		}
	})
}

func TestDirectionsFlags(t *testing.T) {
	for flags := 0; flags <= allFlags; flags++ {
		ds := DirectionsFromFlags(flags)
		if got := ds.Flags(); got != flags {
			t.Errorf("DirectionsFromFlags(%d).Flags()=%d", flags, got)
		}
	}

	ds := DirectionsFromFlags(1 | 4 | 16)
	if !ds.Has(Left) || !ds.Has(Right) || ds.Has(Up) || ds.Has(Down) {
		t.Errorf("DirectionsFromFlags(21)=%s, want {left, right}", ds)
	}
	if got := ds.Flags(); got != 5 {
		t.Errorf("Flags()=%d, want 5", got)
	}
	if got, want := ds.String(), "{left, right}"; got != want {
		t.Errorf("String()=%q, want %q", got, want)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{Left, Up, Right, Down} {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %s", d, err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q)=%s, want %s", d, got, d)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) succeeded, want error")
	}
}
