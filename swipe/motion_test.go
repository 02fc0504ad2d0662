package swipe

import (
	"errors"
	"image"
	"math"
	"testing"

	"gioui.org/f32"
)

func horizontal(dirs ...Direction) Config {
	return Config{Directions: NewDirections(dirs...), Threshold: 50}
}

func TestEaseLinearBelowThreshold(t *testing.T) {
	for _, moved := range []float32{0, 1, 20, -20, 49.5, -49.5} {
		if got := Ease(moved, 50); got != moved {
			t.Errorf("Ease(%v, 50)=%v, want %v", moved, got, moved)
		}
	}
}

func TestEaseContinuity(t *testing.T) {
	for _, threshold := range []float32{1, 8, 50, 123.5} {
		if got := Ease(threshold, threshold); got != threshold {
			t.Errorf("Ease(%v, %v)=%v, want %v", threshold, threshold, got, threshold)
		}
		if got := Ease(-threshold, threshold); got != -threshold {
			t.Errorf("Ease(%v, %v)=%v, want %v", -threshold, threshold, got, -threshold)
		}
	}
}

func TestEaseResistance(t *testing.T) {
	want := float32(math.Pow(50, 0.8) + 50)
	if got := Ease(100, 50); math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("Ease(100, 50)=%v, want %v", got, want)
	}
	if got := Ease(-100, 50); math.Abs(float64(got+want)) > 1e-4 {
		t.Errorf("Ease(-100, 50)=%v, want %v", got, -want)
	}
	// Beyond the threshold the element trails the pointer.
	for _, moved := range []float32{60, 100, 500} {
		if got := Ease(moved, 50); got >= moved {
			t.Errorf("Ease(%v, 50)=%v, want less than %v", moved, got, moved)
		}
	}
}

func TestEaseMonotonic(t *testing.T) {
	for _, threshold := range []float32{1, 50, 123.5} {
		prev := Ease(0, threshold)
		for i := 1; i <= 4000; i++ {
			moved := float32(i) / 4
			got := Ease(moved, threshold)
			if got < prev {
				t.Fatalf("Ease(%v, %v)=%v is less than Ease(%v, %v)=%v", moved, threshold, got, moved-0.25, threshold, prev)
			}
			prev = got
		}
	}
}

func FuzzEase(f *testing.F) {
	f.Add(float32(0), float32(1), float32(50))
	f.Add(float32(49.5), float32(50.5), float32(50))
	f.Add(float32(-300), float32(-20), float32(8))
	f.Fuzz(func(t *testing.T, a, b, threshold float32) {
		for _, v := range []float32{a, b, threshold} {
			if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 1e6 {
				t.Skip()
			}
		}
		if !(threshold > 0) {
			t.Skip()
		}
		if a > b {
			a, b = b, a
		}
		ea, eb := Ease(a, threshold), Ease(b, threshold)
		if ea > eb {
			t.Fatalf("Ease(%v, %v)=%v is greater than Ease(%v, %v)=%v", a, threshold, ea, b, threshold, eb)
		}
		if got := Ease(threshold, threshold); got != threshold {
			t.Fatalf("Ease(%v, %v)=%v, want %v", threshold, threshold, got, threshold)
		}
	})
}

func TestResistanceLeft(t *testing.T) {
	m := Motion{
		OriginElement: f32.Pt(50, 50),
		OriginPointer: f32.Pt(100, 100),
	}

	m.Direction, m.Pointer = Right, f32.Pt(120, 100)
	left, err := Resistance{}.Left(horizontal(Left, Right), m)
	if err != nil || left != 70 {
		t.Errorf("Left(Δx=20)=(%v, %v), want (70, nil)", left, err)
	}

	m.Direction, m.Pointer = Left, f32.Pt(40, 100)
	if _, err := (Resistance{}).Left(horizontal(Right), m); !errors.Is(err, ErrUnsupportedDirection) {
		t.Errorf("Left with unsupported direction returned error %v, want %v", err, ErrUnsupportedDirection)
	}

	m.Direction, m.Pointer = Up, f32.Pt(100, 20)
	if _, err := (Resistance{}).Left(horizontal(Left, Up, Right), m); !errors.Is(err, ErrVertical) {
		t.Errorf("Left with vertical direction returned error %v, want %v", err, ErrVertical)
	}
	if _, err := (Resistance{}).Left(horizontal(Left, Right), m); !errors.Is(err, ErrUnsupportedDirection) {
		t.Errorf("Left with unsupported vertical direction returned error %v, want %v", err, ErrUnsupportedDirection)
	}
}

func TestClampLeft(t *testing.T) {
	m := Motion{
		OriginElement: f32.Pt(20, 0),
		OriginPointer: f32.Pt(30, 10),
		Element:       image.Rect(20, 0, 70, 40),
		Container:     image.Rect(10, 0, 200, 100),
	}
	tests := []struct {
		x    float32
		want float32
	}{
		{30, 20},
		{60, 50},
		{-100, 10},
		{500, 150},
	}
	for _, tt := range tests {
		m.Pointer = f32.Pt(tt.x, 10)
		// Clamp doesn't care about directions.
		got, err := Clamp{}.Left(Config{Threshold: 50}, m)
		if err != nil || got != tt.want {
			t.Errorf("Clamp.Left(x=%v)=(%v, %v), want (%v, nil)", tt.x, got, err, tt.want)
		}
	}

	// An element wider than its container is pinned to the upper bound.
	m.Element = image.Rect(20, 0, 400, 40)
	m.Pointer = f32.Pt(30, 10)
	if got, _ := (Clamp{}).Left(Config{Threshold: 50}, m); got != -180 {
		t.Errorf("Clamp.Left with oversized element=%v, want -180", got)
	}
}

func TestDirectionalClampLeft(t *testing.T) {
	m := Motion{
		OriginElement: f32.Pt(50, 50),
		OriginPointer: f32.Pt(100, 100),
	}
	tests := []struct {
		dirs []Direction
		x    float32
		want float32
	}{
		{[]Direction{Left, Right}, 130, 80},
		{[]Direction{Left, Right}, 70, 20},
		{[]Direction{Right}, 130, 80},
		{[]Direction{Right}, 70, 50},
		{[]Direction{Left}, 130, 50},
		{[]Direction{Left}, 70, 20},
		{nil, 130, 50},
		{nil, 70, 50},
	}
	for _, tt := range tests {
		m.Pointer = f32.Pt(tt.x, 100)
		got, err := DirectionalClamp{}.Left(horizontal(tt.dirs...), m)
		if err != nil || got != tt.want {
			t.Errorf("DirectionalClamp.Left(%v, x=%v)=(%v, %v), want (%v, nil)", tt.dirs, tt.x, got, err, tt.want)
		}
	}
}

func TestShouldCommit(t *testing.T) {
	const threshold = 50
	tests := []struct {
		dx   float32
		want Direction
		ok   bool
	}{
		{threshold, Right, true},
		{threshold - 1, 0, false},
		{150, Right, true},
		{0, 0, false},
		{-threshold + 1, 0, false},
		{-threshold, Left, true},
		{-150, Left, true},
	}
	for _, tt := range tests {
		got, ok := ShouldCommit(tt.dx, threshold).Get()
		if ok != tt.ok || got != tt.want {
			t.Errorf("ShouldCommit(%v, %v)=(%s, %t), want (%s, %t)", tt.dx, threshold, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPolicy(t *testing.T) {
	for p := Policy(0); p < numPolicies; p++ {
		got, err := ParsePolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePolicy(%q)=(%s, %v), want (%s, nil)", p, got, err, p)
		}
		if p.Mapper() == nil {
			t.Errorf("%s.Mapper() is nil", p)
		}
	}
	if _, err := ParsePolicy("bouncy"); err == nil {
		t.Error("ParsePolicy(bouncy) succeeded, want error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		cfg Config
		ok  bool
	}{
		{Config{Threshold: 50}, true},
		{Config{Threshold: 0}, false},
		{Config{Threshold: -1}, false},
		{Config{Threshold: float32(math.NaN())}, false},
		{Config{Threshold: float32(math.Inf(1))}, false},
		{Config{Threshold: 50, Policy: numPolicies}, false},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%+v.Validate()=%v, want ok=%t", tt.cfg, err, tt.ok)
		}
	}
}
