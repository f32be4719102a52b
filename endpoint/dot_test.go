package endpoint

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/anchor"
)

const eps = 1e-9

func TestComputeDotEndpointScenario(t *testing.T) {
	got := ComputeDotEndpoint(vec.Vec2{X: 100, Y: 100}, anchor.Orientation{X: 0, Y: -1},
		PaintStyle{Stroke: "red", StrokeWidth: 2}, 10)

	want := [5]float64{88, 88, 24, 24, 10}
	if got.Array() != want {
		t.Errorf("Expected %v, got %v", want, got.Array())
	}
}

func TestDotWithoutStroke(t *testing.T) {
	got := NewDot(10).ComputeDot(vec.Vec2{X: 100, Y: 100}, PaintStyle{Fill: "blue"})

	want := [5]float64{90, 90, 20, 20, 10}
	if got.Array() != want {
		t.Errorf("Expected %v, got %v", want, got.Array())
	}
}

func TestDotStrokeWidthDefaultsToOne(t *testing.T) {
	got := NewDot(10).ComputeDot(vec.Vec2{X: 0, Y: 0}, PaintStyle{Stroke: "black"})

	want := [5]float64{-11, -11, 22, 22, 10}
	if got.Array() != want {
		t.Errorf("Expected %v, got %v", want, got.Array())
	}
}

func TestDotStrokeWidthIgnoredWithoutStroke(t *testing.T) {
	got := NewDot(5).ComputeDot(vec.Vec2{X: 0, Y: 0}, PaintStyle{StrokeWidth: 4})
	if got.Width != 10 {
		t.Errorf("Expected width 10 with no stroke, got %v", got.Width)
	}
}

func TestDotCenteredOnAnchor(t *testing.T) {
	points := []vec.Vec2{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: -37.25, Y: 12.5}, {X: 1e6, Y: -3.1}}
	radii := []float64{0.5, 1, 7, 10, 33.3}
	styles := []PaintStyle{{}, {Stroke: "red"}, {Stroke: "red", StrokeWidth: 2}, {Stroke: "#000", StrokeWidth: 0.75}}

	for _, p := range points {
		for _, r := range radii {
			for _, s := range styles {
				d := NewDot(r).ComputeDot(p, s)
				c := d.Center()
				if math.Abs(c.X-p.X) > eps || math.Abs(c.Y-p.Y) > eps {
					t.Errorf("point %v radius %v style %+v: center %v", p, r, s, c)
				}
				if d.Radius != r {
					t.Errorf("radius %v: expected unstroked radius, got %v", r, d.Radius)
				}
			}
		}
	}
}

func TestDotStrokeInflation(t *testing.T) {
	dot := NewDot(10)
	p := vec.Vec2{X: 40, Y: 60}
	plain := dot.ComputeDot(p, PaintStyle{})

	for _, k := range []float64{0.5, 1, 2, 3, 10} {
		stroked := dot.ComputeDot(p, PaintStyle{Stroke: "red", StrokeWidth: k})
		if math.Abs(stroked.Width-(plain.Width+2*k)) > eps {
			t.Errorf("k=%v: expected width %v, got %v", k, plain.Width+2*k, stroked.Width)
		}
		if math.Abs(stroked.Height-(plain.Height+2*k)) > eps {
			t.Errorf("k=%v: expected height %v, got %v", k, plain.Height+2*k, stroked.Height)
		}
		if stroked.Radius != plain.Radius {
			t.Errorf("k=%v: radius changed from %v to %v", k, plain.Radius, stroked.Radius)
		}
	}
}

func TestDotDefaults(t *testing.T) {
	for _, r := range []float64{0, -3, math.NaN()} {
		d := NewDot(r)
		if d.Radius != DefaultDotRadius {
			t.Errorf("NewDot(%v): expected default radius, got %v", r, d.Radius)
		}
	}

	d := NewDot(12)
	if d.DefaultOffset != 6 {
		t.Errorf("Expected DefaultOffset=6, got %v", d.DefaultOffset)
	}
	if d.DefaultInnerRadius != 4 {
		t.Errorf("Expected DefaultInnerRadius=4, got %v", d.DefaultInnerRadius)
	}
	if d.Type() != "Dot" {
		t.Errorf("Expected type Dot, got %q", d.Type())
	}
}

func TestComputedDotBounds(t *testing.T) {
	d := ComputedDot{X: 88, Y: 88, Width: 24, Height: 24, Radius: 10}
	want := rect.Rect{LLx: 88, LLy: 88, URx: 112, URy: 112}
	if d.Bounds() != want {
		t.Errorf("Expected %v, got %v", want, d.Bounds())
	}
	if len(d.Tuple()) != 5 {
		t.Errorf("Expected 5-tuple, got %v", d.Tuple())
	}
}

func TestDotFromRegistry(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		radius float64
	}{
		{"no params", nil, 10},
		{"float radius", Params{"radius": 6.0}, 6},
		{"int radius", Params{"radius": 4}, 4},
		{"int64 radius", Params{"radius": int64(8)}, 8},
		{"json radius", Params{"radius": json.Number("2.5")}, 2.5},
		{"zero radius", Params{"radius": 0}, 10},
		{"nil radius", Params{"radius": nil}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := New("Dot", tt.params)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			pos := anchor.ComputedAnchorPosition{Point: vec.Vec2{X: 50, Y: 50}}
			geom := rep.Compute(pos, PaintStyle{})
			tuple := geom.Tuple()
			if tuple[4] != tt.radius {
				t.Errorf("Expected radius %v, got %v", tt.radius, tuple[4])
			}
			if tuple[2] != 2*tt.radius {
				t.Errorf("Expected width %v, got %v", 2*tt.radius, tuple[2])
			}
		})
	}
}

func TestDotInvalidRadius(t *testing.T) {
	for _, params := range []Params{
		{"radius": -1.0},
		{"radius": "large"},
		{"radius": math.Inf(1)},
	} {
		if _, err := New("Dot", params); !errors.Is(err, ErrInvalidParam) {
			t.Errorf("params %v: expected ErrInvalidParam, got %v", params, err)
		}
	}
}
