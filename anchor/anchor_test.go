package anchor

import (
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/layout"
)

func TestAnchorCompute(t *testing.T) {
	origin := layout.Offset{Left: 100, Top: 50}
	size := layout.Size{Width: 80, Height: 40}

	tests := []struct {
		name   string
		anchor Anchor
		want   vec.Vec2
		orient vec.Vec2
	}{
		{"top", Top, vec.Vec2{X: 140, Y: 50}, vec.Vec2{X: 0, Y: -1}},
		{"bottom", Bottom, vec.Vec2{X: 140, Y: 90}, vec.Vec2{X: 0, Y: 1}},
		{"left", Left, vec.Vec2{X: 100, Y: 70}, vec.Vec2{X: -1, Y: 0}},
		{"right", Right, vec.Vec2{X: 180, Y: 70}, vec.Vec2{X: 1, Y: 0}},
		{"center", Center, vec.Vec2{X: 140, Y: 70}, vec.Vec2{}},
		{"bottom right", BottomRight, vec.Vec2{X: 180, Y: 90}, vec.Vec2{X: 1, Y: 1}},
		{"offset", Anchor{X: 0.25, Y: 0, OffsetX: 3, OffsetY: -2}, vec.Vec2{X: 123, Y: 48}, vec.Vec2{}},
	}

	for _, tt := range tests {
		got := tt.anchor.Compute(origin, size)
		if got.Point != tt.want {
			t.Errorf("%s: expected point %v, got %v", tt.name, tt.want, got.Point)
		}
		if got.Orientation != tt.orient {
			t.Errorf("%s: expected orientation %v, got %v", tt.name, tt.orient, got.Orientation)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if a, ok := Lookup("Top-Left"); !ok || a != TopLeft {
		t.Errorf("Expected Top-Left to resolve to TopLeft, got %v, %v", a, ok)
	}
	if _, ok := Lookup("middle"); ok {
		t.Error("Expected unknown anchor name to fail")
	}
}
