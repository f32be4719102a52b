// Package anchor computes where on an element's box a connector attaches
// and which way it faces.
package anchor

import (
	"strings"

	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/layout"
)

// Orientation is the outward direction a connector leaves an anchor in.
// Components are -1, 0 or 1 for the named anchors.
type Orientation = vec.Vec2

// ComputedAnchorPosition is an attachment point with its orientation.
type ComputedAnchorPosition struct {
	Point       vec.Vec2
	Orientation Orientation
}

// Anchor is a position on an element box expressed as fractions of its
// width and height, plus an orientation and a fixed pixel offset.
type Anchor struct {
	X, Y             float64
	Orientation      Orientation
	OffsetX, OffsetY float64
}

// Compute places the anchor on the box with the given origin and size.
func (a Anchor) Compute(origin layout.Offset, size layout.Size) ComputedAnchorPosition {
	return ComputedAnchorPosition{
		Point: vec.Vec2{
			X: origin.Left + a.X*size.Width + a.OffsetX,
			Y: origin.Top + a.Y*size.Height + a.OffsetY,
		},
		Orientation: a.Orientation,
	}
}

// Named anchors.
var (
	Top         = Anchor{X: 0.5, Y: 0, Orientation: vec.Vec2{X: 0, Y: -1}}
	Bottom      = Anchor{X: 0.5, Y: 1, Orientation: vec.Vec2{X: 0, Y: 1}}
	Left        = Anchor{X: 0, Y: 0.5, Orientation: vec.Vec2{X: -1, Y: 0}}
	Right       = Anchor{X: 1, Y: 0.5, Orientation: vec.Vec2{X: 1, Y: 0}}
	Center      = Anchor{X: 0.5, Y: 0.5}
	TopLeft     = Anchor{X: 0, Y: 0, Orientation: vec.Vec2{X: -1, Y: -1}}
	TopRight    = Anchor{X: 1, Y: 0, Orientation: vec.Vec2{X: 1, Y: -1}}
	BottomLeft  = Anchor{X: 0, Y: 1, Orientation: vec.Vec2{X: -1, Y: 1}}
	BottomRight = Anchor{X: 1, Y: 1, Orientation: vec.Vec2{X: 1, Y: 1}}
)

var named = map[string]Anchor{
	"top":         Top,
	"bottom":      Bottom,
	"left":        Left,
	"right":       Right,
	"center":      Center,
	"topleft":     TopLeft,
	"topright":    TopRight,
	"bottomleft":  BottomLeft,
	"bottomright": BottomRight,
}

// Lookup returns the named anchor. Names are case-insensitive and may
// use a hyphen ("top-left").
func Lookup(name string) (Anchor, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	a, ok := named[key]
	return a, ok
}

// Names returns the recognised anchor names.
func Names() []string {
	return []string{"top", "bottom", "left", "right", "center",
		"topleft", "topright", "bottomleft", "bottomright"}
}
