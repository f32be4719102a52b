// Package layout holds the value types shared by position resolution and
// endpoint geometry: offsets, sizes and axis-aligned rectangles.
package layout

// Offset is a position in screen space.
type Offset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Add returns the offset translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{Left: o.Left + other.Left, Top: o.Top + other.Top}
}

// Sub returns the offset translated by the negation of other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{Left: o.Left - other.Left, Top: o.Top - other.Top}
}

// Size is the width and height of an element's box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Slice returns the size as a [width, height] pair.
func (s Size) Slice() [2]float64 {
	return [2]float64{s.Width, s.Height}
}

// Rect represents a rectangular area.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes represents the sizes of edges (top, right, bottom, left).
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// UniformEdges returns edge sizes that are v on every side.
func UniformEdges(v float64) EdgeSizes {
	return EdgeSizes{Top: v, Right: v, Bottom: v, Left: v}
}

// NewRect returns the rectangle with the given origin and size.
func NewRect(origin Offset, size Size) Rect {
	return Rect{X: origin.Left, Y: origin.Top, Width: size.Width, Height: size.Height}
}

// ExpandedBy returns a rectangle expanded by the given edge sizes.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Origin returns the top-left corner as an Offset.
func (r Rect) Origin() Offset {
	return Offset{Left: r.X, Top: r.Y}
}

// Contains reports whether the point lies inside the rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}
