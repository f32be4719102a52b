package endpoint

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/anchor"
	"github.com/chrisuehlinger/plumbgeom/layout"
)

// DotType is the registry name of the Dot endpoint.
const DotType = "Dot"

// DefaultDotRadius is used when no radius is configured.
const DefaultDotRadius = 10.0

func init() {
	Register(DotType, func(params Params) (Representation, error) {
		radius, err := params.positive("radius", DefaultDotRadius)
		if err != nil {
			return nil, err
		}
		return NewDot(radius), nil
	})
}

// ComputedDot is the geometry of a circular endpoint: the bounding box of
// the stroked circle and the unstroked radius.
type ComputedDot struct {
	X, Y, Width, Height float64
	Radius              float64
}

// Tuple returns [x, y, width, height, radius].
func (d ComputedDot) Tuple() []float64 {
	return []float64{d.X, d.Y, d.Width, d.Height, d.Radius}
}

// Array is Tuple as a fixed-size array.
func (d ComputedDot) Array() [5]float64 {
	return [5]float64{d.X, d.Y, d.Width, d.Height, d.Radius}
}

// Bounds returns the bounding box with LL at (X, Y).
func (d ComputedDot) Bounds() rect.Rect {
	return rect.Rect{LLx: d.X, LLy: d.Y, URx: d.X + d.Width, URy: d.Y + d.Height}
}

// Center returns the centre of the bounding box, which is the anchor point.
func (d ComputedDot) Center() vec.Vec2 {
	return vec.Vec2{X: d.X + d.Width/2, Y: d.Y + d.Height/2}
}

// Dot is a filled circle endpoint.
type Dot struct {
	Radius             float64
	DefaultOffset      float64
	DefaultInnerRadius float64
}

// NewDot returns a Dot of the given radius; non-positive radii use
// DefaultDotRadius.
func NewDot(radius float64) *Dot {
	if !(radius > 0) {
		radius = DefaultDotRadius
	}
	return &Dot{
		Radius:             radius,
		DefaultOffset:      0.5 * radius,
		DefaultInnerRadius: radius / 3,
	}
}

func (d *Dot) Type() string {
	return DotType
}

func (d *Dot) Compute(pos anchor.ComputedAnchorPosition, style PaintStyle) Geometry {
	return d.ComputeDot(pos.Point, style)
}

// ComputeDot returns the circle's bounding box centred on point, inflated
// on every side by the stroke width when the style has a stroke.
func (d *Dot) ComputeDot(point vec.Vec2, style PaintStyle) ComputedDot {
	box := layout.Rect{
		X:      point.X - d.Radius,
		Y:      point.Y - d.Radius,
		Width:  2 * d.Radius,
		Height: 2 * d.Radius,
	}
	if lw := style.LineWidth(); lw > 0 {
		box = box.ExpandedBy(layout.UniformEdges(lw))
	}
	return ComputedDot{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height, Radius: d.Radius}
}

// ComputeDotEndpoint computes Dot geometry without a Representation.
// The orientation does not affect a circle.
func ComputeDotEndpoint(point vec.Vec2, orientation anchor.Orientation, style PaintStyle, radius float64) ComputedDot {
	return NewDot(radius).ComputeDot(point, style)
}
