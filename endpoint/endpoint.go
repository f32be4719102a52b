// Package endpoint computes the geometry of connector terminators.
//
// Each terminator shape is a Representation registered under a type name
// ("Dot", ...). A Representation is created per endpoint from Params and
// turns an anchor position and paint style into a Geometry: a bounding
// box that encloses the stroked shape and is centred on the anchor point.
package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"

	"github.com/chrisuehlinger/plumbgeom/anchor"
)

var (
	// ErrUnknownType is returned for a type name with no registered factory.
	ErrUnknownType = errors.New("unknown endpoint type")
	// ErrInvalidParam is returned when a constructor parameter is out of range.
	ErrInvalidParam = errors.New("invalid endpoint parameter")
)

// PaintStyle is the visual style of an endpoint. Geometry reads only
// Stroke (as a presence flag) and StrokeWidth; Fill is used when painting.
type PaintStyle struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// LineWidth returns the stroke width that inflates geometry: 0 without a
// stroke, StrokeWidth when positive, else 1.
func (s PaintStyle) LineWidth() float64 {
	if s.Stroke == "" {
		return 0
	}
	if s.StrokeWidth > 0 {
		return s.StrokeWidth
	}
	return 1
}

// Geometry is the computed shape of an endpoint.
type Geometry interface {
	// Tuple returns the geometry as a flat list, starting with the
	// bounding box x, y, width and height.
	Tuple() []float64
	// Bounds returns the bounding box enclosing the stroked shape.
	Bounds() rect.Rect
}

// Representation computes geometry for one endpoint.
type Representation interface {
	Type() string
	Compute(pos anchor.ComputedAnchorPosition, style PaintStyle) Geometry
}

// Params are constructor parameters, typically decoded from JSON or a script.
type Params map[string]any

// Float returns a numeric parameter. ok is false when the key is absent
// or not a number.
func (p Params) Float(key string) (v float64, ok bool) {
	switch n := p[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// positive validates a numeric parameter that must be strictly positive.
// Absent or zero values yield def.
func (p Params) positive(key string, def float64) (float64, error) {
	v, ok := p.Float(key)
	if !ok {
		if _, present := p[key]; present && p[key] != nil {
			return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidParam, key, p[key])
		}
		return def, nil
	}
	if v == 0 {
		return def, nil
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParam, key, v)
	}
	return v, nil
}
