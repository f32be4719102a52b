package js

import (
	"fmt"
	"math"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/chrisuehlinger/plumbgeom/anchor"
	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/layout"
	"github.com/chrisuehlinger/plumbgeom/position"
)

// Plumb is the script-facing geometry API, installed as the global "plumb".
// Elements are addressed by id; null or undefined means "no element".
type Plumb struct {
	rt       *Runtime
	doc      *dom.Document
	resolver *position.Resolver[*dom.Element]
	registry *endpoint.Registry
}

// BindPlumb installs the plumb global. Endpoint types come from a copy of
// registry (endpoint.Default when nil), so types registered by scripts stay
// private to this runtime.
func (r *Runtime) BindPlumb(doc *dom.Document, resolver *position.Resolver[*dom.Element], registry *endpoint.Registry) *Plumb {
	if registry == nil {
		registry = endpoint.Default
	}
	p := &Plumb{
		rt:       r,
		doc:      doc,
		resolver: resolver,
		registry: registry.Clone(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	obj := r.vm.NewObject()
	obj.Set("getOffset", p.getOffset)
	obj.Set("getSize", p.getSize)
	obj.Set("setContainer", p.setContainer)
	obj.Set("anchor", p.anchor)
	obj.Set("computeEndpoint", p.computeEndpoint)
	obj.Set("registerEndpoint", p.registerEndpoint)
	obj.Set("endpointTypes", func(goja.FunctionCall) goja.Value {
		types := p.registry.Types()
		items := make([]any, len(types))
		for i, t := range types {
			items[i] = t
		}
		return r.vm.NewArray(items...)
	})
	r.vm.Set("plumb", obj)
	return p
}

// Registry returns the runtime's endpoint registry.
func (p *Plumb) Registry() *endpoint.Registry {
	return p.registry
}

func (p *Plumb) throw(err error) {
	panic(p.rt.vm.NewGoError(err))
}

// element resolves an id argument; null and undefined give nil.
func (p *Plumb) element(v goja.Value) *dom.Element {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	el, err := p.doc.LookupElementByID(v.String())
	if err != nil {
		p.throw(err)
	}
	return el
}

// getOffset(id, relativeToRoot, containerId) returns {left, top}.
// Without a container id the resolver's default container is used.
func (p *Plumb) getOffset(call goja.FunctionCall) goja.Value {
	el := p.element(call.Argument(0))
	relativeToRoot := call.Argument(1).ToBoolean()

	var o layout.Offset
	if c := call.Argument(2); goja.IsUndefined(c) || goja.IsNull(c) {
		o = p.resolver.ResolveDefault(el, relativeToRoot)
	} else {
		o = p.resolver.Resolve(el, relativeToRoot, p.element(c))
	}
	return p.offsetValue(o)
}

// getSize(id) returns [width, height].
func (p *Plumb) getSize(call goja.FunctionCall) goja.Value {
	s := p.resolver.Size(p.element(call.Argument(0)))
	return p.rt.vm.NewArray(s.Width, s.Height)
}

// setContainer(id) sets the default container; null clears it.
func (p *Plumb) setContainer(call goja.FunctionCall) goja.Value {
	p.resolver.SetContainer(p.element(call.Argument(0)))
	return goja.Undefined()
}

// anchor(id, name) places a named anchor on the element's box in root
// coordinates and returns {x, y, ox, oy}.
func (p *Plumb) anchor(call goja.FunctionCall) goja.Value {
	el := p.element(call.Argument(0))
	name := call.Argument(1).String()
	a, ok := anchor.Lookup(name)
	if !ok {
		p.throw(fmt.Errorf("unknown anchor %q", name))
	}
	pos := a.Compute(p.resolver.Resolve(el, true, nil), p.resolver.Size(el))
	return p.anchorValue(pos)
}

// computeEndpoint(type, params, anchor, style) returns the geometry tuple.
func (p *Plumb) computeEndpoint(call goja.FunctionCall) goja.Value {
	typeName := call.Argument(0).String()
	params := exportParams(call.Argument(1))

	pos, err := toAnchorPosition(call.Argument(2))
	if err != nil {
		p.throw(err)
	}
	rep, err := p.registry.New(typeName, params)
	if err != nil {
		p.throw(err)
	}
	geom := rep.Compute(pos, toPaintStyle(call.Argument(3)))
	return p.tupleValue(geom.Tuple())
}

// registerEndpoint(type, factory) registers a script endpoint type.
// factory(params) must return an object whose compute(anchor, style)
// method returns [x, y, w, h, ...].
func (p *Plumb) registerEndpoint(call goja.FunctionCall) goja.Value {
	typeName := call.Argument(0).String()
	factory, ok := goja.AssertFunction(call.Argument(1))
	if !ok {
		panic(p.rt.vm.NewTypeError("registerEndpoint: factory must be a function"))
	}

	p.registry.Register(typeName, func(params endpoint.Params) (endpoint.Representation, error) {
		v, err := factory(goja.Undefined(), p.rt.vm.ToValue(map[string]any(params)))
		if err != nil {
			return nil, err
		}
		obj := v.ToObject(p.rt.vm)
		compute, ok := goja.AssertFunction(obj.Get("compute"))
		if !ok {
			return nil, fmt.Errorf("%w: %s factory result has no compute method", endpoint.ErrInvalidParam, typeName)
		}
		return &scriptRepresentation{plumb: p, typeName: typeName, this: obj, compute: compute}, nil
	})
	p.rt.logger.Debug("registered script endpoint", zap.String("type", typeName))
	return goja.Undefined()
}

// scriptRepresentation is an endpoint type implemented in script. It must
// only be computed while the runtime is executing.
type scriptRepresentation struct {
	plumb    *Plumb
	typeName string
	this     *goja.Object
	compute  goja.Callable
}

func (s *scriptRepresentation) Type() string {
	return s.typeName
}

func (s *scriptRepresentation) Compute(pos anchor.ComputedAnchorPosition, style endpoint.PaintStyle) endpoint.Geometry {
	v, err := s.compute(s.this, s.plumb.anchorValue(pos), s.plumb.styleValue(style))
	if err != nil {
		s.plumb.throw(fmt.Errorf("%s compute: %w", s.typeName, err))
	}
	var tuple []float64
	if err := s.plumb.rt.vm.ExportTo(v, &tuple); err != nil {
		s.plumb.throw(fmt.Errorf("%s compute: %w", s.typeName, err))
	}
	return TupleGeometry(tuple)
}

// TupleGeometry is geometry returned by a script: x, y, w, h followed by
// shape-specific values.
type TupleGeometry []float64

func (g TupleGeometry) Tuple() []float64 {
	return g
}

func (g TupleGeometry) Bounds() rect.Rect {
	var box [4]float64
	copy(box[:], g)
	return rect.Rect{LLx: box[0], LLy: box[1], URx: box[0] + box[2], URy: box[1] + box[3]}
}

func (p *Plumb) offsetValue(o layout.Offset) goja.Value {
	obj := p.rt.vm.NewObject()
	obj.Set("left", o.Left)
	obj.Set("top", o.Top)
	return obj
}

func (p *Plumb) anchorValue(pos anchor.ComputedAnchorPosition) goja.Value {
	obj := p.rt.vm.NewObject()
	obj.Set("x", pos.Point.X)
	obj.Set("y", pos.Point.Y)
	obj.Set("ox", pos.Orientation.X)
	obj.Set("oy", pos.Orientation.Y)
	return obj
}

func (p *Plumb) styleValue(s endpoint.PaintStyle) goja.Value {
	obj := p.rt.vm.NewObject()
	obj.Set("fill", s.Fill)
	obj.Set("stroke", s.Stroke)
	obj.Set("strokeWidth", s.StrokeWidth)
	return obj
}

func (p *Plumb) tupleValue(t []float64) goja.Value {
	items := make([]any, len(t))
	for i, v := range t {
		items[i] = v
	}
	return p.rt.vm.NewArray(items...)
}

func exportParams(v goja.Value) endpoint.Params {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	m, _ := v.Export().(map[string]any)
	return m
}

// toAnchorPosition accepts {x, y, ox, oy} or [x, y, ox, oy].
func toAnchorPosition(v goja.Value) (anchor.ComputedAnchorPosition, error) {
	var pos anchor.ComputedAnchorPosition
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return pos, fmt.Errorf("%w: anchor position required", endpoint.ErrInvalidParam)
	}

	var vals [4]float64
	switch a := v.Export().(type) {
	case map[string]any:
		for i, key := range []string{"x", "y", "ox", "oy"} {
			vals[i] = number(a[key])
		}
	case []any:
		if len(a) < 2 {
			return pos, fmt.Errorf("%w: anchor array needs x and y", endpoint.ErrInvalidParam)
		}
		for i := 0; i < len(a) && i < 4; i++ {
			vals[i] = number(a[i])
		}
	default:
		return pos, fmt.Errorf("%w: anchor must be an object or array, got %T", endpoint.ErrInvalidParam, a)
	}
	for _, f := range vals {
		if math.IsNaN(f) {
			return pos, fmt.Errorf("%w: anchor coordinates must be numbers", endpoint.ErrInvalidParam)
		}
	}

	pos.Point = vec.Vec2{X: vals[0], Y: vals[1]}
	pos.Orientation = anchor.Orientation{X: vals[2], Y: vals[3]}
	return pos, nil
}

func toPaintStyle(v goja.Value) endpoint.PaintStyle {
	var s endpoint.PaintStyle
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return s
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return s
	}
	s.Fill = truthyString(obj.Get("fill"))
	// Any truthy stroke inflates the bounds, not only color strings.
	s.Stroke = truthyString(obj.Get("stroke"))
	if w := obj.Get("strokeWidth"); w != nil {
		s.StrokeWidth = number(w.Export())
	}
	if math.IsNaN(s.StrokeWidth) {
		s.StrokeWidth = 0
	}
	return s
}

// truthyString returns the string form of a truthy value and "" otherwise.
func truthyString(v goja.Value) string {
	if v == nil || !v.ToBoolean() {
		return ""
	}
	return v.String()
}

// number converts an exported script number; absent values are 0 and
// non-numbers NaN.
func number(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return math.NaN()
}
