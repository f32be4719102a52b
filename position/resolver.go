// Package position resolves an element's offset relative to a container
// or the document root, correcting for scrolled ancestors along the
// offset-parent chain.
package position

import (
	"go.uber.org/zap"

	"github.com/chrisuehlinger/plumbgeom/css"
	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/layout"
)

// DefaultMaxDepth bounds the offset-parent walk.
const DefaultMaxDepth = 1024

// Options configures a Resolver.
type Options struct {
	// MaxDepth bounds the number of ancestors visited per resolution.
	// Zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives a warning when the walk hits MaxDepth. Nil disables logging.
	Logger *zap.Logger
}

// Resolver computes element offsets over a layout tree. It holds no
// per-element state: every call reads the tree afresh.
type Resolver[E comparable] struct {
	adapter   Adapter[E]
	container E
	maxDepth  int
	logger    *zap.Logger
}

// New creates a resolver reading the tree through adapter.
func New[E comparable](adapter Adapter[E], opts Options) *Resolver[E] {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Resolver[E]{
		adapter:  adapter,
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
}

// NewDOM creates a resolver over the in-memory dom tree.
func NewDOM(opts Options) *Resolver[*dom.Element] {
	return New[*dom.Element](DOMAdapter{}, opts)
}

// SetContainer sets the default container used by ResolveDefault.
func (r *Resolver[E]) SetContainer(container E) {
	r.container = container
}

// Container returns the default container.
func (r *Resolver[E]) Container() E {
	return r.container
}

// Resolve returns the offset of el.
//
// With relativeToRoot set, offsets are summed along the whole
// offset-parent chain and container is ignored. A zero container falls
// back to the default container. Otherwise the walk stops on reaching
// container's coordinate space; an element that is the container or one
// of its direct offset children, or any element when no container is
// known at all, reports its own offset. Scrolled ancestors
// other than the root are subtracted as they are walked, and a scrolled
// container is subtracted once at the end unless el or its offset parent
// is absolutely or fixed positioned.
//
// A zero el yields the zero Offset.
func (r *Resolver[E]) Resolve(el E, relativeToRoot bool, container E) layout.Offset {
	var zero E
	if el == zero {
		return layout.Offset{}
	}
	if container == zero {
		container = r.container
	}

	box := r.adapter.Box(el)
	out := layout.Offset{Left: box.OffsetLeft, Top: box.OffsetTop}
	parent := r.adapter.OffsetParent(el)

	var op E
	if relativeToRoot || (container != zero && el != container && parent != container) {
		op = parent
	}

	for depth := 0; op != zero; depth++ {
		if depth == r.maxDepth {
			r.logger.Warn("offset parent chain exceeds max depth; stopping walk",
				zap.Int("maxDepth", r.maxDepth))
			break
		}

		b := r.adapter.Box(op)
		out.Left += b.OffsetLeft
		out.Top += b.OffsetTop
		if !r.adapter.IsRoot(op) && b.Scrolled() {
			out.Left -= b.ScrollLeft
			out.Top -= b.ScrollTop
		}

		next := r.adapter.OffsetParent(op)
		if !relativeToRoot && next == container {
			break
		}
		op = next
	}

	if container != zero && !relativeToRoot {
		if cb := r.adapter.Box(container); cb.Scrolled() && !r.scrollExempt(el, parent) {
			out.Left -= cb.ScrollLeft
			out.Top -= cb.ScrollTop
		}
	}

	return out
}

// ResolveDefault resolves el against the resolver's default container.
func (r *Resolver[E]) ResolveDefault(el E, relativeToRoot bool) layout.Offset {
	return r.Resolve(el, relativeToRoot, r.container)
}

// scrollExempt reports whether el or its offset parent is out of flow.
// Only these two are consulted, not the intermediate ancestors walked.
func (r *Resolver[E]) scrollExempt(el, parent E) bool {
	var zero E
	if css.ParsePosition(r.adapter.ComputedStyle(el, "position")).OutOfFlow() {
		return true
	}
	if parent == zero {
		return false
	}
	return css.ParsePosition(r.adapter.ComputedStyle(parent, "position")).OutOfFlow()
}

// Size returns el's offset width and height. A zero el yields the zero Size.
func (r *Resolver[E]) Size(el E) layout.Size {
	var zero E
	if el == zero {
		return layout.Size{}
	}
	b := r.adapter.Box(el)
	return layout.Size{Width: b.OffsetWidth, Height: b.OffsetHeight}
}
