package position

import (
	"github.com/chrisuehlinger/plumbgeom/css"
	"github.com/chrisuehlinger/plumbgeom/dom"
)

// Box is the geometric state of an element read by the resolver.
type Box struct {
	OffsetLeft, OffsetTop     float64
	OffsetWidth, OffsetHeight float64
	ScrollLeft, ScrollTop     float64
}

// Scrolled reports whether either scroll offset is positive.
func (b Box) Scrolled() bool {
	return b.ScrollTop > 0 || b.ScrollLeft > 0
}

// Adapter gives the resolver read access to a layout tree. E is the
// element handle; its zero value stands for "no element".
type Adapter[E comparable] interface {
	// Box returns the element's offsets, size and scroll state.
	Box(el E) Box
	// OffsetParent returns the element's offset parent, or the zero E.
	OffsetParent(el E) E
	// ComputedStyle returns the computed value of a CSS property.
	ComputedStyle(el E, property string) string
	// IsRoot reports whether el is the document root (the body), whose
	// scroll never shifts descendants.
	IsRoot(el E) bool
}

// DOMAdapter adapts the in-memory dom tree.
type DOMAdapter struct{}

var _ Adapter[*dom.Element] = DOMAdapter{}

func (DOMAdapter) Box(el *dom.Element) Box {
	return Box{
		OffsetLeft:   el.OffsetLeft(),
		OffsetTop:    el.OffsetTop(),
		OffsetWidth:  el.OffsetWidth(),
		OffsetHeight: el.OffsetHeight(),
		ScrollLeft:   el.ScrollLeft(),
		ScrollTop:    el.ScrollTop(),
	}
}

func (DOMAdapter) OffsetParent(el *dom.Element) *dom.Element {
	return el.OffsetParent()
}

func (DOMAdapter) ComputedStyle(el *dom.Element, property string) string {
	return css.GetComputedStyle(el, property)
}

func (DOMAdapter) IsRoot(el *dom.Element) bool {
	doc := el.OwnerDocument()
	return doc != nil && doc.Body() == el
}
