// Package dom provides an in-memory layout tree: elements carrying the
// offset, scroll and inline-style state that position resolution reads.
package dom

import "strings"

// ElementGeometry holds computed layout geometry for an element.
// It is set by whoever performs layout (a fixture loader, a test, a live
// snapshot) and read by position resolution.
type ElementGeometry struct {
	OffsetTop, OffsetLeft     float64
	OffsetWidth, OffsetHeight float64
	OffsetParent              *Element

	ScrollTop, ScrollLeft float64
}

// Element is a node in the layout tree.
type Element struct {
	tagName  string
	ownerDoc *Document
	parent   *Element
	children []*Element

	attributes map[string]string
	attrOrder  []string

	style    *CSSStyleDeclaration
	geometry *ElementGeometry
}

func newElement(tagName string, ownerDoc *Document) *Element {
	return &Element{
		tagName:    strings.ToLower(tagName),
		ownerDoc:   ownerDoc,
		attributes: make(map[string]string),
	}
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.tagName
}

// ID returns the value of the id attribute.
func (e *Element) ID() string {
	return e.attributes["id"]
}

// OwnerDocument returns the document that created the element.
func (e *Element) OwnerDocument() *Document {
	return e.ownerDoc
}

// ParentElement returns the tree parent, or nil for a detached or root element.
func (e *Element) ParentElement() *Element {
	return e.parent
}

// Children returns a copy of the element's child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// AppendChild appends child to e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) error {
	if child == nil {
		return ErrHierarchyRequest("cannot append a nil element")
	}
	if child.Contains(e) {
		return ErrHierarchyRequest("the new child is an ancestor of the parent")
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return nil
}

// RemoveChild detaches child from e. It is a no-op if child is not a child of e.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// walk visits e and its descendants in document order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
