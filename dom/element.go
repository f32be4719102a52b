package dom

// GetAttribute returns the attribute value, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	return e.attributes[name]
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attributes[name]
	return ok
}

// SetAttribute sets an attribute. Setting "style" re-parses the inline style.
func (e *Element) SetAttribute(name, value string) {
	e.setAttributeValue(name, value)
	if name == "style" && e.style != nil {
		e.style.RefreshFromAttribute()
	}
}

// setAttributeValue stores a value without touching the style declaration.
func (e *Element) setAttributeValue(name, value string) {
	if _, exists := e.attributes[name]; !exists {
		e.attrOrder = append(e.attrOrder, name)
	}
	e.attributes[name] = value
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	if !e.removeAttributeValue(name) {
		return
	}
	if name == "style" && e.style != nil {
		e.style.RefreshFromAttribute()
	}
}

// removeAttributeValue deletes a value without touching the style declaration.
func (e *Element) removeAttributeValue(name string) bool {
	if _, ok := e.attributes[name]; !ok {
		return false
	}
	delete(e.attributes, name)
	for i, n := range e.attrOrder {
		if n == name {
			e.attrOrder = append(e.attrOrder[:i], e.attrOrder[i+1:]...)
			break
		}
	}
	return true
}

// AttributeNames returns attribute names in the order they were first set.
func (e *Element) AttributeNames() []string {
	out := make([]string, len(e.attrOrder))
	copy(out, e.attrOrder)
	return out
}

// Style returns the element's inline style declaration.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.style == nil {
		e.style = NewCSSStyleDeclaration(e)
	}
	return e.style
}

// Geometry returns the element's layout geometry, or nil if never laid out.
func (e *Element) Geometry() *ElementGeometry {
	return e.geometry
}

// SetGeometry replaces the element's layout geometry.
func (e *Element) SetGeometry(geom *ElementGeometry) {
	e.geometry = geom
}

// ensureGeometry returns the geometry, allocating an empty one if needed.
func (e *Element) ensureGeometry() *ElementGeometry {
	if e.geometry == nil {
		e.geometry = &ElementGeometry{}
	}
	return e.geometry
}

// SetOffset sets offsetLeft and offsetTop.
func (e *Element) SetOffset(left, top float64) {
	g := e.ensureGeometry()
	g.OffsetLeft = left
	g.OffsetTop = top
}

// SetOffsetSize sets offsetWidth and offsetHeight.
func (e *Element) SetOffsetSize(width, height float64) {
	g := e.ensureGeometry()
	g.OffsetWidth = width
	g.OffsetHeight = height
}

// SetOffsetParent sets the element's offset parent.
func (e *Element) SetOffsetParent(parent *Element) {
	e.ensureGeometry().OffsetParent = parent
}

// OffsetWidth returns the layout width including padding and border.
func (e *Element) OffsetWidth() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.OffsetWidth
}

// OffsetHeight returns the layout height including padding and border.
func (e *Element) OffsetHeight() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.OffsetHeight
}

// OffsetTop returns the distance from the top of the offset parent.
func (e *Element) OffsetTop() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.OffsetTop
}

// OffsetLeft returns the distance from the left of the offset parent.
func (e *Element) OffsetLeft() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.OffsetLeft
}

// OffsetParent returns the offset parent element.
func (e *Element) OffsetParent() *Element {
	geom := e.Geometry()
	if geom == nil {
		return nil
	}
	return geom.OffsetParent
}

// ScrollTop returns the scroll offset from the top.
func (e *Element) ScrollTop() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.ScrollTop
}

// SetScrollTop sets the scroll offset from the top.
// Negative values are clamped to 0.
func (e *Element) SetScrollTop(value float64) {
	if value < 0 {
		value = 0
	}
	e.ensureGeometry().ScrollTop = value
}

// ScrollLeft returns the scroll offset from the left.
func (e *Element) ScrollLeft() float64 {
	geom := e.Geometry()
	if geom == nil {
		return 0
	}
	return geom.ScrollLeft
}

// SetScrollLeft sets the scroll offset from the left.
// Negative values are clamped to 0.
func (e *Element) SetScrollLeft(value float64) {
	if value < 0 {
		value = 0
	}
	e.ensureGeometry().ScrollLeft = value
}

// IsScrolled reports whether either scroll offset is positive.
func (e *Element) IsScrolled() bool {
	return e.ScrollTop() > 0 || e.ScrollLeft() > 0
}
