package dom

import "sync"

// Document is the root of a layout tree. It always owns an <html> element
// with a <body> child; the body is the document's scroll root.
type Document struct {
	documentElement *Element
	body            *Element

	styleMu     sync.Mutex
	styleSheets []string
	styleState  any
}

// NewDocument creates a document with an empty <html><body> skeleton.
func NewDocument() *Document {
	doc := &Document{}
	doc.documentElement = newElement("html", doc)
	doc.body = newElement("body", doc)
	doc.documentElement.AppendChild(doc.body)
	return doc
}

// CreateElement creates a detached element owned by the document.
func (d *Document) CreateElement(tagName string) *Element {
	return newElement(tagName, d)
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *Element {
	return d.documentElement
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.body
}

// GetElementByID returns the first element in document order whose id
// attribute equals id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.documentElement.walk(func(e *Element) bool {
		if e.ID() == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// LookupElementByID is GetElementByID returning a NotFoundError instead of nil.
func (d *Document) LookupElementByID(id string) (*Element, error) {
	if el := d.GetElementByID(id); el != nil {
		return el, nil
	}
	return nil, ErrNotFound("no element with id " + id)
}

// Elements returns every element of the document in document order.
func (d *Document) Elements() []*Element {
	var out []*Element
	d.documentElement.walk(func(e *Element) bool {
		out = append(out, e)
		return true
	})
	return out
}

// AddStyleSheet appends the text of an author stylesheet, such as the
// contents of a <style> element. Derived style state is dropped.
func (d *Document) AddStyleSheet(text string) {
	d.styleMu.Lock()
	defer d.styleMu.Unlock()
	d.styleSheets = append(d.styleSheets, text)
	d.styleState = nil
}

// StyleSheets returns the author stylesheet texts in document order.
func (d *Document) StyleSheets() []string {
	d.styleMu.Lock()
	defer d.styleMu.Unlock()
	out := make([]string, len(d.styleSheets))
	copy(out, d.styleSheets)
	return out
}

// StyleState returns state derived from the stylesheets, calling build
// the first time it is needed after the sheets last changed.
func (d *Document) StyleState(build func(sheets []string) any) any {
	d.styleMu.Lock()
	defer d.styleMu.Unlock()
	if d.styleState == nil {
		d.styleState = build(d.styleSheets)
	}
	return d.styleState
}
