package render

import (
	"github.com/chrisuehlinger/plumbgeom/anchor"
	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/layout"
	"github.com/chrisuehlinger/plumbgeom/position"
)

// Attachment places one endpoint on an element.
type Attachment struct {
	Element        *dom.Element
	Anchor         anchor.Anchor
	Representation endpoint.Representation
	Style          endpoint.PaintStyle
}

// BuildScene lays out every sized element of doc in document coordinates
// and computes the attached endpoints on top of them.
func BuildScene(doc *dom.Document, r *position.Resolver[*dom.Element], attachments []Attachment) Scene {
	var scene Scene
	for _, el := range doc.Elements() {
		if el == doc.DocumentElement() || el == doc.Body() {
			continue
		}
		size := r.Size(el)
		if size.Width <= 0 || size.Height <= 0 {
			continue
		}
		scene.Boxes = append(scene.Boxes, Box{
			Rect:  layout.NewRect(r.Resolve(el, true, nil), size),
			Color: el.GetAttribute("data-outline"),
		})
	}

	for _, a := range attachments {
		if a.Element == nil || a.Representation == nil {
			continue
		}
		pos := a.Anchor.Compute(r.Resolve(a.Element, true, nil), r.Size(a.Element))
		scene.Endpoints = append(scene.Endpoints, Endpoint{
			Geometry: a.Representation.Compute(pos, a.Style),
			Style:    a.Style,
		})
	}
	return scene
}
