package css

import "github.com/chrisuehlinger/plumbgeom/dom"

// OffsetParent computes an element's offset parent following CSSOM View:
// nil for the root, the body and fixed-position elements; otherwise the
// nearest ancestor that is positioned, or the body.
// https://drafts.csswg.org/cssom-view/#dom-htmlelement-offsetparent
func OffsetParent(el *dom.Element) *dom.Element {
	if el == nil || el.ParentElement() == nil {
		return nil
	}
	switch el.TagName() {
	case "html", "body":
		return nil
	}
	if ComputedPosition(el) == PositionFixed {
		return nil
	}
	for anc := el.ParentElement(); anc != nil; anc = anc.ParentElement() {
		if anc.TagName() == "body" || ComputedPosition(anc) != PositionStatic {
			return anc
		}
	}
	return nil
}
