// Package html builds layout-tree fixtures from HTML markup using
// golang.org/x/net/html as the underlying parser.
//
// Geometry is not computed by a layout engine; it is read from data
// attributes on each element:
//
//	data-offset-left, data-offset-top      offsetLeft / offsetTop
//	data-offset-width, data-offset-height  offsetWidth / offsetHeight
//	data-scroll-left, data-scroll-top      scrollLeft / scrollTop
//	data-offset-parent                     id of the offset parent
//
// Lengths may carry a "px" suffix. When data-offset-parent is absent the
// offset parent is derived from the computed position, which honours both
// inline styles and <style> rules.
package html

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/plumbgeom/css"
	"github.com/chrisuehlinger/plumbgeom/dom"
)

// ErrInvalidGeometry reports a geometry attribute that is not a length.
var ErrInvalidGeometry = errors.New("invalid geometry attribute")

// Attribute names read by the fixture loader.
const (
	AttrOffsetLeft   = "data-offset-left"
	AttrOffsetTop    = "data-offset-top"
	AttrOffsetWidth  = "data-offset-width"
	AttrOffsetHeight = "data-offset-height"
	AttrScrollLeft   = "data-scroll-left"
	AttrScrollTop    = "data-scroll-top"
	AttrOffsetParent = "data-offset-parent"
)

// Parse parses an HTML fixture from a string.
func Parse(htmlContent string) (*dom.Document, error) {
	return ParseReader(strings.NewReader(htmlContent))
}

// ParseReader parses an HTML fixture from an io.Reader.
func ParseReader(r io.Reader) (*dom.Document, error) {
	f, err := ParseFixture(r)
	if err != nil {
		return nil, err
	}
	return f.Document, nil
}

// Script is the text of an inline <script> element.
type Script struct {
	Index int // position among the fixture's scripts
	Code  string
}

// Fixture is a parsed fixture document with its inline scripts in
// document order. Scripts with a src attribute are ignored.
type Fixture struct {
	Document *dom.Document
	Scripts  []Script
}

// ParseFixture parses an HTML fixture and collects its inline scripts.
func ParseFixture(r io.Reader) (*Fixture, error) {
	netNode, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc, err := build(netNode)
	if err != nil {
		return nil, err
	}
	f := &Fixture{Document: doc}
	collectScripts(netNode, &f.Scripts)
	return f, nil
}

func collectScripts(n *html.Node, out *[]Script) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Script && !hasAttr(n, "src") {
		var code strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				code.WriteString(c.Data)
			}
		}
		*out = append(*out, Script{Index: len(*out), Code: code.String()})
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectScripts(c, out)
	}
}

// collectStyleSheets adds the text of every <style> element, in head or
// body, to doc in document order.
func collectStyleSheets(n *html.Node, doc *dom.Document) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Style {
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		doc.AddStyleSheet(text.String())
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyleSheets(c, doc)
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// build converts a parsed tree into a dom.Document with geometry applied.
// Stylesheets are attached first so derived offset parents see the
// positions their rules declare.
func build(netNode *html.Node) (*dom.Document, error) {
	doc := dom.NewDocument()
	var elements []*dom.Element
	convertChildren(netNode, doc.DocumentElement(), doc, &elements)
	collectStyleSheets(netNode, doc)

	for _, el := range elements {
		if err := applyGeometry(doc, el); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// convertChildren converts the element children of n under parent.
// <html> and <body> map onto the document skeleton; <head> is dropped
// apart from its stylesheets, which build collects separately.
func convertChildren(n *html.Node, parent *dom.Element, doc *dom.Document, out *[]*dom.Element) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}

		var el *dom.Element
		switch c.DataAtom {
		case atom.Head:
			continue
		case atom.Html:
			el = doc.DocumentElement()
		case atom.Body:
			el = doc.Body()
		default:
			el = doc.CreateElement(c.Data)
			parent.AppendChild(el)
		}
		for _, attr := range c.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		*out = append(*out, el)
		convertChildren(c, el, doc, out)
	}
}

// applyGeometry reads the data attributes of el into its ElementGeometry.
func applyGeometry(doc *dom.Document, el *dom.Element) error {
	var vals [6]float64
	for i, name := range []string{
		AttrOffsetLeft, AttrOffsetTop,
		AttrOffsetWidth, AttrOffsetHeight,
		AttrScrollLeft, AttrScrollTop,
	} {
		v, err := parseLength(el.GetAttribute(name))
		if err != nil {
			return fmt.Errorf("%s on <%s id=%q>: %w", name, el.TagName(), el.ID(), err)
		}
		vals[i] = v
	}

	el.SetOffset(vals[0], vals[1])
	el.SetOffsetSize(vals[2], vals[3])
	el.SetScrollLeft(vals[4])
	el.SetScrollTop(vals[5])

	if id := el.GetAttribute(AttrOffsetParent); id != "" {
		parent, err := doc.LookupElementByID(id)
		if err != nil {
			return fmt.Errorf("%s on <%s id=%q>: %w", AttrOffsetParent, el.TagName(), el.ID(), err)
		}
		el.SetOffsetParent(parent)
		return nil
	}
	el.SetOffsetParent(css.OffsetParent(el))
	return nil
}

// parseLength parses "12", "12.5" or "12px". Empty is zero; non-finite
// values are rejected.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}
	return v, nil
}
