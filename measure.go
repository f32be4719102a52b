package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/rect"

	"github.com/chrisuehlinger/plumbgeom/anchor"
	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/html"
	"github.com/chrisuehlinger/plumbgeom/js"
	"github.com/chrisuehlinger/plumbgeom/layout"
	"github.com/chrisuehlinger/plumbgeom/network"
	"github.com/chrisuehlinger/plumbgeom/position"
	"github.com/chrisuehlinger/plumbgeom/render"
)

// attrAnchor marks fixture elements that get an endpoint in rendered
// scenes; its value is the anchor name.
const attrAnchor = "data-anchor"

// config is the command-line configuration.
type config struct {
	Fixture        string
	Element        string
	Container      string
	RelativeToRoot bool
	Endpoint       string
	Radius         float64
	Anchor         string
	Style          endpoint.PaintStyle
	PNG            string
	Script         string
}

func (c config) params() endpoint.Params {
	p := endpoint.Params{}
	if c.Radius != 0 {
		p["radius"] = c.Radius
	}
	return p
}

type anchorReport struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	OX   float64 `json:"ox"`
	OY   float64 `json:"oy"`
}

type endpointReport struct {
	Type   string    `json:"type"`
	Tuple  []float64 `json:"tuple"`
	Bounds rect.Rect `json:"bounds"`
}

// report is what the command prints for one element.
type report struct {
	Element  string         `json:"element"`
	Offset   layout.Offset  `json:"offset"`
	Size     layout.Size    `json:"size"`
	Anchor   anchorReport   `json:"anchor"`
	Endpoint endpointReport `json:"endpoint"`
}

// measure resolves el and places the configured endpoint on it. The
// anchor is computed in the same frame as the offset.
func measure[E comparable](r *position.Resolver[E], el, container E, cfg config, registry *endpoint.Registry) (report, error) {
	a, ok := anchor.Lookup(cfg.Anchor)
	if !ok {
		return report{}, fmt.Errorf("unknown anchor %q (want one of %s)", cfg.Anchor, strings.Join(anchor.Names(), ", "))
	}
	rep, err := registry.New(cfg.Endpoint, cfg.params())
	if err != nil {
		return report{}, err
	}

	offset := r.Resolve(el, cfg.RelativeToRoot, container)
	size := r.Size(el)
	pos := a.Compute(offset, size)
	g := rep.Compute(pos, cfg.Style)

	return report{
		Element: cfg.Element,
		Offset:  offset,
		Size:    size,
		Anchor: anchorReport{
			Name: cfg.Anchor,
			X:    pos.Point.X,
			Y:    pos.Point.Y,
			OX:   pos.Orientation.X,
			OY:   pos.Orientation.Y,
		},
		Endpoint: endpointReport{Type: rep.Type(), Tuple: g.Tuple(), Bounds: g.Bounds()},
	}, nil
}

// loadFixture reads a fixture from a path or an http(s) URL.
func loadFixture(source string) (*html.Fixture, error) {
	return network.LoadFixture(context.Background(), nil, source)
}

// lookupContainer returns nil for an empty id.
func lookupContainer(doc *dom.Document, id string) (*dom.Element, error) {
	if id == "" {
		return nil, nil
	}
	return doc.LookupElementByID(id)
}

// runScript runs the script file at path with the plumb API bound to doc.
func runScript(path string, doc *dom.Document, resolver *position.Resolver[*dom.Element], logger *zap.Logger) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rt := js.NewRuntime(logger)
	rt.BindPlumb(doc, resolver, nil)
	return rt.ExecuteScript(string(code), path)
}

// sceneFor places an endpoint on the configured element and on every
// element carrying a data-anchor attribute.
func sceneFor(cfg config, doc *dom.Document, resolver *position.Resolver[*dom.Element], registry *endpoint.Registry) (render.Scene, error) {
	var attachments []render.Attachment
	attach := func(el *dom.Element, anchorName string) error {
		a, ok := anchor.Lookup(anchorName)
		if !ok {
			return fmt.Errorf("unknown anchor %q on #%s", anchorName, el.ID())
		}
		rep, err := registry.New(cfg.Endpoint, cfg.params())
		if err != nil {
			return err
		}
		attachments = append(attachments, render.Attachment{
			Element:        el,
			Anchor:         a,
			Representation: rep,
			Style:          cfg.Style,
		})
		return nil
	}

	for _, el := range doc.Elements() {
		if name := el.GetAttribute(attrAnchor); name != "" {
			if err := attach(el, name); err != nil {
				return render.Scene{}, err
			}
		}
	}
	if cfg.Element != "" {
		el, err := doc.LookupElementByID(cfg.Element)
		if err != nil {
			return render.Scene{}, err
		}
		if err := attach(el, cfg.Anchor); err != nil {
			return render.Scene{}, err
		}
	}
	return render.BuildScene(doc, resolver, attachments), nil
}

// buildScene loads the fixture and builds its scene.
func buildScene(cfg config, logger *zap.Logger) (render.Scene, error) {
	fixture, err := loadFixture(cfg.Fixture)
	if err != nil {
		return render.Scene{}, err
	}
	return sceneFor(cfg, fixture.Document, position.NewDOM(position.Options{Logger: logger}), endpoint.Default)
}

func writePNG(cfg config, doc *dom.Document, resolver *position.Resolver[*dom.Element]) error {
	scene, err := sceneFor(cfg, doc, resolver, endpoint.Default)
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(scene.Bounds())
	canvas.Paint(scene)

	f, err := os.Create(cfg.PNG)
	if err != nil {
		return err
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
