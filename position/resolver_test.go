package position

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chrisuehlinger/plumbgeom/dom"
	"github.com/chrisuehlinger/plumbgeom/layout"
)

// newBox creates a detached element with the given offset and offset parent.
func newBox(doc *dom.Document, left, top float64, parent *dom.Element) *dom.Element {
	el := doc.CreateElement("div")
	el.SetOffset(left, top)
	el.SetOffsetParent(parent)
	return el
}

// chain builds container > mid > el, each the offset parent of the next:
//
//	container  offset (100, 50)
//	mid        offset (20, 30)
//	el         offset (5, 5)
func chain(t *testing.T) (container, mid, el *dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	container = newBox(doc, 100, 50, nil)
	mid = newBox(doc, 20, 30, container)
	el = newBox(doc, 5, 5, mid)
	container.AppendChild(mid)
	mid.AppendChild(el)
	return container, mid, el
}

func TestResolveScenarioSingleAncestor(t *testing.T) {
	doc := dom.NewDocument()
	ancestor := newBox(doc, 100, 50, nil)
	el := newBox(doc, 10, 5, ancestor)
	r := NewDOM(Options{})

	got := r.Resolve(el, true, ancestor)
	if got != (layout.Offset{Left: 110, Top: 55}) {
		t.Errorf("Expected {110 55} relative to root, got %v", got)
	}

	// A direct offset child of the container is already in its coordinate space.
	got = r.Resolve(el, false, ancestor)
	if got != (layout.Offset{Left: 10, Top: 5}) {
		t.Errorf("Expected {10 5} relative to container, got %v", got)
	}
}

func TestResolveSelfReference(t *testing.T) {
	container, _, el := chain(t)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, el); got != (layout.Offset{Left: 5, Top: 5}) {
		t.Errorf("Expected own offset {5 5}, got %v", got)
	}

	container.SetScrollTop(40)
	if got := r.Resolve(container, false, container); got != (layout.Offset{Left: 100, Top: 10}) {
		t.Errorf("Expected own offset less own scroll {100 10}, got %v", got)
	}
}

func TestResolveWithoutContainer(t *testing.T) {
	_, _, el := chain(t)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, nil); got != (layout.Offset{Left: 5, Top: 5}) {
		t.Errorf("Expected own offset {5 5} with no container, got %v", got)
	}
	if got := r.Resolve(el, true, nil); got != (layout.Offset{Left: 125, Top: 85}) {
		t.Errorf("Expected {125 85} relative to root, got %v", got)
	}
}

func TestResolveStopsAtContainer(t *testing.T) {
	container, mid, el := chain(t)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, container); got != (layout.Offset{Left: 25, Top: 35}) {
		t.Errorf("Expected {25 35}, got %v", got)
	}

	mid.SetScrollLeft(4)
	mid.SetScrollTop(6)
	if got := r.Resolve(el, false, container); got != (layout.Offset{Left: 21, Top: 29}) {
		t.Errorf("Expected intermediate scroll subtracted {21 29}, got %v", got)
	}
}

func TestResolveScrollCorrectionSign(t *testing.T) {
	doc := dom.NewDocument()
	ancestor := newBox(doc, 100, 50, nil)
	el := newBox(doc, 10, 5, ancestor)
	r := NewDOM(Options{})

	unscrolled := r.Resolve(el, true, nil)
	ancestor.SetScrollTop(20)
	scrolled := r.Resolve(el, true, nil)

	if scrolled.Top != unscrolled.Top-20 {
		t.Errorf("Expected top reduced by 20 (%v), got %v", unscrolled.Top-20, scrolled.Top)
	}
	if scrolled.Left != unscrolled.Left {
		t.Errorf("Expected left unchanged (%v), got %v", unscrolled.Left, scrolled.Left)
	}
}

func TestResolveContainerScrollAppliedOnce(t *testing.T) {
	container, _, el := chain(t)
	container.SetScrollTop(15)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, container); got != (layout.Offset{Left: 25, Top: 20}) {
		t.Errorf("Expected container scroll subtracted once {25 20}, got %v", got)
	}

	// relativeToRoot walks through the container instead, subtracting it
	// as an intermediate ancestor.
	if got := r.Resolve(el, true, container); got != (layout.Offset{Left: 125, Top: 70}) {
		t.Errorf("Expected {125 70} relative to root, got %v", got)
	}
}

func TestResolveDirectChildOfScrolledContainer(t *testing.T) {
	doc := dom.NewDocument()
	container := newBox(doc, 100, 50, nil)
	container.SetScrollLeft(3)
	container.SetScrollTop(15)
	el := newBox(doc, 5, 5, container)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, container); got != (layout.Offset{Left: 2, Top: -10}) {
		t.Errorf("Expected {2 -10}, got %v", got)
	}
}

func TestResolvePositionedElementsExemptFromContainerScroll(t *testing.T) {
	tests := []struct {
		name     string
		elStyle  string
		midStyle string
		want     layout.Offset
	}{
		{"static", "", "", layout.Offset{Left: 25, Top: 20}},
		{"relative", "position: relative", "", layout.Offset{Left: 25, Top: 20}},
		{"fixed element", "position: fixed", "", layout.Offset{Left: 25, Top: 35}},
		{"absolute element", "position: absolute", "", layout.Offset{Left: 25, Top: 35}},
		{"absolute offset parent", "", "position: absolute", layout.Offset{Left: 25, Top: 35}},
		{"fixed offset parent", "", "position: fixed", layout.Offset{Left: 25, Top: 35}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, mid, el := chain(t)
			container.SetScrollTop(15)
			if tt.elStyle != "" {
				el.SetAttribute("style", tt.elStyle)
			}
			if tt.midStyle != "" {
				mid.SetAttribute("style", tt.midStyle)
			}

			got := NewDOM(Options{}).Resolve(el, false, container)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveDeepOutOfFlowAncestorIsNotConsulted(t *testing.T) {
	// Only el and its immediate offset parent gate the container
	// correction; a fixed ancestor further up does not.
	doc := dom.NewDocument()
	container := newBox(doc, 0, 0, nil)
	container.SetScrollTop(10)
	outer := newBox(doc, 10, 10, container)
	outer.SetAttribute("style", "position: fixed")
	inner := newBox(doc, 10, 10, outer)
	el := newBox(doc, 1, 1, inner)

	got := NewDOM(Options{}).Resolve(el, false, container)
	if got != (layout.Offset{Left: 21, Top: 11}) {
		t.Errorf("Expected {21 11}, got %v", got)
	}
}

func TestResolveRootScrollIsExempt(t *testing.T) {
	doc := dom.NewDocument()
	body := doc.Body()
	body.SetScrollTop(100)
	el := newBox(doc, 10, 20, body)
	body.AppendChild(el)

	got := NewDOM(Options{}).Resolve(el, true, nil)
	if got != (layout.Offset{Left: 10, Top: 20}) {
		t.Errorf("Expected body scroll ignored {10 20}, got %v", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	container, mid, el := chain(t)
	container.SetScrollTop(15)
	mid.SetScrollLeft(2)
	r := NewDOM(Options{})

	first := r.Resolve(el, false, container)
	for i := 0; i < 5; i++ {
		if got := r.Resolve(el, false, container); got != first {
			t.Fatalf("call %d: expected %v, got %v", i, first, got)
		}
	}
}

func TestResolveNilElement(t *testing.T) {
	r := NewDOM(Options{})
	if got := r.Resolve(nil, true, nil); got != (layout.Offset{}) {
		t.Errorf("Expected zero offset, got %v", got)
	}
	if got := r.Size(nil); got != (layout.Size{}) {
		t.Errorf("Expected zero size, got %v", got)
	}
}

func TestResolveMaxDepthStopsCycles(t *testing.T) {
	doc := dom.NewDocument()
	a := newBox(doc, 1, 1, nil)
	b := newBox(doc, 10, 10, a)
	a.SetOffsetParent(b)

	core, logs := observer.New(zapcore.WarnLevel)
	r := NewDOM(Options{MaxDepth: 3, Logger: zap.New(core)})

	got := r.Resolve(a, true, nil)
	if got != (layout.Offset{Left: 22, Top: 22}) {
		t.Errorf("Expected {22 22} after three ancestors, got %v", got)
	}
	if logs.Len() != 1 {
		t.Errorf("Expected one warning, got %d", logs.Len())
	}
}

func TestResolveDefaultContainer(t *testing.T) {
	container, _, el := chain(t)
	r := NewDOM(Options{})
	r.SetContainer(container)

	if r.Container() != container {
		t.Error("Expected Container() to return the default container")
	}
	if got := r.ResolveDefault(el, false); got != (layout.Offset{Left: 25, Top: 35}) {
		t.Errorf("Expected {25 35}, got %v", got)
	}
}

func TestResolveZeroContainerUsesDefault(t *testing.T) {
	container, _, el := chain(t)
	r := NewDOM(Options{})

	if got := r.Resolve(el, false, nil); got != (layout.Offset{Left: 5, Top: 5}) {
		t.Errorf("Expected own offset {5 5} with no container at all, got %v", got)
	}

	r.SetContainer(container)
	want := r.ResolveDefault(el, false)
	if got := r.Resolve(el, false, nil); got != want {
		t.Errorf("Expected nil container to resolve like the default %v, got %v", want, got)
	}
	if want != (layout.Offset{Left: 25, Top: 35}) {
		t.Errorf("Expected {25 35}, got %v", want)
	}
}

func TestSize(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElement("div")
	el.SetOffsetSize(40, 30)

	got := NewDOM(Options{}).Size(el)
	if got != (layout.Size{Width: 40, Height: 30}) {
		t.Errorf("Expected {40 30}, got %v", got)
	}
}

// mapAdapter is a layout tree keyed by name, for exercising the resolver
// with a non-pointer element handle.
type mapAdapter struct {
	boxes   map[string]Box
	parents map[string]string
	styles  map[string]string
	root    string
}

func (m mapAdapter) Box(el string) Box                       { return m.boxes[el] }
func (m mapAdapter) OffsetParent(el string) string           { return m.parents[el] }
func (m mapAdapter) ComputedStyle(el, property string) string { return m.styles[el] }
func (m mapAdapter) IsRoot(el string) bool                   { return el == m.root }

func TestResolveWithCustomAdapter(t *testing.T) {
	m := mapAdapter{
		boxes: map[string]Box{
			"body":  {ScrollTop: 500},
			"panel": {OffsetLeft: 100, OffsetTop: 50, ScrollTop: 20},
			"node":  {OffsetLeft: 10, OffsetTop: 5, OffsetWidth: 80, OffsetHeight: 40},
		},
		parents: map[string]string{"node": "panel", "panel": "body"},
		styles:  map[string]string{},
		root:    "body",
	}
	r := New[string](m, Options{})

	if got := r.Resolve("node", true, ""); got != (layout.Offset{Left: 110, Top: 35}) {
		t.Errorf("Expected {110 35}, got %v", got)
	}
	if got := r.Resolve("node", false, "panel"); got != (layout.Offset{Left: 10, Top: -15}) {
		t.Errorf("Expected {10 -15}, got %v", got)
	}

	m.styles["node"] = "fixed"
	if got := r.Resolve("node", false, "panel"); got != (layout.Offset{Left: 10, Top: 5}) {
		t.Errorf("Expected fixed node exempt {10 5}, got %v", got)
	}
	if got := r.Size("node"); got != (layout.Size{Width: 80, Height: 40}) {
		t.Errorf("Expected {80 40}, got %v", got)
	}
}
