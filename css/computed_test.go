package css

import (
	"testing"

	"github.com/chrisuehlinger/plumbgeom/dom"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input string
		want  Position
	}{
		{"static", PositionStatic},
		{"relative", PositionRelative},
		{"ABSOLUTE", PositionAbsolute},
		{" fixed ", PositionFixed},
		{"sticky", PositionSticky},
		{"", PositionStatic},
		{"bogus", PositionStatic},
	}

	for _, tt := range tests {
		if got := ParsePosition(tt.input); got != tt.want {
			t.Errorf("ParsePosition(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPositionOutOfFlow(t *testing.T) {
	for p, want := range map[Position]bool{
		PositionStatic:   false,
		PositionRelative: false,
		PositionSticky:   false,
		PositionAbsolute: true,
		PositionFixed:    true,
	} {
		if got := p.OutOfFlow(); got != want {
			t.Errorf("%v.OutOfFlow() = %v, want %v", p, got, want)
		}
	}
}

func TestGetComputedStyle(t *testing.T) {
	doc := dom.NewDocument()
	parent := doc.CreateElement("div")
	parent.SetAttribute("style", "position: fixed")
	child := doc.CreateElement("span")
	parent.AppendChild(child)

	if got := GetComputedStyle(child, "position"); got != "static" {
		t.Errorf("Expected initial position 'static', got %q", got)
	}
	if got := GetComputedStyle(parent, "Position"); got != "fixed" {
		t.Errorf("Expected 'fixed', got %q", got)
	}

	child.SetAttribute("style", "position: inherit")
	if got := ComputedPosition(child); got != PositionFixed {
		t.Errorf("Expected inherited fixed, got %v", got)
	}

	child.SetAttribute("style", "position: initial")
	if got := ComputedPosition(child); got != PositionStatic {
		t.Errorf("Expected initial static, got %v", got)
	}

	child.SetAttribute("style", "position: nonsense")
	if got := ComputedPosition(child); got != PositionStatic {
		t.Errorf("Expected invalid keyword to compute to static, got %v", got)
	}

	if got := GetComputedStyle(parent, "display"); got != "block" {
		t.Errorf("Expected UA display 'block' for div, got %q", got)
	}
	if got := GetComputedStyle(child, "display"); got != "inline" {
		t.Errorf("Expected initial display 'inline' for span, got %q", got)
	}
	if got := GetComputedStyle(nil, "position"); got != "" {
		t.Errorf("Expected empty value for nil element, got %q", got)
	}
}

func TestOffsetParent(t *testing.T) {
	doc := dom.NewDocument()
	body := doc.Body()

	outer := doc.CreateElement("div")
	body.AppendChild(outer)
	positioned := doc.CreateElement("div")
	positioned.SetAttribute("style", "position: relative")
	outer.AppendChild(positioned)
	static := doc.CreateElement("div")
	positioned.AppendChild(static)
	leaf := doc.CreateElement("span")
	static.AppendChild(leaf)
	fixed := doc.CreateElement("div")
	fixed.SetAttribute("style", "position: fixed")
	static.AppendChild(fixed)

	tests := []struct {
		name string
		el   *dom.Element
		want *dom.Element
	}{
		{"html", doc.DocumentElement(), nil},
		{"body", body, nil},
		{"child of body", outer, body},
		{"static ancestors skipped", positioned, body},
		{"nearest positioned ancestor", leaf, positioned},
		{"fixed has none", fixed, nil},
		{"detached", doc.CreateElement("div"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		if got := OffsetParent(tt.el); got != tt.want {
			t.Errorf("%s: OffsetParent = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGetComputedStyleAuthorRules(t *testing.T) {
	doc, canvas, first, span, last := matchTree(t)
	doc.AddStyleSheet(`
		p { position: relative }
		#canvas p.last { position: fixed }
		p.last { position: absolute }
		.frame { position: sticky }
		span { position: absolute !important; display: block }
	`)
	doc.AddStyleSheet(`div { position: relative }`)

	tests := []struct {
		name string
		el   *dom.Element
		want Position
	}{
		{"type rule", first, PositionRelative},
		{"higher specificity wins over later rule", last, PositionFixed},
		{"class beats later type rule in another sheet", canvas, PositionSticky},
		{"body untouched", doc.Body(), PositionStatic},
	}
	for _, tt := range tests {
		if got := ComputedPosition(tt.el); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}

	first.SetAttribute("style", "position: static")
	if got := ComputedPosition(first); got != PositionStatic {
		t.Errorf("Expected inline style to beat a normal rule, got %v", got)
	}
	span.SetAttribute("style", "position: relative")
	if got := ComputedPosition(span); got != PositionAbsolute {
		t.Errorf("Expected important rule to beat normal inline style, got %v", got)
	}
	span.SetAttribute("style", "position: relative !important")
	if got := ComputedPosition(span); got != PositionRelative {
		t.Errorf("Expected important inline style to win, got %v", got)
	}
	if got := GetComputedStyle(span, "display"); got != "block" {
		t.Errorf("Expected display from the rule, got %q", got)
	}

	doc.AddStyleSheet(`#canvas { position: inherit }`)
	if got := ComputedPosition(canvas); got != PositionStatic {
		t.Errorf("Expected inherit from the static body, got %v", got)
	}
}

func TestOffsetParentFromStylesheet(t *testing.T) {
	doc, canvas, first, _, _ := matchTree(t)
	if got := OffsetParent(first); got != doc.Body() {
		t.Fatalf("Expected body before any sheet, got %v", got)
	}
	doc.AddStyleSheet(`.frame { position: relative }`)
	if got := OffsetParent(first); got != canvas {
		t.Errorf("Expected canvas positioned by its rule, got %v", got)
	}
}
