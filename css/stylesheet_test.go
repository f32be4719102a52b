package css

import "testing"

func TestParseStylesheet(t *testing.T) {
	ss := ParseStylesheet(`
		/* layout */
		@import url("base.css");
		#canvas, .frame { position: relative; overflow: hidden }
		@media print { .frame { position: static } }
		.pin { position: absolute !important; content: "a;b{c}" }
		:hover { position: fixed }
		div > p { display: block; }
	`)

	if len(ss.Rules) != 3 {
		t.Fatalf("Expected 3 rules, got %d: %+v", len(ss.Rules), ss.Rules)
	}

	first := ss.Rules[0]
	if first.SelectorText != "#canvas, .frame" {
		t.Errorf("Expected selector text '#canvas, .frame', got %q", first.SelectorText)
	}
	if len(first.Selector.ComplexSelectors) != 2 {
		t.Errorf("Expected a selector list of 2, got %d", len(first.Selector.ComplexSelectors))
	}
	if len(first.Declarations) != 2 || first.Declarations[1] != (Declaration{Property: "overflow", Value: "hidden"}) {
		t.Errorf("Expected position and overflow declarations, got %+v", first.Declarations)
	}

	pin := ss.Rules[1]
	if len(pin.Declarations) != 2 {
		t.Fatalf("Expected 2 declarations in .pin, got %+v", pin.Declarations)
	}
	if d := pin.Declarations[0]; d.Property != "position" || d.Value != "absolute" || !d.Important {
		t.Errorf("Expected important absolute position, got %+v", d)
	}
	if d := pin.Declarations[1]; d.Value != `"a;b{c}"` {
		t.Errorf("Expected quoted value kept intact, got %q", d.Value)
	}

	if ss.Rules[2].SelectorText != "div > p" {
		t.Errorf("Expected 'div > p' after the dropped rule, got %q", ss.Rules[2].SelectorText)
	}
}

func TestParseStylesheetUnterminated(t *testing.T) {
	ss := ParseStylesheet(`#a { position: fixed`)
	if len(ss.Rules) != 1 || len(ss.Rules[0].Declarations) != 1 {
		t.Fatalf("Expected an unterminated block to still yield its declaration, got %+v", ss.Rules)
	}
	if ss := ParseStylesheet("/* only a comment"); len(ss.Rules) != 0 {
		t.Errorf("Expected no rules, got %+v", ss.Rules)
	}
}

func TestParseDeclarations(t *testing.T) {
	decls := ParseDeclarations(`Position : Fixed ; ; color:; width: calc(1px; 2px); top: 1px ! IMPORTANT`)
	want := []Declaration{
		{Property: "position", Value: "Fixed"},
		{Property: "width", Value: "calc(1px; 2px)"},
		{Property: "top", Value: "1px", Important: true},
	}
	if len(decls) != len(want) {
		t.Fatalf("Expected %d declarations, got %+v", len(want), decls)
	}
	for i := range want {
		if decls[i] != want[i] {
			t.Errorf("Declaration %d: expected %+v, got %+v", i, want[i], decls[i])
		}
	}
}
