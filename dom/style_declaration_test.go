package dom

import (
	"testing"
)

func TestCSSStyleDeclarationSetProperty(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	if sd.Len() != 0 {
		t.Errorf("Expected empty declaration, got %d", sd.Len())
	}

	sd.SetProperty("position", "absolute")
	sd.SetProperty("top", "4px")
	sd.SetProperty("position", "fixed")

	if sd.GetPropertyValue("position") != "fixed" {
		t.Errorf("Expected position 'fixed', got %q", sd.GetPropertyValue("position"))
	}
	if el.GetAttribute("style") != "position: fixed; top: 4px" {
		t.Errorf("Expected style attribute 'position: fixed; top: 4px', got %q", el.GetAttribute("style"))
	}
}

func TestCSSStyleDeclarationCamelCase(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	sd.SetProperty("strokeWidth", "2")

	if sd.GetPropertyValue("stroke-width") != "2" {
		t.Errorf("Expected stroke-width '2', got %q", sd.GetPropertyValue("stroke-width"))
	}
	if sd.String() != "stroke-width: 2" {
		t.Errorf("Expected 'stroke-width: 2', got %q", sd.String())
	}
}

func TestCSSStyleDeclarationRemoveProperty(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	sd.SetProperty("position", "fixed")
	sd.SetProperty("width", "100px")

	if old := sd.RemoveProperty("position"); old != "fixed" {
		t.Errorf("Expected old value 'fixed', got %q", old)
	}
	if sd.Len() != 1 {
		t.Errorf("Expected 1 declaration, got %d", sd.Len())
	}

	sd.SetProperty("width", "")
	if el.HasAttribute("style") {
		t.Errorf("Expected style attribute removed, got %q", el.GetAttribute("style"))
	}
}

func TestCSSStyleDeclarationImportant(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	el.SetAttribute("style", "position: relative ! important; top: 3px; position: absolute !important")

	sd := el.Style()
	if sd.GetPropertyValue("position") != "absolute" {
		t.Errorf("Expected the later position to win, got %q", sd.GetPropertyValue("position"))
	}
	if !sd.Important("position") || sd.Important("top") {
		t.Error("Expected only position to be important")
	}
	if sd.String() != "position: absolute !important; top: 3px" {
		t.Errorf("Unexpected serialisation %q", sd.String())
	}
}

func TestCSSStyleDeclarationAttributeRefresh(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")
	sd := el.Style()

	el.SetAttribute("style", "position: absolute")
	if sd.GetPropertyValue("position") != "absolute" {
		t.Errorf("Expected position 'absolute' after SetAttribute, got %q", sd.GetPropertyValue("position"))
	}

	el.RemoveAttribute("style")
	if sd.Len() != 0 {
		t.Errorf("Expected no declarations after RemoveAttribute, got %d", sd.Len())
	}
}

func TestNormalizeCSSPropertyName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"position", "position"},
		{"scrollTop", "scroll-top"},
		{"stroke-width", "stroke-width"},
		{"Position", "position"},
		{"", ""},
	}

	for _, tc := range tests {
		if result := normalizeCSSPropertyName(tc.input); result != tc.expected {
			t.Errorf("normalizeCSSPropertyName(%q) = %q, expected %q", tc.input, result, tc.expected)
		}
	}
}
