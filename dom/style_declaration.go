package dom

import (
	"strings"
)

// CSSStyleDeclaration is an element's inline style, kept in sync with its
// style attribute. Only the declarations themselves are modelled; values
// are not validated.
type CSSStyleDeclaration struct {
	element      *Element
	declarations []declaration
}

type declaration struct {
	property  string
	value     string
	important bool
}

// NewCSSStyleDeclaration creates the declaration block for element,
// parsed from its current style attribute.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{element: element}
	sd.RefreshFromAttribute()
	return sd
}

func (sd *CSSStyleDeclaration) index(property string) int {
	for i, d := range sd.declarations {
		if d.property == property {
			return i
		}
	}
	return -1
}

// Len returns the number of declarations.
func (sd *CSSStyleDeclaration) Len() int {
	return len(sd.declarations)
}

// GetPropertyValue returns the declared value of property, or "".
// Property names may be camelCase ("strokeWidth").
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if i := sd.index(normalizeCSSPropertyName(property)); i >= 0 {
		return sd.declarations[i].value
	}
	return ""
}

// Important reports whether property was declared !important.
func (sd *CSSStyleDeclaration) Important(property string) bool {
	i := sd.index(normalizeCSSPropertyName(property))
	return i >= 0 && sd.declarations[i].important
}

// SetProperty sets property to value, keeping its place in the block. An
// empty value removes the property.
func (sd *CSSStyleDeclaration) SetProperty(property, value string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	if value == "" {
		sd.RemoveProperty(property)
		return
	}
	if i := sd.index(property); i >= 0 {
		sd.declarations[i] = declaration{property: property, value: value}
	} else {
		sd.declarations = append(sd.declarations, declaration{property: property, value: value})
	}
	sd.syncToAttribute()
}

// RemoveProperty removes property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	i := sd.index(normalizeCSSPropertyName(property))
	if i < 0 {
		return ""
	}
	old := sd.declarations[i].value
	sd.declarations = append(sd.declarations[:i], sd.declarations[i+1:]...)
	sd.syncToAttribute()
	return old
}

// String serialises the block as a style attribute value.
func (sd *CSSStyleDeclaration) String() string {
	parts := make([]string, 0, len(sd.declarations))
	for _, d := range sd.declarations {
		part := d.property + ": " + d.value
		if d.important {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// RefreshFromAttribute re-parses the element's style attribute. Later
// declarations of the same property win.
func (sd *CSSStyleDeclaration) RefreshFromAttribute() {
	sd.declarations = nil
	if sd.element == nil || !sd.element.HasAttribute("style") {
		return
	}
	for _, part := range strings.Split(sd.element.GetAttribute("style"), ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		d := declaration{
			property: normalizeCSSPropertyName(strings.TrimSpace(property)),
			value:    strings.TrimSpace(value),
		}
		if bang := strings.LastIndex(d.value, "!"); bang >= 0 &&
			strings.EqualFold(strings.TrimSpace(d.value[bang+1:]), "important") {
			d.important = true
			d.value = strings.TrimSpace(d.value[:bang])
		}
		if d.property == "" || d.value == "" {
			continue
		}
		if i := sd.index(d.property); i >= 0 {
			sd.declarations[i] = d
		} else {
			sd.declarations = append(sd.declarations, d)
		}
	}
}

// syncToAttribute writes the block back without re-parsing it.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	if len(sd.declarations) == 0 {
		sd.element.removeAttributeValue("style")
		return
	}
	sd.element.setAttributeValue("style", sd.String())
}

// normalizeCSSPropertyName lowercases name and turns camelCase into
// kebab-case: "strokeWidth" -> "stroke-width".
func normalizeCSSPropertyName(name string) string {
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
