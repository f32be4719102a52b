package css

import (
	"strings"

	"github.com/chrisuehlinger/plumbgeom/dom"
)

// initialValues holds the initial value of the properties this package
// knows about. None of them inherit.
var initialValues = map[string]string{
	"position": string(PositionStatic),
	"overflow": "visible",
	"display":  "inline",
}

// userAgentDefaults are per-tag values from the user-agent stylesheet.
var userAgentDefaults = map[string]map[string]string{
	"display": {
		"html": "block",
		"body": "block",
		"div":  "block",
		"p":    "block",
		"svg":  "inline",
	},
}

// GetComputedStyle returns the computed value of property for el: the
// cascaded value from the inline style and the document's author
// stylesheets if any, else the user-agent default for the tag, else the
// initial value. Inline declarations beat author rules unless only the
// author rule is !important. "inherit" resolves against the tree parent
// and "initial" against the initial value. It returns "" for a nil
// element or an unknown property with no declaration.
func GetComputedStyle(el *dom.Element, property string) string {
	if el == nil {
		return ""
	}
	property = strings.ToLower(property)

	value, important := "", false
	if el.HasAttribute("style") {
		value = el.Style().GetPropertyValue(property)
		important = el.Style().Important(property)
	}
	if sr := documentResolver(el); sr != nil {
		if decl, ok := sr.CascadedValue(el, property); ok && (value == "" || decl.Important && !important) {
			value = decl.Value
		}
	}
	switch strings.ToLower(value) {
	case "":
	case "inherit":
		if parent := el.ParentElement(); parent != nil {
			return GetComputedStyle(parent, property)
		}
		return initialValues[property]
	case "initial", "unset":
		return initialValues[property]
	default:
		if property == "position" {
			return string(ParsePosition(value))
		}
		return value
	}

	if byTag, ok := userAgentDefaults[property]; ok {
		if v, ok := byTag[el.TagName()]; ok {
			return v
		}
	}
	return initialValues[property]
}

// ComputedPosition is GetComputedStyle for the position property.
func ComputedPosition(el *dom.Element) Position {
	return ParsePosition(GetComputedStyle(el, "position"))
}
