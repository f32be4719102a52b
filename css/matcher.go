package css

import (
	"slices"
	"strings"

	"github.com/chrisuehlinger/plumbgeom/dom"
)

// MatchElement tests if any selector in the list matches an element.
func (s *CSSSelector) MatchElement(el *dom.Element) bool {
	for _, cs := range s.ComplexSelectors {
		if cs.MatchElement(el) {
			return true
		}
	}
	return false
}

// MatchElement tests if a complex selector matches an element, working
// right to left from the subject compound.
func (cs *ComplexSelector) MatchElement(el *dom.Element) bool {
	if len(cs.Compounds) == 0 {
		return false
	}

	i := len(cs.Compounds) - 1
	currentEl := el
	if !cs.Compounds[i].MatchElement(currentEl) {
		return false
	}

	for i > 0 {
		combinator := cs.Compounds[i-1].Combinator
		i--

		switch combinator {
		case CombinatorDescendant:
			matched := false
			for ancestor := currentEl.ParentElement(); ancestor != nil; ancestor = ancestor.ParentElement() {
				if cs.Compounds[i].MatchElement(ancestor) {
					currentEl = ancestor
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		case CombinatorChild:
			parent := currentEl.ParentElement()
			if parent == nil || !cs.Compounds[i].MatchElement(parent) {
				return false
			}
			currentEl = parent

		case CombinatorNextSibling:
			prev := previousElementSibling(currentEl)
			if prev == nil || !cs.Compounds[i].MatchElement(prev) {
				return false
			}
			currentEl = prev

		case CombinatorSubsequentSibling:
			matched := false
			for prev := previousElementSibling(currentEl); prev != nil; prev = previousElementSibling(prev) {
				if cs.Compounds[i].MatchElement(prev) {
					currentEl = prev
					matched = true
					break
				}
			}
			if !matched {
				return false
			}

		default:
			return false
		}
	}

	return true
}

// MatchElement tests if a compound selector matches an element.
func (c *CompoundSelector) MatchElement(el *dom.Element) bool {
	if c.TypeSelector != "" && c.TypeSelector != "*" && el.TagName() != c.TypeSelector {
		return false
	}

	for _, id := range c.IDSelectors {
		if el.ID() != id {
			return false
		}
	}

	if len(c.ClassSelectors) > 0 {
		classes := strings.Fields(el.GetAttribute("class"))
		for _, class := range c.ClassSelectors {
			if !slices.Contains(classes, class) {
				return false
			}
		}
	}

	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, el) {
			return false
		}
	}

	for _, pc := range c.PseudoClasses {
		if !matchPseudoClass(pc, el) {
			return false
		}
	}
	return true
}

func matchAttributeSelector(attr *AttributeMatcher, el *dom.Element) bool {
	if !el.HasAttribute(attr.Name) {
		return false
	}
	if attr.Operator == AttrExists {
		return true
	}

	attrValue := el.GetAttribute(attr.Name)
	matchValue := attr.Value
	if attr.CaseInsensitive {
		attrValue = strings.ToLower(attrValue)
		matchValue = strings.ToLower(matchValue)
	}

	switch attr.Operator {
	case AttrEquals:
		return attrValue == matchValue
	case AttrIncludes:
		return slices.Contains(strings.Fields(attrValue), matchValue)
	case AttrDashMatch:
		return attrValue == matchValue || strings.HasPrefix(attrValue, matchValue+"-")
	case AttrPrefix:
		return matchValue != "" && strings.HasPrefix(attrValue, matchValue)
	case AttrSuffix:
		return matchValue != "" && strings.HasSuffix(attrValue, matchValue)
	case AttrSubstring:
		return matchValue != "" && strings.Contains(attrValue, matchValue)
	}
	return false
}

func matchPseudoClass(name string, el *dom.Element) bool {
	switch name {
	case "root":
		doc := el.OwnerDocument()
		return doc != nil && doc.DocumentElement() == el
	case "first-child":
		return el.ParentElement() != nil && previousElementSibling(el) == nil
	case "last-child":
		return el.ParentElement() != nil && nextElementSibling(el) == nil
	case "only-child":
		return el.ParentElement() != nil && previousElementSibling(el) == nil && nextElementSibling(el) == nil
	case "empty":
		return len(el.Children()) == 0
	}
	return false
}

func previousElementSibling(el *dom.Element) *dom.Element {
	parent := el.ParentElement()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	if i := slices.Index(siblings, el); i > 0 {
		return siblings[i-1]
	}
	return nil
}

func nextElementSibling(el *dom.Element) *dom.Element {
	parent := el.ParentElement()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	if i := slices.Index(siblings, el); i >= 0 && i+1 < len(siblings) {
		return siblings[i+1]
	}
	return nil
}
