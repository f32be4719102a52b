package css

import (
	"sort"

	"github.com/chrisuehlinger/plumbgeom/dom"
)

// MatchedDeclaration is an author declaration that applies to an element,
// with the metadata used for cascade ordering.
type MatchedDeclaration struct {
	Declaration Declaration
	Specificity Specificity
	Order       int // Source order across all author sheets
}

// StyleResolver resolves author stylesheet declarations for elements.
// User-agent defaults and inline styles are layered on by GetComputedStyle.
type StyleResolver struct {
	authorSheets []*Stylesheet
}

// NewStyleResolver creates a new style resolver.
func NewStyleResolver() *StyleResolver {
	return &StyleResolver{}
}

// AddAuthorStylesheet adds an author stylesheet. Later sheets win ties.
func (sr *StyleResolver) AddAuthorStylesheet(ss *Stylesheet) {
	sr.authorSheets = append(sr.authorSheets, ss)
}

// collectMatchingDeclarations collects the declarations of property from
// every rule matching el, in source order.
func (sr *StyleResolver) collectMatchingDeclarations(el *dom.Element, property string) []MatchedDeclaration {
	var matched []MatchedDeclaration
	order := 0
	for _, ss := range sr.authorSheets {
		for _, rule := range ss.Rules {
			spec, ok := matchRuleToElement(&rule, el)
			if !ok {
				order += len(rule.Declarations)
				continue
			}
			for _, decl := range rule.Declarations {
				if decl.Property == property {
					matched = append(matched, MatchedDeclaration{
						Declaration: decl,
						Specificity: spec,
						Order:       order,
					})
				}
				order++
			}
		}
	}
	return matched
}

// matchRuleToElement reports whether rule matches el, with the specificity
// of the most specific matching selector in its list.
func matchRuleToElement(rule *Rule, el *dom.Element) (Specificity, bool) {
	var best Specificity
	matched := false
	for _, cs := range rule.Selector.ComplexSelectors {
		if !cs.MatchElement(el) {
			continue
		}
		if spec := cs.CalculateSpecificity(); !matched || best.Less(spec) {
			best = spec
		}
		matched = true
	}
	return best, matched
}

// sortByPrecedence sorts matched declarations from lowest to highest
// precedence: normal before important, then by specificity, then by
// source order.
func sortByPrecedence(decls []MatchedDeclaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		a, b := decls[i], decls[j]
		if a.Declaration.Important != b.Declaration.Important {
			return !a.Declaration.Important
		}
		if cmp := a.Specificity.Compare(b.Specificity); cmp != 0 {
			return cmp < 0
		}
		return a.Order < b.Order
	})
}

// CascadedValue returns the winning author declaration of property for
// el, if any rule declares it.
func (sr *StyleResolver) CascadedValue(el *dom.Element, property string) (Declaration, bool) {
	decls := sr.collectMatchingDeclarations(el, property)
	if len(decls) == 0 {
		return Declaration{}, false
	}
	sortByPrecedence(decls)
	return decls[len(decls)-1].Declaration, true
}

// documentResolver returns the resolver for the author sheets of el's
// document, parsing them on first use.
func documentResolver(el *dom.Element) *StyleResolver {
	doc := el.OwnerDocument()
	if doc == nil {
		return nil
	}
	sr, _ := doc.StyleState(func(sheets []string) any {
		sr := NewStyleResolver()
		for _, text := range sheets {
			sr.AddAuthorStylesheet(ParseStylesheet(text))
		}
		return sr
	}).(*StyleResolver)
	return sr
}
