package css

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector reports selector text this package cannot parse.
// A rule whose selector is invalid is dropped as a whole.
var ErrInvalidSelector = errors.New("invalid selector")

// CSSSelector is a selector list; it matches when any of its complex
// selectors does.
type CSSSelector struct {
	ComplexSelectors []*ComplexSelector
}

// ComplexSelector is a sequence of compound selectors joined by combinators.
type ComplexSelector struct {
	Compounds []*CompoundSelector
}

// CompoundSelector is a sequence of simple selectors with no combinator.
type CompoundSelector struct {
	TypeSelector      string // "" or "*" for any element
	IDSelectors       []string
	ClassSelectors    []string
	AttributeMatchers []*AttributeMatcher
	PseudoClasses     []string
	Combinator        CombinatorType // Combinator following this compound selector
}

// CombinatorType represents the type of combinator between compound selectors.
type CombinatorType int

const (
	CombinatorNone              CombinatorType = iota
	CombinatorDescendant                       // (whitespace)
	CombinatorChild                            // >
	CombinatorNextSibling                      // +
	CombinatorSubsequentSibling                // ~
)

// AttributeMatcher represents an attribute selector.
type AttributeMatcher struct {
	Name            string
	Operator        AttributeOperator
	Value           string
	CaseInsensitive bool
}

// AttributeOperator represents the matching operator for attribute selectors.
type AttributeOperator int

const (
	AttrExists    AttributeOperator = iota // [attr]
	AttrEquals                             // [attr=value]
	AttrIncludes                           // [attr~=value]
	AttrDashMatch                          // [attr|=value]
	AttrPrefix                             // [attr^=value]
	AttrSuffix                             // [attr$=value]
	AttrSubstring                          // [attr*=value]
)

var attrOperators = map[byte]AttributeOperator{
	'~': AttrIncludes,
	'|': AttrDashMatch,
	'^': AttrPrefix,
	'$': AttrSuffix,
	'*': AttrSubstring,
}

// structuralPseudoClasses are the pseudo-classes a static layout tree can
// answer. Anything else makes the selector invalid.
var structuralPseudoClasses = map[string]bool{
	"root":        true,
	"first-child": true,
	"last-child":  true,
	"only-child":  true,
	"empty":       true,
}

type selectorParser struct {
	input string
	pos   int
}

// ParseSelector parses a selector list such as "#canvas > .node, svg".
func ParseSelector(input string) (*CSSSelector, error) {
	p := &selectorParser{input: strings.TrimSpace(input)}
	return p.parseSelector()
}

func (p *selectorParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *selectorParser) current() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *selectorParser) skipWhitespace() bool {
	start := p.pos
	for !p.eof() && isSpace(p.current()) {
		p.pos++
	}
	return p.pos > start
}

func (p *selectorParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrInvalidSelector, fmt.Sprintf(format, args...), p.pos, p.input)
}

func (p *selectorParser) parseSelector() (*CSSSelector, error) {
	sel := &CSSSelector{}
	for {
		p.skipWhitespace()
		cs, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		sel.ComplexSelectors = append(sel.ComplexSelectors, cs)

		p.skipWhitespace()
		if p.eof() {
			return sel, nil
		}
		if p.current() != ',' {
			return nil, p.errorf("unexpected %q", p.current())
		}
		p.pos++
	}
}

func (p *selectorParser) parseComplexSelector() (*ComplexSelector, error) {
	cs := &ComplexSelector{}
	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		cs.Compounds = append(cs.Compounds, compound)

		sawSpace := p.skipWhitespace()
		if p.eof() || p.current() == ',' {
			return cs, nil
		}
		switch p.current() {
		case '>':
			compound.Combinator = CombinatorChild
			p.pos++
		case '+':
			compound.Combinator = CombinatorNextSibling
			p.pos++
		case '~':
			compound.Combinator = CombinatorSubsequentSibling
			p.pos++
		default:
			if !sawSpace {
				return nil, p.errorf("unexpected %q", p.current())
			}
			compound.Combinator = CombinatorDescendant
		}
		p.skipWhitespace()
	}
}

func (p *selectorParser) parseCompoundSelector() (*CompoundSelector, error) {
	c := &CompoundSelector{}
	start := p.pos

	if p.current() == '*' {
		c.TypeSelector = "*"
		p.pos++
	} else if isNameChar(p.current()) {
		c.TypeSelector = strings.ToLower(p.parseName())
	}

loop:
	for !p.eof() {
		switch p.current() {
		case '#':
			p.pos++
			name := p.parseName()
			if name == "" {
				return nil, p.errorf("expected id after '#'")
			}
			c.IDSelectors = append(c.IDSelectors, name)
		case '.':
			p.pos++
			name := p.parseName()
			if name == "" {
				return nil, p.errorf("expected class name after '.'")
			}
			c.ClassSelectors = append(c.ClassSelectors, name)
		case '[':
			attr, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			c.AttributeMatchers = append(c.AttributeMatchers, attr)
		case ':':
			p.pos++
			name := strings.ToLower(p.parseName())
			if !structuralPseudoClasses[name] || p.current() == '(' {
				return nil, p.errorf("unsupported pseudo-class %q", name)
			}
			c.PseudoClasses = append(c.PseudoClasses, name)
		default:
			break loop
		}
	}

	if p.pos == start {
		return nil, p.errorf("expected a selector")
	}
	return c, nil
}

func (p *selectorParser) parseAttributeSelector() (*AttributeMatcher, error) {
	p.pos++ // [
	p.skipWhitespace()
	attr := &AttributeMatcher{Name: strings.ToLower(p.parseName())}
	if attr.Name == "" {
		return nil, p.errorf("expected attribute name")
	}
	p.skipWhitespace()

	if p.current() == ']' {
		p.pos++
		return attr, nil
	}

	switch c := p.current(); {
	case c == '=':
		attr.Operator = AttrEquals
		p.pos++
	case attrOperators[c] != AttrExists && p.pos+1 < len(p.input) && p.input[p.pos+1] == '=':
		attr.Operator = attrOperators[c]
		p.pos += 2
	default:
		return nil, p.errorf("unexpected %q in attribute selector", c)
	}
	p.skipWhitespace()

	switch q := p.current(); q {
	case '"', '\'':
		end := strings.IndexByte(p.input[p.pos+1:], q)
		if end < 0 {
			return nil, p.errorf("unterminated string")
		}
		attr.Value = p.input[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
	default:
		attr.Value = p.parseName()
		if attr.Value == "" {
			return nil, p.errorf("expected attribute value")
		}
	}
	p.skipWhitespace()

	switch p.current() {
	case 'i', 'I':
		attr.CaseInsensitive = true
		p.pos++
	case 's', 'S':
		p.pos++
	}
	p.skipWhitespace()

	if p.current() != ']' {
		return nil, p.errorf("expected ']'")
	}
	p.pos++
	return attr, nil
}

// parseName consumes an identifier, honoring backslash escapes.
func (p *selectorParser) parseName() string {
	var b strings.Builder
	for !p.eof() {
		c := p.current()
		switch {
		case c == '\\' && p.pos+1 < len(p.input):
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case isNameChar(c):
			b.WriteByte(c)
			p.pos++
		default:
			return b.String()
		}
	}
	return b.String()
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Specificity represents CSS selector specificity.
type Specificity struct {
	A int // ID selectors
	B int // Class selectors, attribute selectors, pseudo-classes
	C int // Type selectors
}

// Compare compares two specificities. Returns -1, 0, or 1.
func (s Specificity) Compare(other Specificity) int {
	if s.A != other.A {
		if s.A > other.A {
			return 1
		}
		return -1
	}
	if s.B != other.B {
		if s.B > other.B {
			return 1
		}
		return -1
	}
	if s.C != other.C {
		if s.C > other.C {
			return 1
		}
		return -1
	}
	return 0
}

// Less returns true if this specificity is less than the other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// CalculateSpecificity calculates the specificity of a complex selector.
func (cs *ComplexSelector) CalculateSpecificity() Specificity {
	var spec Specificity
	for _, compound := range cs.Compounds {
		spec.A += len(compound.IDSelectors)
		spec.B += len(compound.ClassSelectors)
		spec.B += len(compound.AttributeMatchers)
		spec.B += len(compound.PseudoClasses)
		if compound.TypeSelector != "" && compound.TypeSelector != "*" {
			spec.C++
		}
	}
	return spec
}
