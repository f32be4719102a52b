package css

import "strings"

// Stylesheet is a parsed author stylesheet: its style rules in source
// order. At-rules are skipped.
type Stylesheet struct {
	Rules []Rule
}

// Rule is a style rule: a selector list and its declaration block.
type Rule struct {
	SelectorText string
	Selector     *CSSSelector
	Declarations []Declaration
}

// Declaration is one property: value pair of a rule.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Parser parses stylesheet text.
type Parser struct {
	input string
	pos   int
}

// NewParser creates a parser over input.
func NewParser(input string) *Parser {
	return &Parser{input: stripComments(input)}
}

// Parse parses the whole input. Parsing never fails: rules with an
// invalid selector, and declarations without a colon, are dropped.
func (p *Parser) Parse() *Stylesheet {
	ss := &Stylesheet{}
	for {
		p.skipWhitespace()
		if p.pos >= len(p.input) {
			return ss
		}

		if p.input[p.pos] == '@' {
			p.skipAtRule()
			continue
		}

		open := p.indexOutsideStrings(p.pos, '{')
		if open < 0 {
			return ss
		}
		prelude := strings.TrimSpace(p.input[p.pos:open])
		end := p.matchingBrace(open)
		body := p.input[open+1 : end]
		p.pos = min(end+1, len(p.input))

		sel, err := ParseSelector(prelude)
		if err != nil {
			continue
		}
		ss.Rules = append(ss.Rules, Rule{
			SelectorText: prelude,
			Selector:     sel,
			Declarations: ParseDeclarations(body),
		})
	}
}

// ParseStylesheet is NewParser(input).Parse().
func ParseStylesheet(input string) *Stylesheet {
	return NewParser(input).Parse()
}

// ParseDeclarations parses a declaration block body. Property names are
// lowercased; a trailing "!important" sets Important.
func ParseDeclarations(body string) []Declaration {
	var decls []Declaration
	for _, part := range splitOutsideStrings(body, ';') {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		d := Declaration{
			Property: strings.ToLower(strings.TrimSpace(property)),
			Value:    strings.TrimSpace(value),
		}
		if bang := strings.LastIndex(d.Value, "!"); bang >= 0 &&
			strings.EqualFold(strings.TrimSpace(d.Value[bang+1:]), "important") {
			d.Important = true
			d.Value = strings.TrimSpace(d.Value[:bang])
		}
		if d.Property == "" || d.Value == "" {
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

// skipAtRule skips a statement at-rule up to its ';' or a block at-rule
// through its closing brace.
func (p *Parser) skipAtRule() {
	semi := p.indexOutsideStrings(p.pos, ';')
	open := p.indexOutsideStrings(p.pos, '{')
	switch {
	case open >= 0 && (semi < 0 || open < semi):
		p.pos = min(p.matchingBrace(open)+1, len(p.input))
	case semi >= 0:
		p.pos = semi + 1
	default:
		p.pos = len(p.input)
	}
}

// indexOutsideStrings returns the index of the first c at or after from
// that is not inside a quoted string, or -1.
func (p *Parser) indexOutsideStrings(from int, c byte) int {
	var quote byte
	for i := from; i < len(p.input); i++ {
		switch ch := p.input[i]; {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == c:
			return i
		}
	}
	return -1
}

// matchingBrace returns the index of the '}' closing the block opened at
// open, or len(input) for an unterminated block.
func (p *Parser) matchingBrace(open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(p.input); i++ {
		switch ch := p.input[i]; {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(p.input)
}

func splitOutsideStrings(s string, sep byte) []string {
	var parts []string
	var quote byte
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			depth++
		case ch == ')':
			if depth > 0 {
				depth--
			}
		case ch == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		b.WriteByte(' ')
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}
