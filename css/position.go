package css

import "strings"

// Position is a value of the CSS position property.
type Position string

const (
	PositionStatic   Position = "static"
	PositionRelative Position = "relative"
	PositionAbsolute Position = "absolute"
	PositionFixed    Position = "fixed"
	PositionSticky   Position = "sticky"
)

// ParsePosition maps a position keyword to a Position. Unknown or empty
// values yield PositionStatic, the initial value.
func ParsePosition(s string) Position {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case PositionRelative, PositionAbsolute, PositionFixed, PositionSticky:
		return p
	}
	return PositionStatic
}

// OutOfFlow reports whether the element is taken out of normal flow and
// positioned against an ancestor or the viewport (absolute or fixed).
// Such elements are not shifted by the scroll of an ancestor container.
func (p Position) OutOfFlow() bool {
	return p == PositionAbsolute || p == PositionFixed
}
