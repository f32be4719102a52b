// Package css provides the small slice of CSS the geometry core needs:
// positioning keywords, computed-style lookup and color parsing.
package css

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA converts to the image/color representation (non-premultiplied).
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// NamedColors maps CSS color names to their RGBA values.
var NamedColors = map[string]Color{
	// Basic colors
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"silver":  {R: 192, G: 192, B: 192, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"maroon":  {R: 128, G: 0, B: 0, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"purple":  {R: 128, G: 0, B: 128, A: 255},
	"fuchsia": {R: 255, G: 0, B: 255, A: 255},
	"green":   {R: 0, G: 128, B: 0, A: 255},
	"lime":    {R: 0, G: 255, B: 0, A: 255},
	"olive":   {R: 128, G: 128, B: 0, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"navy":    {R: 0, G: 0, B: 128, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"teal":    {R: 0, G: 128, B: 128, A: 255},
	"aqua":    {R: 0, G: 255, B: 255, A: 255},

	// Extended colors commonly used for connector paint styles
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"steelblue": {R: 70, G: 130, B: 180, A: 255},
	"lightgray": {R: 211, G: 211, B: 211, A: 255},
	"darkgray":  {R: 169, G: 169, B: 169, A: 255},
	"tomato":    {R: 255, G: 99, B: 71, A: 255},

	"transparent": {R: 0, G: 0, B: 0, A: 0},
}

// ParseColor parses a CSS color string: a named color, #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb() or rgba().
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))

	if c, ok := NamedColors[s]; ok {
		return c, true
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHashColor(hex)
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunction(s)
	}

	return Color{}, false
}

// ColorToString converts a Color to a CSS color string.
func ColorToString(c Color) string {
	if c.A == 255 {
		return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
	}
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B) + hexByte(c.A)
}

func hexByte(b uint8) string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[b>>4], hex[b&0xf]})
}

func parseHashColor(hex string) (Color, bool) {
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, false
		}
	}
	d := func(i int) uint8 {
		v, _ := hexDigit(hex[i])
		return v
	}

	var r, g, b, a uint8 = 0, 0, 0, 255
	switch len(hex) {
	case 3, 4:
		r, g, b = d(0)*17, d(1)*17, d(2)*17
		if len(hex) == 4 {
			a = d(3) * 17
		}
	case 6, 8:
		r, g, b = d(0)*16+d(1), d(2)*16+d(3), d(4)*16+d(5)
		if len(hex) == 8 {
			a = d(6)*16 + d(7)
		}
	default:
		return Color{}, false
	}
	return Color{R: r, G: g, B: b, A: a}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// parseRGBFunction handles the comma-separated rgb()/rgba() forms.
// Channels may be integers or percentages; alpha is a number in [0, 1].
func parseRGBFunction(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	if open == -1 || !strings.HasSuffix(s, ")") {
		return Color{}, false
	}
	args := strings.Split(s[open+1:len(s)-1], ",")
	if len(args) != 3 && len(args) != 4 {
		return Color{}, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(strings.TrimSpace(args[i]))
		if !ok {
			return Color{}, false
		}
		ch[i] = v
	}

	alpha := uint8(255)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil {
			return Color{}, false
		}
		alpha = uint8(clamp(f, 0, 1)*255 + 0.5)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, true
}

func parseChannel(s string) (uint8, bool) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		return uint8(clamp(f, 0, 100)*255/100 + 0.5), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return uint8(clamp(f, 0, 255) + 0.5), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
