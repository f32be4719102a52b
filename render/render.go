// Package render paints element boxes and computed endpoints onto a canvas.
// Shapes are built as display lists and executed in order; curved outlines
// are rasterised with golang.org/x/image/vector.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/chrisuehlinger/plumbgeom/css"
	"github.com/chrisuehlinger/plumbgeom/endpoint"
	"github.com/chrisuehlinger/plumbgeom/layout"
)

// DefaultEndpointFill is painted when an endpoint style has no fill.
const DefaultEndpointFill = "#456"

// Canvas represents the rendering surface.
type Canvas struct {
	Pixels []color.RGBA
	Width  int
	Height int
}

// NewCanvas creates a white canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		Pixels: make([]color.RGBA, width*height),
		Width:  width,
		Height: height,
	}
	c.ClearToWhite()
	return c
}

// DisplayCommand represents a single painting operation.
type DisplayCommand interface {
	Execute(c *Canvas)
}

// BoxCommand outlines an element box.
type BoxCommand struct {
	Color color.RGBA
	Rect  layout.Rect
	Width float64
}

// Execute paints the four edges of the box.
func (cmd *BoxCommand) Execute(c *Canvas) {
	w := int(math.Max(1, math.Round(cmd.Width)))
	x, y := int(math.Round(cmd.Rect.X)), int(math.Round(cmd.Rect.Y))
	rw, rh := int(math.Round(cmd.Rect.Width)), int(math.Round(cmd.Rect.Height))

	c.FillRect(x, y, rw, w, cmd.Color)
	c.FillRect(x, y+rh-w, rw, w, cmd.Color)
	c.FillRect(x, y, w, rh, cmd.Color)
	c.FillRect(x+rw-w, y, w, rh, cmd.Color)
}

// DotCommand paints a Dot endpoint: a filled disc of the unstroked radius
// and, when stroked, a ring of the stroke width outside it.
type DotCommand struct {
	Dot    endpoint.ComputedDot
	Fill   color.RGBA
	Stroke color.RGBA
	Line   float64
}

// Execute paints the disc and its ring.
func (cmd *DotCommand) Execute(c *Canvas) {
	center := cmd.Dot.Center()
	cx, cy := float32(center.X), float32(center.Y)
	r := float32(cmd.Dot.Radius)

	c.fillPath(cmd.Fill, func(z *vector.Rasterizer) {
		addCircle(z, cx, cy, r, false)
	})
	if cmd.Line > 0 {
		c.fillPath(cmd.Stroke, func(z *vector.Rasterizer) {
			addCircle(z, cx, cy, r+float32(cmd.Line), false)
			addCircle(z, cx, cy, r, true)
		})
	}
}

// BoundsCommand fills the bounding box of an endpoint whose shape the
// canvas does not know.
type BoundsCommand struct {
	Geometry endpoint.Geometry
	Color    color.RGBA
}

// Execute fills the geometry bounds.
func (cmd *BoundsCommand) Execute(c *Canvas) {
	b := cmd.Geometry.Bounds()
	c.FillRect(int(math.Round(b.LLx)), int(math.Round(b.LLy)),
		int(math.Round(b.URx-b.LLx)), int(math.Round(b.URy-b.LLy)), cmd.Color)
}

// Box is an element outline in a Scene.
type Box struct {
	Rect  layout.Rect
	Color string
}

// Endpoint is a computed endpoint in a Scene.
type Endpoint struct {
	Geometry endpoint.Geometry
	Style    endpoint.PaintStyle
}

// Scene is everything painted for one fixture: boxes first, endpoints on top.
type Scene struct {
	Boxes     []Box
	Endpoints []Endpoint
}

// Bounds returns the smallest origin-anchored size that contains the scene.
func (s Scene) Bounds() (width, height int) {
	var w, h float64
	for _, b := range s.Boxes {
		w = math.Max(w, b.Rect.X+b.Rect.Width)
		h = math.Max(h, b.Rect.Y+b.Rect.Height)
	}
	for _, e := range s.Endpoints {
		bb := e.Geometry.Bounds()
		w = math.Max(w, bb.URx)
		h = math.Max(h, bb.URy)
	}
	return int(math.Ceil(w)) + 1, int(math.Ceil(h)) + 1
}

// Paint renders the scene onto the canvas.
func (c *Canvas) Paint(scene Scene) {
	for _, cmd := range BuildDisplayList(scene) {
		cmd.Execute(c)
	}
}

// BuildDisplayList converts a scene into painting commands.
func BuildDisplayList(scene Scene) []DisplayCommand {
	list := make([]DisplayCommand, 0, len(scene.Boxes)+len(scene.Endpoints))
	for _, b := range scene.Boxes {
		list = append(list, &BoxCommand{Color: parseColor(b.Color, "#999"), Rect: b.Rect, Width: 1})
	}
	for _, e := range scene.Endpoints {
		fill := parseColor(e.Style.Fill, DefaultEndpointFill)
		switch g := e.Geometry.(type) {
		case endpoint.ComputedDot:
			list = append(list, &DotCommand{
				Dot:    g,
				Fill:   fill,
				Stroke: parseColor(e.Style.Stroke, "black"),
				Line:   e.Style.LineWidth(),
			})
		default:
			list = append(list, &BoundsCommand{Geometry: g, Color: fill})
		}
	}
	return list
}

func parseColor(value, fallback string) color.RGBA {
	col, ok := css.ParseColor(value)
	if !ok {
		col, _ = css.ParseColor(fallback)
	}
	n := col.RGBA()
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// fillPath rasterises the path added by build and composites col through
// the resulting coverage mask.
func (c *Canvas) fillPath(col color.RGBA, build func(z *vector.Rasterizer)) {
	if c.Width == 0 || c.Height == 0 || col.A == 0 {
		return
	}
	z := vector.NewRasterizer(c.Width, c.Height)
	build(z)

	mask := image.NewAlpha(image.Rect(0, 0, c.Width, c.Height))
	z.Draw(mask, mask.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

	for y := 0; y < c.Height; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < c.Width; x++ {
			cov := row[x]
			if cov == 0 {
				continue
			}
			src := col
			src.A = uint8(math.Round(float64(col.A) * float64(cov) / 255))
			c.SetPixelBlend(x, y, src)
		}
	}
}

// addCircle adds a circle to z using four cubic Bézier arcs. Rings are
// made from two circles of opposite winding.
func addCircle(z *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	z.MoveTo(cx, cy-radius)
	if clockwise {
		z.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		z.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		z.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		z.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		z.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	z.ClosePath()
}

// SetPixel sets a single pixel on the canvas.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.Pixels[y*c.Width+x] = col
	}
}

// SetPixelBlend sets a pixel with source-over compositing.
func (c *Canvas) SetPixelBlend(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}

	idx := y*c.Width + x
	dst := c.Pixels[idx]

	srcA := float64(col.A) / 255.0
	dstA := float64(dst.A) / 255.0
	outA := srcA + dstA*(1-srcA)

	if outA == 0 {
		c.Pixels[idx] = color.RGBA{}
		return
	}

	blend := func(s, d uint8) uint8 {
		return uint8(math.Round((float64(s)*srcA + float64(d)*dstA*(1-srcA)) / outA))
	}
	c.Pixels[idx] = color.RGBA{
		R: blend(col.R, dst.R),
		G: blend(col.G, dst.G),
		B: blend(col.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// FillRect fills a rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, width, height int, col color.RGBA) {
	x1, y1 := max(x, 0), max(y, 0)
	x2, y2 := min(x+width, c.Width), min(y+height, c.Height)

	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			if col.A < 255 {
				c.SetPixelBlend(px, py, col)
			} else {
				c.Pixels[py*c.Width+px] = col
			}
		}
	}
}

// GetPixel returns the color at (x, y), or transparent outside the canvas.
func (c *Canvas) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// Clear clears the canvas to the given color.
func (c *Canvas) Clear(col color.RGBA) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// ClearToWhite clears the canvas to white.
func (c *Canvas) ClearToWhite() {
	c.Clear(color.RGBA{255, 255, 255, 255})
}

// ToImage converts the canvas to a Go image.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.ToImage()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
