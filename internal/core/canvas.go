package core

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// pixelSetter is implemented by targets that can store RGB565 directly,
// skipping the color.Color conversion of draw.Image.Set.
type pixelSetter interface {
	SetPixel(x, y int, c Color)
}

// Canvas implements Surface on top of any draw.Image.
// Text is rendered with a fixed bitmap font; the default is 7x13.
type Canvas struct {
	dst    draw.Image
	fast   pixelSetter
	bounds image.Rectangle
	face   font.Face
	ascent int
	height int
}

var _ Surface = (*Canvas)(nil)

// NewCanvas wraps dst with the default font.
func NewCanvas(dst draw.Image) *Canvas {
	c := &Canvas{
		dst:    dst,
		bounds: dst.Bounds(),
	}
	if ps, ok := dst.(pixelSetter); ok {
		c.fast = ps
	}
	c.SetFace(basicfont.Face7x13)
	return c
}

// SetFace changes the font used by DrawText.
func (c *Canvas) SetFace(face font.Face) {
	m := face.Metrics()
	c.face = face
	c.ascent = m.Ascent.Ceil()
	c.height = m.Height.Ceil()
}

// Width implements Surface.
func (c *Canvas) Width() int {
	return c.bounds.Dx()
}

// Height implements Surface.
func (c *Canvas) Height() int {
	return c.bounds.Dy()
}

// Clear implements Surface.
func (c *Canvas) Clear(col Color) {
	if fb, ok := c.dst.(*Framebuffer); ok {
		fb.Fill(col)
		return
	}
	c.FillRect(NewRect(0, 0, c.Width(), c.Height()), col)
}

// SetPixel implements Surface.
func (c *Canvas) SetPixel(x, y int, col Color) {
	x += c.bounds.Min.X
	y += c.bounds.Min.Y
	if !(image.Point{X: x, Y: y}).In(c.bounds) {
		return
	}
	if c.fast != nil {
		c.fast.SetPixel(x, y, col)
		return
	}
	c.dst.Set(x, y, col)
}

// DrawLine implements Surface using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawRect implements Surface.
func (c *Canvas) DrawRect(r Rect, col Color) {
	if r.Empty() {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	c.DrawLine(r.X, r.Y, right, r.Y, col)
	c.DrawLine(r.X, bottom, right, bottom, col)
	c.DrawLine(r.X, r.Y, r.X, bottom, col)
	c.DrawLine(right, r.Y, right, bottom, col)
}

// FillRect implements Surface.
func (c *Canvas) FillRect(r Rect, col Color) {
	r = r.Intersect(NewRect(0, 0, c.Width(), c.Height()))
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.SetPixel(x, y, col)
		}
	}
}

// FillCircle implements Surface.
func (c *Canvas) FillCircle(cx, cy, radius int, col Color) {
	if radius < 0 {
		return
	}
	rr := float64(radius * radius)
	for dy := -radius; dy <= radius; dy++ {
		span := int(math.Sqrt(rr - float64(dy*dy)))
		for dx := -span; dx <= span; dx++ {
			c.SetPixel(cx+dx, cy+dy, col)
		}
	}
}

// DrawText implements Surface.
func (c *Canvas) DrawText(x, y int, text string, col Color) {
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(c.bounds.Min.X+x, c.bounds.Min.Y+y+c.ascent),
	}
	d.DrawString(text)
}

// TextWidth implements Surface.
func (c *Canvas) TextWidth(text string) int {
	return font.MeasureString(c.face, text).Ceil()
}

// LineHeight implements Surface.
func (c *Canvas) LineHeight() int {
	return c.height
}
