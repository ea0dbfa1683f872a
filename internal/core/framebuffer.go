package core

import (
	"image"
	"image/color"
)

// Framebuffer is an in-memory RGB565 pixel buffer laid out row by row, the
// same layout the display driver streams to the panel.
// It implements draw.Image; wrap it in a Canvas to get a Surface.
type Framebuffer struct {
	width  int
	height int
	pix    []Color
}

// NewFramebuffer creates a black framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pixel returns the pixel at (x, y), or Black outside the buffer.
func (f *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Black
	}
	return f.pix[y*f.width+x]
}

// SetPixel stores a pixel. Out-of-bounds coordinates are silently ignored.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c
}

// Fill sets every pixel to c.
func (f *Framebuffer) Fill(c Color) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

// Pix returns the underlying pixel slice. Callers must not retain it across
// frames if the framebuffer may be drawn to concurrently.
func (f *Framebuffer) Pix() []Color {
	return f.pix
}

// AppendRGBA appends the frame as 8-bit RGBA bytes, the layout expected by
// ebiten.Image.WritePixels and SDL streaming textures.
func (f *Framebuffer) AppendRGBA(dst []byte) []byte {
	for _, c := range f.pix {
		r, g, b := c.RGB8()
		dst = append(dst, r, g, b, 0xFF)
	}
	return dst
}

// Equal reports whether two framebuffers hold the same pixels.
func (f *Framebuffer) Equal(other *Framebuffer) bool {
	if f.width != other.width || f.height != other.height {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, y)
}

// Set implements draw.Image.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, ColorModel.Convert(c).(Color))
}
