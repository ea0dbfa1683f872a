package core

// Surface is the drawing capability the engine hands to scenes.
// Simulator windows, the terminal renderer and the hardware display driver all
// provide it; scenes never learn which one they are drawing on.
type Surface interface {
	Width() int
	Height() int

	// Clear fills the whole surface.
	Clear(c Color)

	// SetPixel plots one pixel. Out-of-bounds coordinates are ignored.
	SetPixel(x, y int, c Color)

	// DrawLine draws a one pixel wide line between both end points inclusive.
	DrawLine(x0, y0, x1, y1 int, c Color)

	// DrawRect draws a one pixel outline of r.
	DrawRect(r Rect, c Color)

	// FillRect fills r, clipped to the surface.
	FillRect(r Rect, c Color)

	// FillCircle fills a circle of the given radius centred on (cx, cy).
	FillCircle(cx, cy, radius int, c Color)

	// DrawText draws a single line of text with its top-left corner at (x, y).
	DrawText(x, y int, text string, c Color)

	// TextWidth returns the width in pixels DrawText would use for text.
	TextWidth(text string) int

	// LineHeight returns the distance in pixels between two lines of text.
	LineHeight() int
}

// DrawTextCentered draws text centred horizontally on dst at row y.
func DrawTextCentered(dst Surface, y int, text string, c Color) {
	x := (dst.Width() - dst.TextWidth(text)) / 2
	dst.DrawText(x, y, text, c)
}
