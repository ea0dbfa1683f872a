package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tama/internal/core"
)

// halfBlock shows the upper pixel as foreground and the lower as background.
const halfBlock = "▀"

// maxDownscale bounds FitDownscale for tiny terminals.
const maxDownscale = 16

type cellColors struct {
	top, bottom core.Color
}

// FrameRenderer converts framebuffers to styled text, two pixel rows per
// terminal row. Styles are cached per color pair.
type FrameRenderer struct {
	lg     *lipgloss.Renderer
	styles map[cellColors]lipgloss.Style
}

// NewFrameRenderer creates a renderer. A nil lipgloss renderer means the
// default one, which writes to stdout.
func NewFrameRenderer(r *lipgloss.Renderer) *FrameRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &FrameRenderer{
		lg:     r,
		styles: make(map[cellColors]lipgloss.Style),
	}
}

// FrameSize returns the text size of a frame at the given downscale.
func FrameSize(width, height, downscale int) (cols, rows int) {
	k := max(downscale, 1)
	cols = (width + k - 1) / k
	rows = (height + 2*k - 1) / (2 * k)
	return cols, rows
}

// FitDownscale returns the smallest downscale at which a width x height
// frame fits in cols x rows terminal cells.
func FitDownscale(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return maxDownscale
	}
	for k := 1; k < maxDownscale; k++ {
		c, r := FrameSize(width, height, k)
		if c <= cols && r <= rows {
			return k
		}
	}
	return maxDownscale
}

// Render draws fb, sampling every downscale-th pixel.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *FrameRenderer) Render(fb *core.Framebuffer, downscale int) string {
	k := max(downscale, 1)
	cols, rows := FrameSize(fb.Width(), fb.Height(), k)

	var sb strings.Builder
	sb.Grow(cols*rows*4 + rows)

	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		yTop := row * 2 * k
		yBottom := yTop + k

		x := 0
		for x < cols {
			start := r.cell(fb, x*k, yTop, yBottom)
			n := 1
			for x+n < cols && r.cell(fb, (x+n)*k, yTop, yBottom) == start {
				n++
			}
			sb.WriteString(r.style(start).Render(strings.Repeat(halfBlock, n)))
			x += n
		}
	}
	return sb.String()
}

func (r *FrameRenderer) cell(fb *core.Framebuffer, x, yTop, yBottom int) cellColors {
	c := cellColors{top: fb.Pixel(x, yTop), bottom: core.Black}
	if yBottom < fb.Height() {
		c.bottom = fb.Pixel(x, yBottom)
	}
	return c
}

func (r *FrameRenderer) style(c cellColors) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	s := r.lg.NewStyle().Foreground(hexColor(c.top)).Background(hexColor(c.bottom))
	r.styles[c] = s
	return s
}

func hexColor(c core.Color) lipgloss.Color {
	red, green, blue := c.RGB8()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", red, green, blue))
}
