package tui

import (
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tama/internal/core"
)

func TestFrameSize(t *testing.T) {
	tests := []struct {
		w, h, k    int
		cols, rows int
	}{
		{240, 280, 1, 240, 140},
		{240, 280, 2, 120, 70},
		{240, 280, 3, 80, 47},
		{5, 5, 1, 5, 3},
		{5, 5, 0, 5, 3},
	}
	for _, tt := range tests {
		cols, rows := FrameSize(tt.w, tt.h, tt.k)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("FrameSize(%d, %d, %d) = %d, %d; want %d, %d",
				tt.w, tt.h, tt.k, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestFitDownscale(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		want       int
	}{
		{"huge terminal", 300, 200, 1},
		{"half", 130, 75, 2},
		{"classic 80x24", 80, 24, 6},
		{"unknown size", 0, 0, maxDownscale},
		{"tiny", 4, 2, maxDownscale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitDownscale(240, 280, tt.cols, tt.rows); got != tt.want {
				t.Errorf("FitDownscale() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderDimensions(t *testing.T) {
	fb := core.NewFramebuffer(240, 280)
	fb.Fill(core.Blue)
	fb.SetPixel(0, 0, core.Red)

	r := NewFrameRenderer(lipgloss.NewRenderer(io.Discard))
	out := r.Render(fb, 2)

	lines := strings.Split(out, "\n")
	if len(lines) != 70 {
		t.Fatalf("expected 70 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 120 {
			t.Fatalf("row %d has %d cells, want 120", i, n)
		}
	}
}

func TestRenderCachesStylesPerColorPair(t *testing.T) {
	fb := core.NewFramebuffer(4, 4)
	fb.Fill(core.White)
	fb.SetPixel(1, 1, core.Red)

	r := NewFrameRenderer(lipgloss.NewRenderer(io.Discard))
	r.Render(fb, 1)

	// white/white everywhere except the cell holding (1, 1): white over red
	if len(r.styles) != 2 {
		t.Errorf("expected 2 cached styles, got %d", len(r.styles))
	}
	if _, ok := r.styles[cellColors{top: core.White, bottom: core.Red}]; !ok {
		t.Error("missing white over red style")
	}
}

func TestRenderOddHeightPadsWithBlack(t *testing.T) {
	fb := core.NewFramebuffer(2, 3)
	fb.Fill(core.Green)

	r := NewFrameRenderer(lipgloss.NewRenderer(io.Discard))
	out := r.Render(fb, 1)

	if rows := strings.Count(out, "\n") + 1; rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}
	if _, ok := r.styles[cellColors{top: core.Green, bottom: core.Black}]; !ok {
		t.Error("last row should have a black lower half")
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(core.White); got != lipgloss.Color("#ffffff") {
		t.Errorf("hexColor(White) = %q", got)
	}
	if got := hexColor(core.Black); got != lipgloss.Color("#000000") {
		t.Errorf("hexColor(Black) = %q", got)
	}
}
