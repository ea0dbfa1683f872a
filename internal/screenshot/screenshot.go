// Package screenshot exports display frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/vovakirdan/tama/internal/core"
)

// captionHeight is the height of the optional caption bar in pixels.
const captionHeight = 18

// Options controls how a frame is exported.
type Options struct {
	Scale   int    // Integer pixel scale, 1 when zero
	Caption string // Drawn in a bar under the frame when set
}

// Render returns the frame scaled with nearest-neighbour sampling, so pixel
// art stays sharp.
func Render(fb *core.Framebuffer, opts Options) image.Image {
	scale := max(opts.Scale, 1)
	w, h := fb.Width()*scale, fb.Height()*scale

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), fb, fb.Bounds(), xdraw.Src, nil)
	if opts.Caption == "" {
		return scaled
	}

	dc := gg.NewContext(w, h+captionHeight)
	dc.DrawImage(scaled, 0, 0)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawRectangle(0, float64(h), float64(w), captionHeight)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(opts.Caption, 4, float64(h)+captionHeight/2, 0, 0.5)
	return dc.Image()
}

// Encode writes the frame as PNG.
func Encode(w io.Writer, fb *core.Framebuffer, opts Options) error {
	dc := gg.NewContextForImage(Render(fb, opts))
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("screenshot: encode: %w", err)
	}
	return nil
}

// Save writes the frame to path as PNG, creating parent directories.
func Save(path string, fb *core.Framebuffer, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("screenshot: cannot create directory: %w", err)
	}
	dc := gg.NewContextForImage(Render(fb, opts))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("screenshot: save %s: %w", path, err)
	}
	return nil
}

// Filename builds a file name like dir/tama-flappy-000123-20060102-150405.png.
func Filename(dir, sceneName string, tick uint64, now time.Time) string {
	name := fmt.Sprintf("tama-%s-%06d-%s.png", sceneName, tick, now.Format("20060102-150405"))
	return filepath.Join(dir, name)
}
