package screenshot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tama/internal/core"
)

func rgba8(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func testFrame() *core.Framebuffer {
	fb := core.NewFramebuffer(4, 3)
	fb.Fill(core.Blue)
	fb.SetPixel(1, 1, core.Red)
	return fb
}

func TestRenderScalesNearest(t *testing.T) {
	img := Render(testFrame(), Options{Scale: 3})
	require.Equal(t, 12, img.Bounds().Dx())
	require.Equal(t, 9, img.Bounds().Dy())

	red, blue := rgba8(core.Red), rgba8(core.Blue)
	for y := 3; y < 6; y++ {
		for x := 3; x < 6; x++ {
			assert.Equal(t, red, rgba8(img.At(x, y)), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, blue, rgba8(img.At(2, 3)))
	assert.Equal(t, blue, rgba8(img.At(6, 5)))
}

func TestRenderCaptionAddsBar(t *testing.T) {
	img := Render(testFrame(), Options{Scale: 10, Caption: "tick 3"})
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30+captionHeight, img.Bounds().Dy())
}

func TestEncodeAndSave(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testFrame(), Options{}))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "shots", "frame.png")
	require.NoError(t, Save(path, testFrame(), Options{Scale: 2}))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 6, cfg.Height)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "tama-flappy-000042-20240506-070809.png"), Filename("out", "flappy", 42, ts))
}
