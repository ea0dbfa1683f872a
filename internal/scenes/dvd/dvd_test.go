package dvd

import (
	"testing"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/input"
	"github.com/vovakirdan/tama/internal/scene"
)

func TestBallStaysOnScreen(t *testing.T) {
	s := New(240, 280, config.DvdConfig{Radius: 64, Speed: 1})
	for i := 0; i < 2000; i++ {
		s.Update(input.Snapshot{}, 0)
		x, y := s.Position()
		if x < 64 || x > 240-64 || y < 64 || y > 280-64 {
			t.Fatalf("tick %d: ball centre (%d, %d) left the playfield", i, x, y)
		}
	}
	if s.Bounces() == 0 {
		t.Error("ball never bounced")
	}
}

func TestFirstStep(t *testing.T) {
	s := New(240, 280, config.DvdConfig{Radius: 64, Speed: 1})
	s.Update(input.Snapshot{}, 0)
	if x, y := s.Position(); x != 121 || y != 139 {
		t.Errorf("Position() = (%d, %d), want (121, 139)", x, y)
	}
}

func TestBackPops(t *testing.T) {
	s := New(240, 280, config.DvdConfig{Radius: 10, Speed: 2})
	if tr := s.Update(input.SnapshotOf(input.Pressed(input.B)), 0); tr.Kind != scene.Pop {
		t.Errorf("transition = %v, want pop", tr)
	}
}

func TestRadiusClampedToScreen(t *testing.T) {
	s := New(40, 40, config.DvdConfig{Radius: 64})
	fb := core.NewFramebuffer(40, 40)
	s.Render(core.NewCanvas(fb))
	if fb.Pixel(20, 20) != core.Red {
		t.Errorf("centre pixel = %#04x, want red", uint16(fb.Pixel(20, 20)))
	}
	if fb.Pixel(0, 0) != core.White {
		t.Error("corner should be background")
	}
}
