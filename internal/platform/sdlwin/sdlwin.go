//go:build sdl

package sdlwin

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vovakirdan/tama/internal/platform/keys"
	"github.com/vovakirdan/tama/internal/platform/tone"
	"github.com/vovakirdan/tama/internal/sim"
)

// Options configures the window.
type Options struct {
	Keymap *keys.Keymap // keys.DefaultKeymap() when nil
	Scale  int
	Title  string
}

// Buzzer queues square-wave tones on an SDL audio device.
type Buzzer struct {
	dev sdl.AudioDeviceID
}

// OpenBuzzer opens the default audio device. SDL must be initialized with
// audio support.
func OpenBuzzer() (*Buzzer, error) {
	spec := sdl.AudioSpec{
		Freq:     tone.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, &spec, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("sdlwin: cannot open audio: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)
	return &Buzzer{dev: dev}, nil
}

// Beep implements core.Buzzer. A new tone replaces the queued one.
func (b *Buzzer) Beep(frequencyHz, durationMs uint32) {
	sdl.ClearQueuedAudio(b.dev)
	_ = sdl.QueueAudio(b.dev, tone.SquareWave(tone.SampleRate, frequencyHz, durationMs, tone.Volume))
}

// Close releases the audio device.
func (b *Buzzer) Close() {
	sdl.CloseAudioDevice(b.dev)
}

// Init starts SDL video and audio. Call Quit when done.
func Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("sdlwin: cannot init SDL: %w", err)
	}
	return nil
}

// Quit shuts SDL down.
func Quit() { sdl.Quit() }

// keyName maps an SDL key event to its keymap name.
func keyName(e *sdl.KeyboardEvent) string {
	return keys.Normalize(sdl.GetKeyName(e.Keysym.Sym))
}

// Run opens a window and drives s until the window is closed, a quit key is
// pressed or the engine halts. Updates run on a fixed schedule; when the
// loop falls behind it catches up on updates and renders once.
func Run(s *sim.Session, opts Options) error {
	if opts.Keymap == nil {
		opts.Keymap = keys.DefaultKeymap()
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Title == "" {
		opts.Title = "tama"
	}

	fb := s.Framebuffer
	w, h := int32(fb.Width()), int32(fb.Height())

	window, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		w*int32(opts.Scale), h*int32(opts.Scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("sdlwin: cannot create window: %w", err)
	}
	defer window.Destroy()

	r, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("sdlwin: cannot create renderer: %w", err)
	}
	defer r.Destroy()

	tex, err := r.CreateTexture(sdl.PIXELFORMAT_RGB565, sdl.TEXTUREACCESS_STREAMING, w, h)
	if err != nil {
		return fmt.Errorf("sdlwin: cannot create texture: %w", err)
	}
	defer tex.Destroy()

	tracker := keys.NewTracker(opts.Keymap)
	eng := s.Engine
	dt := eng.DT()
	next := time.Now()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Repeat != 0 {
					continue
				}
				name := keyName(e)
				if e.Type == sdl.KEYDOWN {
					ctrl := uint16(e.Keysym.Mod)&uint16(sdl.KMOD_CTRL) != 0
					if opts.Keymap.IsQuit(name) || (ctrl && opts.Keymap.IsQuit("ctrl+"+name)) {
						return nil
					}
					tracker.KeyDown(name)
				} else {
					tracker.KeyUp(name)
				}
			}
		}

		for now := time.Now(); !now.Before(next); next = next.Add(dt) {
			if err := eng.Tick(tracker.Drain()); err != nil {
				s.Env.Log().Error("engine halted", "err", err)
				return err
			}
		}

		pix := s.Frame().Pix()
		if err := tex.Update(nil, unsafe.Pointer(&pix[0]), int(w)*2); err != nil {
			return fmt.Errorf("sdlwin: cannot update texture: %w", err)
		}
		if err := r.Copy(tex, nil, nil); err != nil {
			return fmt.Errorf("sdlwin: cannot copy texture: %w", err)
		}
		r.Present()

		if wait := time.Until(next); wait > 0 {
			sdl.Delay(uint32(wait.Milliseconds()))
		}
	}
}
