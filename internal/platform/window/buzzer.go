package window

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/tama/internal/platform/tone"
)

// Buzzer plays square-wave tones through Ebitengine's audio context. Like
// the piezo it is monophonic: a new tone cuts the previous one.
type Buzzer struct {
	ctx *audio.Context

	mu     sync.Mutex
	player *audio.Player
}

// NewBuzzer creates the audio context. Only one may exist per process.
func NewBuzzer() *Buzzer {
	return &Buzzer{ctx: audio.NewContext(tone.SampleRate)}
}

// Beep implements core.Buzzer.
func (b *Buzzer) Beep(frequencyHz, durationMs uint32) {
	pcm := tone.SquareWave(tone.SampleRate, frequencyHz, durationMs, tone.Volume)
	p := b.ctx.NewPlayerFromBytes(pcm)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player != nil {
		_ = b.player.Close()
	}
	b.player = p
	p.Play()
}
