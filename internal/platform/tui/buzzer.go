package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// LogBuzzer stands in for the piezo in a terminal: each tone is logged and
// the last one is shown in the side panel.
type LogBuzzer struct {
	logger *log.Logger

	mu    sync.Mutex
	last  string
	count int
}

// NewLogBuzzer creates a buzzer logging to logger.
func NewLogBuzzer(logger *log.Logger) *LogBuzzer {
	return &LogBuzzer{logger: logger}
}

// Beep implements core.Buzzer.
func (b *LogBuzzer) Beep(frequencyHz, durationMs uint32) {
	if b.logger != nil {
		b.logger.Debug("beep", "hz", frequencyHz, "ms", durationMs)
	}
	b.mu.Lock()
	b.last = fmt.Sprintf("%d Hz %d ms", frequencyHz, durationMs)
	b.count++
	b.mu.Unlock()
}

// Last returns a description of the last tone and the number of tones so far.
func (b *LogBuzzer) Last() (string, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.count
}
