package core

// Buzzer is the platform tone generator: a piezo on the device, a square-wave
// audio stream or a log line on desktop.
// Beep must not block the caller for the duration of the tone.
type Buzzer interface {
	Beep(frequencyHz, durationMs uint32)
}

// BuzzerFunc adapts a function to the Buzzer interface.
type BuzzerFunc func(frequencyHz, durationMs uint32)

// Beep implements Buzzer.
func (f BuzzerFunc) Beep(frequencyHz, durationMs uint32) {
	f(frequencyHz, durationMs)
}

// NopBuzzer discards every tone.
type NopBuzzer struct{}

// Beep implements Buzzer.
func (NopBuzzer) Beep(uint32, uint32) {}

// Output groups the output devices a scene may drive.
type Output struct {
	buzzer Buzzer
}

// NewOutput creates an Output. A nil buzzer is replaced by NopBuzzer.
func NewOutput(b Buzzer) *Output {
	if b == nil {
		b = NopBuzzer{}
	}
	return &Output{buzzer: b}
}

// PlayTone starts a tone and returns immediately.
func (o *Output) PlayTone(frequencyHz, durationMs uint32) {
	if o == nil {
		return
	}
	o.buzzer.Beep(frequencyHz, durationMs)
}
