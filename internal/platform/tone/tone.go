// Package tone synthesizes the buzzer's square wave for the desktop
// simulators.
package tone

import "encoding/binary"

// SampleRate is the PCM rate used by the desktop buzzers.
const SampleRate = 44100

// Volume is the default amplitude as a fraction of full scale.
const Volume = 0.2

// BytesPerFrame is one 16-bit stereo frame.
const BytesPerFrame = 4

// SquareWave returns signed 16-bit little-endian stereo PCM for a tone of
// frequencyHz lasting durationMs. A zero frequency is a rest.
func SquareWave(sampleRate int, frequencyHz, durationMs uint32, volume float64) []byte {
	frames := int(uint64(sampleRate) * uint64(durationMs) / 1000)
	buf := make([]byte, frames*BytesPerFrame)
	if frequencyHz == 0 || volume <= 0 {
		return buf
	}

	amp := int16(min(volume, 1) * 32767)
	period := float64(sampleRate) / float64(frequencyHz)
	for i := range frames {
		v := amp
		if float64(i%int(max(period, 1)))*2 >= period {
			v = -amp
		}
		off := i * BytesPerFrame
		binary.LittleEndian.PutUint16(buf[off:], uint16(v))
		binary.LittleEndian.PutUint16(buf[off+2:], uint16(v))
	}
	return buf
}
