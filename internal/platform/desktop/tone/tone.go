// Package tone synthesises short PCM sound effects.
package tone

import (
	"encoding/binary"
	"math"
	"time"
)

// Chirp returns a sine sweep from f0 to f1 Hz as 16-bit little-endian
// stereo PCM, the format ebiten's audio players expect. The amplitude
// decays linearly to silence.
func Chirp(sampleRate int, d time.Duration, f0, f1, volume float64) []byte {
	n := int(float64(sampleRate) * d.Seconds())
	if n <= 0 || sampleRate <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := f0 + (f1-f0)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := int16(math.Sin(phase) * (1 - t) * volume * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
