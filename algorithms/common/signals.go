package common

import (
	"math"
	"math/rand"
)

// Sine generates amplitude*sin(2*pi*freqHz*n/sampleRate)
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform white noise in [-amplitude, amplitude) from a fixed seed
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos
func Impulse(length, pos int) []float64 {
	out := make([]float64, max(length, 0))
	if pos >= 0 && pos < len(out) {
		out[pos] = 1
	}
	return out
}
