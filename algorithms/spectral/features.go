package spectral

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// halfMagnitude returns |X[k]| for the non-negative frequencies [0, bins/2]
func (s Spectrogram) halfMagnitude(frame int) []float64 {
	row := s[frame]
	mags := make([]float64, len(row)/2+1)
	for k := range mags {
		mags[k] = cmplx.Abs(complex128(row[k]))
	}
	return mags
}

// Centroid returns the magnitude-weighted mean frequency of a frame in Hz.
// Silent, empty or out of range frames give 0.
func (s Spectrogram) Centroid(frame, sampleRate int) float64 {
	if frame < 0 || frame >= len(s) || len(s[frame]) == 0 {
		return 0
	}

	mags := s.halfMagnitude(frame)
	total := floats.Sum(mags)
	if total == 0 {
		return 0
	}

	freqs := make([]float64, len(mags))
	for k := range freqs {
		freqs[k] = BinFrequency(k, len(s[frame]), sampleRate)
	}
	return floats.Dot(freqs, mags) / total
}

// Flux returns the rectified spectral flux between frame-1 and frame: the L2
// norm of the magnitude increases only. Frame 0 and out of range frames give 0.
func (s Spectrogram) Flux(frame int) float64 {
	if frame <= 0 || frame >= len(s) || len(s[frame]) == 0 || len(s[frame]) != len(s[frame-1]) {
		return 0
	}

	cur := s.halfMagnitude(frame)
	prev := s.halfMagnitude(frame - 1)

	floats.Sub(cur, prev)
	sum := 0.0
	for _, d := range cur {
		if d > 0 {
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}
