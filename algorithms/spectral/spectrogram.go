package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// Spectrogram is a time-ordered sequence of complex spectra, one row per
// frame and nfft bins per row. Rows are stored in single precision.
type Spectrogram [][]complex64

// Frames returns the number of rows
func (s Spectrogram) Frames() int {
	return len(s)
}

// Bins returns the row length, or 0 for an empty spectrogram
func (s Spectrogram) Bins() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Validate checks that every row is non-empty and as long as the first
func (s Spectrogram) Validate() error {
	if len(s) == 0 {
		return nil
	}

	bins := len(s[0])
	for i, row := range s {
		if len(row) == 0 || len(row) != bins {
			return &ShapeError{Row: i, Length: len(row), Expected: bins}
		}
	}
	return nil
}

// Clone returns a deep copy
func (s Spectrogram) Clone() Spectrogram {
	out := make(Spectrogram, len(s))
	for i, row := range s {
		out[i] = append([]complex64(nil), row...)
	}
	return out
}

// Magnitude returns |X| per frame and bin
func (s Spectrogram) Magnitude() [][]float64 {
	return s.mapBins(func(c complex128) float64 { return cmplx.Abs(c) })
}

// Power returns |X|^2 per frame and bin
func (s Spectrogram) Power() [][]float64 {
	return s.mapBins(func(c complex128) float64 {
		return real(c)*real(c) + imag(c)*imag(c)
	})
}

// Phase returns arg(X) per frame and bin, in radians
func (s Spectrogram) Phase() [][]float64 {
	return s.mapBins(cmplx.Phase)
}

func (s Spectrogram) mapBins(fn func(complex128) float64) [][]float64 {
	out := make([][]float64, len(s))
	for i, row := range s {
		out[i] = make([]float64, len(row))
		for k, c := range row {
			out[i][k] = fn(complex128(c))
		}
	}
	return out
}

// DominantBin returns the strongest bin of a frame among the non-negative
// frequencies [0, bins/2]. It returns -1 for an out of range or empty frame.
func (s Spectrogram) DominantBin(frame int) int {
	if frame < 0 || frame >= len(s) || len(s[frame]) == 0 {
		return -1
	}

	return floats.MaxIdx(s.halfMagnitude(frame))
}

// BinFrequency converts a bin index to Hz for the given frame length and sample rate
func BinFrequency(bin, windowSize, sampleRate int) float64 {
	if windowSize <= 0 {
		return 0
	}
	return float64(bin) * float64(sampleRate) / float64(windowSize)
}

// FrameCount returns ceil(length/hop), the number of rows analysis produces
func FrameCount(length, hop int) int {
	if length <= 0 || hop <= 0 {
		return 0
	}
	return (length + hop - 1) / hop
}

// PaddedLength returns the zero-padded signal length analysis frames read from
func PaddedLength(length, windowSize, hop int) int {
	return FrameCount(length, hop)*hop + (windowSize - hop)
}
