package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
	"gonum.org/v1/gonum/floats"
)

// Synthesize inverse-transforms every row of spec and overlap-adds the real
// parts at multiples of the configured hop. The output has
// frames*hop + bins samples, or truncateTo samples when truncateTo > 0 (the
// whole buffer if truncateTo is larger).
//
// Reconstruction is exact only when the analysis window has the
// constant-overlap-add property at this hop, and only from sample
// WindowSize-HopSize on; the first frame has no predecessor to overlap with.
func (s *STFT) Synthesize(spec Spectrogram, truncateTo int, progress Progress) ([]float64, error) {
	if len(spec) > 0 && len(spec[0]) != s.cfg.WindowSize {
		return nil, &ShapeError{Row: 0, Length: len(spec[0]), Expected: s.cfg.WindowSize}
	}
	return s.overlapAdd(spec, truncateTo, progress)
}

// Synthesize runs a one-off overlap-add with the given hop. The hop must be
// the one used for analysis; the spectrogram does not record it.
func Synthesize(spec Spectrogram, hopSize, truncateTo int, progress Progress) ([]float64, error) {
	if hopSize <= 0 {
		return nil, invalidParam("hop_size", hopSize, "must be positive")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	s, err := NewSTFT(&Config{
		WindowSize: max(spec.Bins(), 1),
		HopSize:    hopSize,
		Window:     windowing.NewRectangular(),
	})
	if err != nil {
		return nil, err
	}
	return s.overlapAdd(spec, truncateTo, progress)
}

func (s *STFT) overlapAdd(spec Spectrogram, truncateTo int, progress Progress) ([]float64, error) {
	if truncateTo < 0 {
		return nil, invalidParam("truncate_to", truncateTo, "must not be negative")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	progress = progressOrNop(progress)

	hopSize := s.cfg.HopSize
	numFrames, bins := spec.Frames(), spec.Bins()

	// each frame lands in a private buffer; the sum below runs in frame
	// order so the result does not depend on the worker count
	parts := make([][]float64, numFrames)
	residues := make([]float64, numFrames)

	s.runFrames(numFrames, progress, func() func(int) {
		buf := make([]complex128, bins)

		return func(i int) {
			for k, c := range spec[i] {
				buf[k] = complex128(c)
			}

			frame := s.fft.ComputeInverse(buf)
			part := make([]float64, bins)
			residue := 0.0
			for k, c := range frame {
				part[k] = real(c)
				residue = math.Max(residue, math.Abs(imag(c)))
			}

			parts[i] = part
			residues[i] = residue
		}
	})

	if numFrames == 0 {
		return []float64{}, nil
	}

	if bound := s.cfg.MaxImagResidue; bound > 0 {
		for i, r := range residues {
			if r > bound {
				return nil, &residueError{frame: i, residue: r, bound: bound}
			}
		}
	}

	out := make([]float64, numFrames*hopSize+bins)
	for i, part := range parts {
		offset := i * hopSize
		floats.Add(out[offset:offset+bins], part)
	}

	if truncateTo > 0 && truncateTo < len(out) {
		out = out[:truncateTo]
	}

	s.logger.Debug("synthesis complete", logging.Fields{
		"frames":  numFrames,
		"bins":    bins,
		"samples": len(out),
	})

	return out, nil
}
