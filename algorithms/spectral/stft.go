package spectral

import (
	"fmt"

	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
)

// STFT performs short-time Fourier analysis and overlap-add synthesis with a
// fixed configuration. It holds no per-call state and is safe for
// concurrent use.
type STFT struct {
	cfg     Config
	fft     Transformer
	weights []float64
	logger  logging.Logger
}

// NewSTFT validates cfg and precomputes the window weights. A nil cfg
// selects DefaultConfig.
func NewSTFT(cfg *Config) (*STFT, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	weights := cfg.Window.Coefficients(cfg.WindowSize)
	if len(weights) != cfg.WindowSize {
		return nil, invalidParam("window", cfg.Window.Name(),
			fmt.Sprintf("produced %d weights for window size %d", len(weights), cfg.WindowSize))
	}

	transform := cfg.Transform
	if transform == nil {
		transform = NewFFT()
	}

	return &STFT{
		cfg:     *cfg,
		fft:     transform,
		weights: weights,
		logger:  logging.WithFields(logging.Fields{"component": "stft"}),
	}, nil
}

// SetLogger replaces the logger; nil disables logging
func (s *STFT) SetLogger(logger logging.Logger) {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	s.logger = logger
}

// Config returns a copy of the configuration
func (s *STFT) Config() Config {
	return s.cfg
}

// Weights returns a copy of the window weights applied to every frame
func (s *STFT) Weights() []float64 {
	return append([]float64(nil), s.weights...)
}

// Analyze splits signal into frames of WindowSize samples spaced HopSize
// apart, tapers each with the window and returns their spectra. The signal
// is zero-padded on the right so the last of ceil(len/hop) frames is full.
// The input is not modified.
func (s *STFT) Analyze(signal []float64, progress Progress) (Spectrogram, error) {
	progress = progressOrNop(progress)
	windowSize, hopSize := s.cfg.WindowSize, s.cfg.HopSize

	if hopSize > windowSize {
		s.logger.Warn("hop size exceeds window size, frames will not overlap", logging.Fields{
			"window_size": windowSize,
			"hop_size":    hopSize,
		})
	}

	numFrames := FrameCount(len(signal), hopSize)
	padded := make([]float64, max(PaddedLength(len(signal), windowSize, hopSize), len(signal)))
	copy(padded, signal)

	result := make(Spectrogram, numFrames)

	s.runFrames(numFrames, progress, func() func(int) {
		frame := make([]float64, windowSize)

		return func(i int) {
			offset := i * hopSize
			windowing.Apply(frame, padded[offset:offset+windowSize], s.weights)

			spectrum := s.fft.Compute(frame)
			row := make([]complex64, windowSize)
			for k, c := range spectrum {
				row[k] = complex64(c)
			}
			result[i] = row
		}
	})

	s.logger.Debug("analysis complete", logging.Fields{
		"samples": len(signal),
		"frames":  numFrames,
		"bins":    windowSize,
	})

	return result, nil
}

// Analyze runs a one-off analysis with the given frame size, hop and window.
// A nil window selects the periodic Hann window.
func Analyze(signal []float64, windowSize, hopSize int, window windowing.Window, progress Progress) (Spectrogram, error) {
	if window == nil {
		window = windowing.Default()
	}

	s, err := NewSTFT(&Config{
		WindowSize: windowSize,
		HopSize:    hopSize,
		Window:     window,
	})
	if err != nil {
		return nil, err
	}
	return s.Analyze(signal, progress)
}
