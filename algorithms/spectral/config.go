package spectral

import (
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
)

const (
	// DefaultWindowSize is the analysis frame length (nfft)
	DefaultWindowSize = 1024

	// DefaultHopSize is the distance between frame starts (nhop)
	DefaultHopSize = 512
)

// Config holds the parameters shared by analysis and synthesis. The same
// Config must be used for both halves of a round trip; the hop is not
// recorded in the Spectrogram.
type Config struct {
	WindowSize int `json:"window_size"`
	HopSize    int `json:"hop_size"`

	// Window tapers every frame before the forward transform. Perfect
	// reconstruction needs a window with the constant-overlap-add property at
	// HopSize (see windowing.COLA); that is the caller's choice.
	Window windowing.Window `json:"-"`

	// Transform computes the per-frame DFTs. Nil selects go-dsp.
	Transform Transformer `json:"-"`

	// Workers bounds the frame worker pool. 0 picks from the CPU count and
	// frame count, 1 runs on the calling goroutine.
	Workers int `json:"workers"`

	// MaxImagResidue, when positive, makes synthesis fail with ErrImagResidue
	// if any inverse-transformed frame has an imaginary part larger than this.
	// Zero discards the imaginary part unchecked.
	MaxImagResidue float64 `json:"max_imag_residue"`
}

// DefaultConfig returns nfft=1024, nhop=512 with a periodic Hann window
func DefaultConfig() *Config {
	return &Config{
		WindowSize: DefaultWindowSize,
		HopSize:    DefaultHopSize,
		Window:     windowing.Default(),
		Transform:  NewFFT(),
	}
}

// Validate checks the parameters without generating the window
func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return invalidParam("window_size", c.WindowSize, "must be positive")
	}
	if c.HopSize <= 0 {
		return invalidParam("hop_size", c.HopSize, "must be positive")
	}
	if c.Window == nil {
		return invalidParam("window", nil, "must not be nil")
	}
	if c.Workers < 0 {
		return invalidParam("workers", c.Workers, "must not be negative")
	}
	if c.MaxImagResidue < 0 {
		return invalidParam("max_imag_residue", c.MaxImagResidue, "must not be negative")
	}
	return nil
}
