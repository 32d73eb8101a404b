package windowing

import "gonum.org/v1/gonum/dsp/window"

// Blackman is the three-term cosine-sum window
type Blackman struct {
	Symmetric bool
}

// NewBlackman creates a Blackman window
func NewBlackman(symmetric bool) *Blackman {
	return &Blackman{Symmetric: symmetric}
}

func (b *Blackman) Coefficients(n int) []float64 {
	return fromGonum(n, b.Symmetric, window.Blackman)
}

func (b *Blackman) Name() string {
	return "blackman"
}

// BlackmanHarris is the four-term cosine-sum window with very low sidelobes
type BlackmanHarris struct {
	Symmetric bool
}

// NewBlackmanHarris creates a Blackman-Harris window
func NewBlackmanHarris(symmetric bool) *BlackmanHarris {
	return &BlackmanHarris{Symmetric: symmetric}
}

func (b *BlackmanHarris) Coefficients(n int) []float64 {
	return fromGonum(n, b.Symmetric, window.BlackmanHarris)
}

func (b *BlackmanHarris) Name() string {
	return "blackman-harris"
}
