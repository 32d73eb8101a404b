package windowing

import "gonum.org/v1/gonum/dsp/window"

// Hann is the raised-cosine window, the default analysis taper
type Hann struct {
	Symmetric bool
}

// NewHann creates a Hann window
func NewHann(symmetric bool) *Hann {
	return &Hann{Symmetric: symmetric}
}

func (h *Hann) Coefficients(n int) []float64 {
	return fromGonum(n, h.Symmetric, window.Hann)
}

func (h *Hann) Name() string {
	return "hann"
}
