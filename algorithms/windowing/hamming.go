package windowing

import "gonum.org/v1/gonum/dsp/window"

// Hamming is a raised cosine on a pedestal; it does not reach zero at the edges
type Hamming struct {
	Symmetric bool
}

// NewHamming creates a Hamming window
func NewHamming(symmetric bool) *Hamming {
	return &Hamming{Symmetric: symmetric}
}

func (h *Hamming) Coefficients(n int) []float64 {
	return fromGonum(n, h.Symmetric, window.Hamming)
}

func (h *Hamming) Name() string {
	return "hamming"
}
