package windowing

import "gonum.org/v1/gonum/dsp/window"

// Bartlett is the triangular window with zero-valued end points
type Bartlett struct {
	Symmetric bool
}

// NewBartlett creates a Bartlett window
func NewBartlett(symmetric bool) *Bartlett {
	return &Bartlett{Symmetric: symmetric}
}

func (b *Bartlett) Coefficients(n int) []float64 {
	return fromGonum(n, b.Symmetric, window.Triangular)
}

func (b *Bartlett) Name() string {
	return "bartlett"
}

// Rectangular leaves the frame untouched
type Rectangular struct{}

// NewRectangular creates a rectangular (boxcar) window
func NewRectangular() *Rectangular {
	return &Rectangular{}
}

func (r *Rectangular) Coefficients(n int) []float64 {
	return fromGonum(n, true, window.Rectangular)
}

func (r *Rectangular) Name() string {
	return "rectangular"
}
