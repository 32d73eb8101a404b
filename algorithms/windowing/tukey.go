package windowing

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// DefaultTukeyAlpha tapers a quarter of each side of the frame
const DefaultTukeyAlpha = 0.5

// Tukey is flat in the middle with cosine tapers covering Alpha of the frame.
// Alpha 0 is rectangular, Alpha 1 is Hann.
type Tukey struct {
	Alpha     float64
	Symmetric bool
}

// NewTukey creates a Tukey window
func NewTukey(alpha float64, symmetric bool) *Tukey {
	return &Tukey{Alpha: alpha, Symmetric: symmetric}
}

func (t *Tukey) Coefficients(n int) []float64 {
	alpha := math.Max(0, math.Min(1, t.Alpha))
	return fromGonum(n, t.Symmetric, window.Tukey{Alpha: alpha}.Transform)
}

func (t *Tukey) Name() string {
	return "tukey"
}
