package windowing

import "math"

// DefaultKaiserBeta gives roughly the main-lobe width of a Hann window
const DefaultKaiserBeta = 8.6

// Kaiser is the Bessel-function window with an adjustable main-lobe/sidelobe trade-off
type Kaiser struct {
	Beta      float64
	Symmetric bool
}

// NewKaiser creates a Kaiser window with the given beta
func NewKaiser(beta float64, symmetric bool) *Kaiser {
	return &Kaiser{Beta: beta, Symmetric: symmetric}
}

func (k *Kaiser) Coefficients(n int) []float64 {
	return sample(n, k.Symmetric, func(m int) []float64 {
		w := make([]float64, m)
		norm := besselI0(k.Beta)
		for i := range w {
			arg := 2.0*float64(i)/float64(m-1) - 1.0
			w[i] = besselI0(k.Beta*math.Sqrt(1-arg*arg)) / norm
		}
		return w
	})
}

func (k *Kaiser) Name() string {
	return "kaiser"
}

// besselI0 is the zero-order modified Bessel function of the first kind,
// evaluated by its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	half := x / 2.0

	for i := 1; i < 50; i++ {
		term *= (half / float64(i)) * (half / float64(i))
		sum += term
		if term < 1e-12*sum {
			break
		}
	}

	return sum
}
