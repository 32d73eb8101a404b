package windowing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// COLAResult describes how a window tiles when shifted by a hop
type COLAResult struct {
	// Gain is the mean of the overlapped window sum; overlap-add output is
	// scaled by this factor.
	Gain float64 `json:"gain" yaml:"gain"`

	// Deviation is max|sum - Gain| / Gain over one hop period. Zero means the
	// window has the constant-overlap-add property at this hop.
	Deviation float64 `json:"deviation" yaml:"deviation"`
}

// IsConstant reports whether the overlap sum is flat within tol
func (r COLAResult) IsConstant(tol float64) bool {
	return r.Deviation <= tol
}

// COLA sums the weights over every hop-spaced shift and reports the gain and
// the relative ripple of that sum.
func COLA(weights []float64, hop int) (COLAResult, error) {
	if len(weights) == 0 {
		return COLAResult{}, fmt.Errorf("empty window")
	}
	if hop <= 0 {
		return COLAResult{}, fmt.Errorf("hop size must be positive, got %d", hop)
	}

	sums := make([]float64, hop)
	for p := range sums {
		for i := p; i < len(weights); i += hop {
			sums[p] += weights[i]
		}
	}

	gain := stat.Mean(sums, nil)
	if gain == 0 {
		return COLAResult{Gain: 0, Deviation: math.Inf(1)}, nil
	}

	ripple := math.Max(floats.Max(sums)-gain, gain-floats.Min(sums))
	return COLAResult{Gain: gain, Deviation: ripple / math.Abs(gain)}, nil
}

// CheckCOLA generates w at length n and runs COLA on it
func CheckCOLA(w Window, n, hop int) (COLAResult, error) {
	if w == nil {
		return COLAResult{}, fmt.Errorf("nil window")
	}
	return COLA(w.Coefficients(n), hop)
}
