package common

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Comparison metrics between a reference signal and its reconstruction

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 2) / math.Sqrt(float64(len(data)))
}

// Mean calculates the arithmetic mean using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// RelativeL2Error returns ||reference - estimate|| / ||reference||. For an
// all-zero reference it returns ||estimate||.
func RelativeL2Error(reference, estimate []float64) (float64, error) {
	if err := sameLength(reference, estimate); err != nil {
		return 0, err
	}
	if len(reference) == 0 {
		return 0, nil
	}

	diff := floats.Distance(reference, estimate, 2)
	norm := floats.Norm(reference, 2)
	if norm == 0 {
		return diff, nil
	}
	return diff / norm, nil
}

// MaxAbsError returns the largest per-sample absolute difference
func MaxAbsError(reference, estimate []float64) (float64, error) {
	if err := sameLength(reference, estimate); err != nil {
		return 0, err
	}
	if len(reference) == 0 {
		return 0, nil
	}
	return floats.Distance(reference, estimate, math.Inf(1)), nil
}

// SNR returns the signal-to-error ratio in dB; +Inf for an exact match
func SNR(reference, estimate []float64) (float64, error) {
	rel, err := RelativeL2Error(reference, estimate)
	if err != nil {
		return 0, err
	}
	if rel == 0 {
		return math.Inf(1), nil
	}
	return -20 * math.Log10(rel), nil
}

// ReconstructionSpan returns the sample range [start, end) of a signal of the
// given length in which every sample is covered by the full set of
// overlapping frames. Samples before start only see the leading edge of the
// first window.
func ReconstructionSpan(length, windowSize, hopSize int) (start, end int) {
	if length <= 0 {
		return 0, 0
	}
	start = min(max(windowSize-hopSize, 0), length)
	return start, length
}

func sameLength(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	return nil
}
