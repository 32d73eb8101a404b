// Package windowing provides the taper strategies applied to analysis frames.
//
// Every window can be generated in its periodic form (the default, suited to
// overlap-add since it tiles exactly at the usual hops) or its symmetric form
// (suited to filter design). A periodic window of length n is the first n
// points of the symmetric window of length n+1.
package windowing

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Window generates per-sample taper weights for a frame of length n
type Window interface {
	Coefficients(n int) []float64
	Name() string
}

// constructors keyed by the names used in configuration
var constructors = map[string]func(symmetric bool) Window{
	"hann":            func(s bool) Window { return NewHann(s) },
	"hamming":         func(s bool) Window { return NewHamming(s) },
	"blackman":        func(s bool) Window { return NewBlackman(s) },
	"blackman-harris": func(s bool) Window { return NewBlackmanHarris(s) },
	"bartlett":        func(s bool) Window { return NewBartlett(s) },
	"rectangular":     func(s bool) Window { return NewRectangular() },
	"kaiser":          func(s bool) Window { return NewKaiser(DefaultKaiserBeta, s) },
	"tukey":           func(s bool) Window { return NewTukey(DefaultTukeyAlpha, s) },
}

// Default returns the periodic Hann window. It differs from the symmetric
// Hann on purpose: only the periodic form overlap-adds to a constant at
// nfft/2 and nfft/4, which keeps round trips within a 1e-3 relative error.
func Default() Window {
	return NewHann(false)
}

// ByName resolves a window from its configuration name
func ByName(name string, symmetric bool) (Window, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown window %q (available: %v)", name, Names())
	}
	return ctor(symmetric), nil
}

// Names returns the sorted list of window names accepted by ByName
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply multiplies frame by weights into dst and returns dst
func Apply(dst, frame, weights []float64) []float64 {
	return floats.MulTo(dst, frame, weights)
}

// fromGonum builds n weights with one of gonum's in-place window functions,
// which always produce the symmetric form.
func fromGonum(n int, symmetric bool, fn func(seq []float64) []float64) []float64 {
	return sample(n, symmetric, func(m int) []float64 {
		seq := make([]float64, m)
		for i := range seq {
			seq[i] = 1
		}
		return fn(seq)
	})
}

// sample generates the symmetric sequence of the right length and trims it
// to n for the periodic form.
func sample(n int, symmetric bool, gen func(m int) []float64) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{1}
	}

	m := n
	if !symmetric {
		m = n + 1
	}
	return gen(m)[:n]
}
