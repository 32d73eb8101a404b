package spectral

import (
	"fmt"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes the forward and inverse DFT of a single frame.
// Implementations must be safe for concurrent use by the frame workers.
type Transformer interface {
	// Compute returns the full complex spectrum (len(x) bins) of a real frame
	Compute(x []float64) []complex128

	// ComputeInverse returns the inverse DFT, normalized by 1/len(x)
	ComputeInverse(x []complex128) []complex128
}

// NewTransformer resolves a transform backend by name ("go-dsp" or "gonum")
func NewTransformer(name string) (Transformer, error) {
	switch name {
	case "", "go-dsp":
		return NewFFT(), nil
	case "gonum":
		return NewGonumFFT(), nil
	default:
		return nil, fmt.Errorf("unknown transform %q (available: go-dsp, gonum)", name)
	}
}

// FFT computes transforms with mjibson/go-dsp, which handles any length
// (Bluestein for non powers of two) and caches its factors internally.
type FFT struct{}

// NewFFT creates a go-dsp backed transformer
func NewFFT() *FFT {
	return &FFT{}
}

func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.IFFT(x)
}

// GonumFFT computes transforms with gonum's FFTPACK port. A CmplxFFT plan is
// not safe for concurrent use, so plans are pooled per length.
type GonumFFT struct {
	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewGonumFFT creates a gonum backed transformer
func NewGonumFFT() *GonumFFT {
	return &GonumFFT{plans: make(map[int]*sync.Pool)}
}

func (g *GonumFFT) pool(n int) *sync.Pool {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.plans[n]
	if !ok {
		p = &sync.Pool{New: func() any { return fourier.NewCmplxFFT(n) }}
		g.plans[n] = p
	}
	return p
}

func (g *GonumFFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	seq := make([]complex128, len(x))
	for i, v := range x {
		seq[i] = complex(v, 0)
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	return plan.Coefficients(nil, seq)
}

func (g *GonumFFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	p := g.pool(len(x))
	plan := p.Get().(*fourier.CmplxFFT)
	defer p.Put(plan)

	// gonum leaves the inverse unscaled
	seq := plan.Sequence(nil, x)
	scale := complex(1/float64(len(x)), 0)
	for i := range seq {
		seq[i] *= scale
	}
	return seq
}
