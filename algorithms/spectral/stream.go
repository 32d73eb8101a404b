package spectral

import (
	"math"

	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"gonum.org/v1/gonum/floats"
)

// StreamAnalyzer produces the same frames as Analyze from a signal that
// arrives in pieces. Frames are emitted as soon as they are complete; Flush
// zero-pads and emits the rest once the signal has ended.
type StreamAnalyzer struct {
	stft     *STFT
	pending  []float64
	frame    []float64
	received int
	emitted  int
}

// NewStreamAnalyzer requires HopSize <= WindowSize
func (s *STFT) NewStreamAnalyzer() (*StreamAnalyzer, error) {
	if s.cfg.HopSize > s.cfg.WindowSize {
		return nil, invalidParam("hop_size", s.cfg.HopSize, "must not exceed window size for streaming")
	}
	return &StreamAnalyzer{
		stft:  s,
		frame: make([]float64, s.cfg.WindowSize),
	}, nil
}

// Push appends samples and returns every frame that became complete
func (a *StreamAnalyzer) Push(samples []float64) Spectrogram {
	windowSize, hopSize := a.stft.cfg.WindowSize, a.stft.cfg.HopSize

	a.pending = append(a.pending, samples...)
	a.received += len(samples)

	var out Spectrogram
	for len(a.pending) >= windowSize {
		out = append(out, a.analyze(a.pending[:windowSize]))
		a.pending = a.pending[hopSize:]
	}
	return out
}

// Flush emits the zero-padded tail frames and resets the analyzer
func (a *StreamAnalyzer) Flush() Spectrogram {
	windowSize, hopSize := a.stft.cfg.WindowSize, a.stft.cfg.HopSize
	total := FrameCount(a.received, hopSize)

	var out Spectrogram
	tail := make([]float64, windowSize)
	for a.emitted < total {
		clear(tail)
		copy(tail, a.pending)
		out = append(out, a.analyze(tail))

		if len(a.pending) > hopSize {
			a.pending = a.pending[hopSize:]
		} else {
			a.pending = nil
		}
	}

	a.pending = nil
	a.received = 0
	a.emitted = 0
	return out
}

func (a *StreamAnalyzer) analyze(samples []float64) []complex64 {
	windowing.Apply(a.frame, samples, a.stft.weights)

	spectrum := a.stft.fft.Compute(a.frame)
	row := make([]complex64, len(spectrum))
	for k, c := range spectrum {
		row[k] = complex64(c)
	}

	a.emitted++
	return row
}

// StreamSynthesizer overlap-adds spectra one at a time. Each Push returns the
// HopSize samples no later frame can touch; Flush returns the remaining
// WindowSize-HopSize samples. The concatenated output equals Synthesize
// without its trailing HopSize zeros.
type StreamSynthesizer struct {
	stft   *STFT
	acc    []float64
	buf    []complex128
	frames int
}

// NewStreamSynthesizer requires HopSize <= WindowSize
func (s *STFT) NewStreamSynthesizer() (*StreamSynthesizer, error) {
	if s.cfg.HopSize > s.cfg.WindowSize {
		return nil, invalidParam("hop_size", s.cfg.HopSize, "must not exceed window size for streaming")
	}
	return &StreamSynthesizer{
		stft: s,
		acc:  make([]float64, s.cfg.WindowSize),
		buf:  make([]complex128, s.cfg.WindowSize),
	}, nil
}

// Push adds one spectrum and returns the next HopSize finished samples
func (y *StreamSynthesizer) Push(spectrum []complex64) ([]float64, error) {
	windowSize, hopSize := y.stft.cfg.WindowSize, y.stft.cfg.HopSize
	if len(spectrum) != windowSize {
		return nil, &ShapeError{Row: y.frames, Length: len(spectrum), Expected: windowSize}
	}

	for k, c := range spectrum {
		y.buf[k] = complex128(c)
	}
	frame := y.stft.fft.ComputeInverse(y.buf)

	part := make([]float64, windowSize)
	residue := 0.0
	for k, c := range frame {
		part[k] = real(c)
		residue = math.Max(residue, math.Abs(imag(c)))
	}
	if bound := y.stft.cfg.MaxImagResidue; bound > 0 && residue > bound {
		return nil, &residueError{frame: y.frames, residue: residue, bound: bound}
	}

	floats.Add(y.acc, part)
	y.frames++

	out := make([]float64, hopSize)
	copy(out, y.acc[:hopSize])
	copy(y.acc, y.acc[hopSize:])
	clear(y.acc[windowSize-hopSize:])

	return out, nil
}

// Flush returns the overlap still held in the accumulator and resets
func (y *StreamSynthesizer) Flush() []float64 {
	tailLen := y.stft.cfg.WindowSize - y.stft.cfg.HopSize
	if y.frames == 0 {
		return []float64{}
	}

	out := make([]float64, tailLen)
	copy(out, y.acc[:tailLen])

	clear(y.acc)
	y.frames = 0
	return out
}
