package spectral

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RyanBlaney/sonido-stft/algorithms/common"
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 44100

func newTestSTFT(t *testing.T, cfg *Config) *STFT {
	t.Helper()
	s, err := NewSTFT(cfg)
	require.NoError(t, err)
	s.SetLogger(&logging.NoOpLogger{})
	return s
}

func TestAnalyzeShape(t *testing.T) {
	tests := []struct {
		name             string
		length, nfft, hp int
	}{
		{"exact multiple", 2048, 1024, 512},
		{"ragged tail", 2049, 1024, 512},
		{"shorter than one frame", 100, 1024, 512},
		{"single sample", 1, 64, 16},
		{"no overlap", 1000, 128, 128},
		{"hop larger than frame", 1000, 64, 100},
		{"non power of two", 5000, 1000, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSTFT(t, &Config{WindowSize: tt.nfft, HopSize: tt.hp, Window: windowing.Default()})
			spec, err := s.Analyze(common.Noise(1, 1, tt.length), nil)
			require.NoError(t, err)

			want := (tt.length + tt.hp - 1) / tt.hp
			assert.Equal(t, want, spec.Frames())
			assert.Equal(t, want, FrameCount(tt.length, tt.hp))
			for i, row := range spec {
				assert.Len(t, row, tt.nfft, "row %d", i)
			}
			assert.NoError(t, spec.Validate())
		})
	}
}

func TestAnalyzeEmptySignal(t *testing.T) {
	spec, err := Analyze(nil, 1024, 512, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, spec.Frames())
	assert.Equal(t, 0, spec.Bins())

	out, err := Synthesize(spec, 512, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = Synthesize(Spectrogram{}, 512, 100, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	signal := common.Sine(440, testSampleRate, 1, 3000)
	original := append([]float64(nil), signal...)

	_, err := Analyze(signal, 256, 128, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, original, signal)
}

func TestAnalyzeLastFrameIsZeroPadded(t *testing.T) {
	signal := common.Noise(7, 1, 300)
	s := newTestSTFT(t, &Config{WindowSize: 64, HopSize: 32, Window: windowing.NewHann(false)})

	spec, err := s.Analyze(signal, nil)
	require.NoError(t, err)

	// last frame starts at 288 and reads 52 zeros past the end
	last := spec.Frames() - 1
	require.Equal(t, 10, spec.Frames())
	frame := make([]float64, 64)
	copy(frame, signal[last*32:])
	windowing.Apply(frame, frame, s.Weights())

	want := NewFFT().Compute(frame)
	for k := range want {
		assert.InDelta(t, real(want[k]), real(spec[last][k]), 1e-4)
		assert.InDelta(t, imag(want[k]), imag(spec[last][k]), 1e-4)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		window windowing.Window
		nfft   int
		hop    int
	}{
		{"sine hann half overlap", common.Sine(1000, testSampleRate, 0.8, 10000), windowing.NewHann(false), 1024, 512},
		{"noise hann half overlap", common.Noise(3, 1, 7777), windowing.NewHann(false), 1024, 512},
		{"noise hann quarter hop", common.Noise(4, 1, 5000), windowing.NewHann(false), 512, 128},
		{"noise hamming half overlap", common.Noise(5, 1, 4096), windowing.NewHamming(false), 256, 128},
		{"noise rectangular no overlap", common.Noise(6, 1, 1000), windowing.NewRectangular(), 100, 100},
		{"impulse non power of two", common.Impulse(3000, 1700), windowing.NewHann(false), 1000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSTFT(t, &Config{WindowSize: tt.nfft, HopSize: tt.hop, Window: tt.window})

			spec, err := s.Analyze(tt.signal, nil)
			require.NoError(t, err)
			out, err := s.Synthesize(spec, len(tt.signal), nil)
			require.NoError(t, err)
			require.Len(t, out, len(tt.signal))

			cola, err := windowing.CheckCOLA(tt.window, tt.nfft, tt.hop)
			require.NoError(t, err)
			require.True(t, cola.IsConstant(1e-9))
			for i := range out {
				out[i] /= cola.Gain
			}

			start, end := common.ReconstructionSpan(len(tt.signal), tt.nfft, tt.hop)
			relErr, err := common.RelativeL2Error(tt.signal[start:end], out[start:end])
			require.NoError(t, err)
			assert.Less(t, relErr, 1e-3)
		})
	}
}

func TestSineScenario(t *testing.T) {
	const (
		nfft = 1024
		hop  = 512
		bin  = 32
	)
	freq := BinFrequency(bin, nfft, testSampleRate)
	signal := common.Sine(freq, testSampleRate, 1, 2048)

	spec, err := Analyze(signal, nfft, hop, windowing.NewHann(false), nil)
	require.NoError(t, err)

	// ceil(2048/512) rows over a signal padded to 4*512 + 512 samples
	assert.Equal(t, 4, spec.Frames())
	assert.Equal(t, 2560, PaddedLength(len(signal), nfft, hop))
	for i := 0; i < spec.Frames(); i++ {
		assert.InDelta(t, bin, spec.DominantBin(i), 1, "frame %d", i)
	}

	out, err := Synthesize(spec, hop, len(signal), nil)
	require.NoError(t, err)
	require.Len(t, out, 2048)

	start, end := common.ReconstructionSpan(len(signal), nfft, hop)
	relErr, err := common.RelativeL2Error(signal[start:end], out[start:end])
	require.NoError(t, err)
	assert.Less(t, relErr, 1e-3)
}

func TestDeterminism(t *testing.T) {
	signal := common.Noise(11, 1, 300*256)

	serial := newTestSTFT(t, &Config{WindowSize: 512, HopSize: 256, Window: windowing.Default(), Workers: 1})
	parallel := newTestSTFT(t, &Config{WindowSize: 512, HopSize: 256, Window: windowing.Default(), Workers: 4})

	a, err := serial.Analyze(signal, nil)
	require.NoError(t, err)
	b, err := parallel.Analyze(signal, nil)
	require.NoError(t, err)
	c, err := parallel.Analyze(signal, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)

	x, err := serial.Synthesize(a, 0, nil)
	require.NoError(t, err)
	y, err := parallel.Synthesize(a, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, x, y)
}

func TestSynthesizeTruncation(t *testing.T) {
	spec, err := Analyze(common.Noise(2, 1, 1000), 128, 64, nil, nil)
	require.NoError(t, err)
	full := spec.Frames()*64 + 128

	tests := []struct {
		truncateTo int
		want       int
	}{
		{0, full},
		{1, 1},
		{1000, 1000},
		{full, full},
		{full + 500, full},
	}

	for _, tt := range tests {
		out, err := Synthesize(spec, 64, tt.truncateTo, nil)
		require.NoError(t, err)
		assert.Len(t, out, tt.want, "truncateTo=%d", tt.truncateTo)
	}
}

func TestProgressContract(t *testing.T) {
	for _, workers := range []int{1, 3} {
		s := newTestSTFT(t, &Config{WindowSize: 64, HopSize: 32, Window: windowing.Default(), Workers: workers})

		rec := &recorder{}
		spec, err := s.Analyze(common.Noise(1, 1, 32*20), rec)
		require.NoError(t, err)
		require.Equal(t, 20, spec.Frames())
		assertProgress(t, rec, spec.Frames())

		rec = &recorder{}
		_, err = s.Synthesize(spec, 0, rec)
		require.NoError(t, err)
		assertProgress(t, rec, spec.Frames())
	}
}

func TestProgressZeroFrames(t *testing.T) {
	rec := &recorder{}
	_, err := Analyze(nil, 64, 32, nil, rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"start:0", "finish"}, rec.events)

	rec = &recorder{}
	_, err = Synthesize(nil, 32, 0, rec)
	require.NoError(t, err)
	assert.Equal(t, []string{"start:0", "finish"}, rec.events)
}

func assertProgress(t *testing.T, rec *recorder, frames int) {
	t.Helper()

	require.Len(t, rec.events, frames+2)
	assert.Equal(t, fmt.Sprintf("start:%d", frames), rec.events[0])
	assert.Equal(t, "finish", rec.events[len(rec.events)-1])
	for i, done := range rec.counts {
		assert.Equal(t, i+1, done)
	}
	assert.Equal(t, frames, rec.counts[len(rec.counts)-1])
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		param string
	}{
		{"zero window size", &Config{WindowSize: 0, HopSize: 1, Window: windowing.Default()}, "window_size"},
		{"negative window size", &Config{WindowSize: -4, HopSize: 1, Window: windowing.Default()}, "window_size"},
		{"zero hop", &Config{WindowSize: 8, HopSize: 0, Window: windowing.Default()}, "hop_size"},
		{"negative hop", &Config{WindowSize: 8, HopSize: -1, Window: windowing.Default()}, "hop_size"},
		{"nil window", &Config{WindowSize: 8, HopSize: 4}, "window"},
		{"short window", &Config{WindowSize: 8, HopSize: 4, Window: shortWindow{}}, "window"},
		{"negative workers", &Config{WindowSize: 8, HopSize: 4, Window: windowing.Default(), Workers: -1}, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSTFT(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)

			var perr *ParameterError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.param, perr.Param)
		})
	}

	_, err := Analyze([]float64{1, 2, 3}, 8, 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Synthesize(Spectrogram{{1, 2}}, 0, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Synthesize(Spectrogram{{1, 2}}, 1, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestShapeMismatch(t *testing.T) {
	rec := &recorder{}
	_, err := Synthesize(Spectrogram{{1, 2, 3, 4}, {1, 2}}, 2, 0, rec)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Empty(t, rec.events, "no work before validation")

	var serr *ShapeError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Row)
	assert.Equal(t, 4, serr.Expected)

	_, err = Synthesize(Spectrogram{{}, {}}, 2, 0, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	s := newTestSTFT(t, &Config{WindowSize: 8, HopSize: 4, Window: windowing.Default()})
	_, err = s.Synthesize(Spectrogram{make([]complex64, 16)}, 0, nil)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestImagResidue(t *testing.T) {
	signal := common.Noise(8, 1, 2000)
	strict := newTestSTFT(t, &Config{WindowSize: 256, HopSize: 128, Window: windowing.Default(), MaxImagResidue: 1e-3})

	spec, err := strict.Analyze(signal, nil)
	require.NoError(t, err)
	_, err = strict.Synthesize(spec, len(signal), nil)
	require.NoError(t, err, "analysis output is conjugate symmetric")

	broken := spec.Clone()
	broken[3][5] += complex(0, 50)
	_, err = strict.Synthesize(broken, 0, nil)
	assert.ErrorIs(t, err, ErrImagResidue)

	lenient := newTestSTFT(t, &Config{WindowSize: 256, HopSize: 128, Window: windowing.Default()})
	_, err = lenient.Synthesize(broken, 0, nil)
	assert.NoError(t, err, "residue is discarded by default")
}

func TestGonumBackendMatchesGoDSP(t *testing.T) {
	signal := common.Noise(9, 1, 3000)

	base := newTestSTFT(t, &Config{WindowSize: 300, HopSize: 150, Window: windowing.Default()})
	alt := newTestSTFT(t, &Config{WindowSize: 300, HopSize: 150, Window: windowing.Default(), Transform: NewGonumFFT()})

	a, err := base.Analyze(signal, nil)
	require.NoError(t, err)
	b, err := alt.Analyze(signal, nil)
	require.NoError(t, err)

	require.Equal(t, a.Frames(), b.Frames())
	for i := range a {
		for k := range a[i] {
			assert.InDelta(t, real(a[i][k]), real(b[i][k]), 1e-3)
			assert.InDelta(t, imag(a[i][k]), imag(b[i][k]), 1e-3)
		}
	}

	out, err := alt.Synthesize(b, len(signal), nil)
	require.NoError(t, err)
	start, end := common.ReconstructionSpan(len(signal), 300, 150)
	relErr, err := common.RelativeL2Error(signal[start:end], out[start:end])
	require.NoError(t, err)
	assert.Less(t, relErr, 1e-3)
}

func TestNewTransformer(t *testing.T) {
	tr, err := NewTransformer("")
	require.NoError(t, err)
	assert.IsType(t, &FFT{}, tr)

	tr, err = NewTransformer("gonum")
	require.NoError(t, err)
	assert.IsType(t, &GonumFFT{}, tr)

	_, err = NewTransformer("fftw")
	assert.Error(t, err)
}

func TestWorkerCount(t *testing.T) {
	s := newTestSTFT(t, &Config{WindowSize: 8, HopSize: 4, Window: windowing.Default()})
	assert.Equal(t, 1, s.workerCount(0))
	assert.Equal(t, 1, s.workerCount(1))
	assert.GreaterOrEqual(t, s.workerCount(50), 1)
	assert.LessOrEqual(t, s.workerCount(50), 50)

	fixed := newTestSTFT(t, &Config{WindowSize: 8, HopSize: 4, Window: windowing.Default(), Workers: 16})
	assert.Equal(t, 5, fixed.workerCount(5))
	assert.Equal(t, 16, fixed.workerCount(500))
}
