package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/RyanBlaney/sonido-stft/algorithms/common"
	"github.com/RyanBlaney/sonido-stft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/spf13/cobra"
)

// maxReportedSNR stands in for an exact reconstruction, which JSON cannot encode as +Inf
const maxReportedSNR = 999.0

type roundTripReport struct {
	Signal        string  `json:"signal" yaml:"signal"`
	Samples       int     `json:"samples" yaml:"samples"`
	WindowSize    int     `json:"window_size" yaml:"window_size"`
	HopSize       int     `json:"hop_size" yaml:"hop_size"`
	Window        string  `json:"window" yaml:"window"`
	Frames        int     `json:"frames" yaml:"frames"`
	Bins          int     `json:"bins" yaml:"bins"`
	DominantBin   int     `json:"dominant_bin" yaml:"dominant_bin"`
	DominantHz    float64 `json:"dominant_hz" yaml:"dominant_hz"`
	COLAGain      float64 `json:"cola_gain" yaml:"cola_gain"`
	COLADeviation float64 `json:"cola_deviation" yaml:"cola_deviation"`
	SpanStart     int     `json:"span_start" yaml:"span_start"`
	SpanEnd       int     `json:"span_end" yaml:"span_end"`
	RelativeError float64 `json:"relative_error" yaml:"relative_error"`
	MaxAbsError   float64 `json:"max_abs_error" yaml:"max_abs_error"`
	SNR           float64 `json:"snr_db" yaml:"snr_db"`
	Elapsed       string  `json:"elapsed" yaml:"elapsed"`
}

func (r *roundTripReport) rows() [][2]string {
	return [][2]string{
		{"signal", fmt.Sprintf("%s (%d samples)", r.Signal, r.Samples)},
		{"window", fmt.Sprintf("%s nfft=%d nhop=%d", r.Window, r.WindowSize, r.HopSize)},
		{"spectrogram", fmt.Sprintf("%d frames x %d bins", r.Frames, r.Bins)},
		{"dominant bin", fmt.Sprintf("%d (%.1f Hz)", r.DominantBin, r.DominantHz)},
		{"cola", fmt.Sprintf("gain %.4f deviation %.2e", r.COLAGain, r.COLADeviation)},
		{"measured span", fmt.Sprintf("[%d, %d)", r.SpanStart, r.SpanEnd)},
		{"relative error", fmt.Sprintf("%.3e", r.RelativeError)},
		{"max abs error", fmt.Sprintf("%.3e", r.MaxAbsError)},
		{"snr", fmt.Sprintf("%.1f dB", r.SNR)},
		{"elapsed", r.Elapsed},
	}
}

func newRoundTripCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Analyze and resynthesize a test signal and report the reconstruction error",
		Long: `Analyze a synthetic signal, resynthesize it by overlap-add truncated to the
original length, and compare the two. The output is divided by the window's
overlap gain, and the error is measured from sample nfft-nhop on, where every
sample is covered by the full set of overlapping frames.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.roundTrip()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, report)
		},
	}

	addSTFTFlags(cmd.Flags())
	addSignalFlags(cmd.Flags())
	return cmd
}

func (a *app) roundTrip() (*roundTripReport, error) {
	sc, err := a.cfg.SpectralConfig()
	if err != nil {
		return nil, err
	}
	stft, err := spectral.NewSTFT(sc)
	if err != nil {
		return nil, err
	}
	stft.SetLogger(a.logger)

	signal := a.cfg.Signal.Generate()
	started := time.Now()

	spec, err := stft.Analyze(signal, spectral.NewLogProgress(a.logger, "analysis"))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	out, err := stft.Synthesize(spec, len(signal), spectral.NewLogProgress(a.logger, "synthesis"))
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}
	elapsed := time.Since(started)

	cola, err := windowing.COLA(stft.Weights(), sc.HopSize)
	if err != nil {
		return nil, err
	}
	if !cola.IsConstant(1e-6) {
		a.logger.Warn("window does not overlap-add to a constant at this hop; expect reconstruction error")
	}
	if cola.Gain != 0 {
		for i := range out {
			out[i] /= cola.Gain
		}
	}

	start, end := common.ReconstructionSpan(len(signal), sc.WindowSize, sc.HopSize)
	relErr, err := common.RelativeL2Error(signal[start:end], out[start:end])
	if err != nil {
		return nil, err
	}
	maxErr, err := common.MaxAbsError(signal[start:end], out[start:end])
	if err != nil {
		return nil, err
	}
	snr, err := common.SNR(signal[start:end], out[start:end])
	if err != nil {
		return nil, err
	}

	report := &roundTripReport{
		Signal:        a.cfg.Signal.Kind,
		Samples:       len(signal),
		WindowSize:    sc.WindowSize,
		HopSize:       sc.HopSize,
		Window:        sc.Window.Name(),
		Frames:        spec.Frames(),
		Bins:          spec.Bins(),
		DominantBin:   -1,
		COLAGain:      cola.Gain,
		COLADeviation: cola.Deviation,
		SpanStart:     start,
		SpanEnd:       end,
		RelativeError: relErr,
		MaxAbsError:   maxErr,
		SNR:           math.Min(snr, maxReportedSNR),
		Elapsed:       elapsed.String(),
	}
	if spec.Frames() > 0 {
		report.DominantBin = spec.DominantBin(spec.Frames() / 2)
		report.DominantHz = spectral.BinFrequency(report.DominantBin, sc.WindowSize, a.cfg.Signal.SampleRate)
	}
	return report, nil
}
