package cmd

import (
	"fmt"

	"github.com/RyanBlaney/sonido-stft/algorithms/spectral"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

type frameSummary struct {
	Index       int     `json:"index" yaml:"index"`
	DominantBin int     `json:"dominant_bin" yaml:"dominant_bin"`
	FrequencyHz float64 `json:"frequency_hz" yaml:"frequency_hz"`
	CentroidHz  float64 `json:"centroid_hz" yaml:"centroid_hz"`
	Flux        float64 `json:"flux" yaml:"flux"`
	Energy      float64 `json:"energy" yaml:"energy"`
}

type analyzeReport struct {
	Samples    int            `json:"samples" yaml:"samples"`
	WindowSize int            `json:"window_size" yaml:"window_size"`
	HopSize    int            `json:"hop_size" yaml:"hop_size"`
	Frames     int            `json:"frames" yaml:"frames"`
	Bins       int            `json:"bins" yaml:"bins"`
	PaddedTo   int            `json:"padded_to" yaml:"padded_to"`
	FrameStats []frameSummary `json:"frame_stats" yaml:"frame_stats"`
}

func (r *analyzeReport) rows() [][2]string {
	rows := [][2]string{
		{"samples", fmt.Sprintf("%d (padded to %d)", r.Samples, r.PaddedTo)},
		{"spectrogram", fmt.Sprintf("%d frames x %d bins (nhop=%d)", r.Frames, r.Bins, r.HopSize)},
	}
	for _, f := range r.FrameStats {
		rows = append(rows, [2]string{
			fmt.Sprintf("frame %d", f.Index),
			fmt.Sprintf("bin %d (%.1f Hz) centroid %.1f Hz flux %.3e energy %.3e",
				f.DominantBin, f.FrequencyHz, f.CentroidHz, f.Flux, f.Energy),
		})
	}
	return rows
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var maxFrames int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a test signal and summarize each frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.analyze(maxFrames)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, report)
		},
	}

	addSTFTFlags(cmd.Flags())
	addSignalFlags(cmd.Flags())
	cmd.Flags().IntVar(&maxFrames, "max-frames", 16, "summarize at most this many frames (0 = all)")
	return cmd
}

func (a *app) analyze(maxFrames int) (*analyzeReport, error) {
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
	spec, err := stft.Analyze(signal, spectral.NewLogProgress(a.logger, "analysis"))
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	n := spec.Frames()
	if maxFrames > 0 {
		n = min(n, maxFrames)
	}

	power := spec.Power()
	stats := make([]frameSummary, n)
	for i := 0; i < n; i++ {
		bin := spec.DominantBin(i)
		stats[i] = frameSummary{
			Index:       i,
			DominantBin: bin,
			FrequencyHz: spectral.BinFrequency(bin, sc.WindowSize, a.cfg.Signal.SampleRate),
			CentroidHz:  spec.Centroid(i, a.cfg.Signal.SampleRate),
			Flux:        spec.Flux(i),
			Energy:      floats.Sum(power[i]) / float64(sc.WindowSize),
		}
	}

	return &analyzeReport{
		Samples:    len(signal),
		WindowSize: sc.WindowSize,
		HopSize:    sc.HopSize,
		Frames:     spec.Frames(),
		Bins:       spec.Bins(),
		PaddedTo:   spectral.PaddedLength(len(signal), sc.WindowSize, sc.HopSize),
		FrameStats: stats,
	}, nil
}
