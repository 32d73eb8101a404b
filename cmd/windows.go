package cmd

import (
	"fmt"

	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/spf13/cobra"
)

type windowReport struct {
	Name      string  `json:"name" yaml:"name"`
	Gain      float64 `json:"gain" yaml:"gain"`
	Deviation float64 `json:"deviation" yaml:"deviation"`
	COLA      bool    `json:"cola" yaml:"cola"`
}

type windowsReport struct {
	WindowSize int            `json:"window_size" yaml:"window_size"`
	HopSize    int            `json:"hop_size" yaml:"hop_size"`
	Symmetric  bool           `json:"symmetric" yaml:"symmetric"`
	Windows    []windowReport `json:"windows" yaml:"windows"`
}

func (r *windowsReport) rows() [][2]string {
	rows := [][2]string{{"window", fmt.Sprintf("overlap sum at nfft=%d nhop=%d", r.WindowSize, r.HopSize)}}
	for _, w := range r.Windows {
		verdict := "ripple"
		if w.COLA {
			verdict = "constant"
		}
		rows = append(rows, [2]string{w.Name, fmt.Sprintf("gain %.4f deviation %.2e %s", w.Gain, w.Deviation, verdict)})
	}
	return rows
}

func newWindowsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List windows and whether they overlap-add to a constant at the configured hop",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.windows()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.OutputFormat, report)
		},
	}

	addSTFTFlags(cmd.Flags())
	return cmd
}

func (a *app) windows() (*windowsReport, error) {
	stft := a.cfg.STFT
	report := &windowsReport{
		WindowSize: stft.WindowSize,
		HopSize:    stft.HopSize,
		Symmetric:  stft.Symmetric,
	}

	for _, name := range windowing.Names() {
		w, err := windowing.ByName(name, stft.Symmetric)
		if err != nil {
			return nil, err
		}
		res, err := windowing.CheckCOLA(w, stft.WindowSize, stft.HopSize)
		if err != nil {
			return nil, err
		}
		report.Windows = append(report.Windows, windowReport{
			Name:      name,
			Gain:      res.Gain,
			Deviation: res.Deviation,
			COLA:      res.IsConstant(1e-9),
		})
	}
	return report, nil
}

func windowNames() []string {
	return windowing.Names()
}
