package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/RyanBlaney/sonido-stft/configs"
	"github.com/RyanBlaney/sonido-stft/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the configuration resolved before a subcommand runs
type app struct {
	v      *viper.Viper
	cfg    *configs.Config
	logger logging.Logger
}

// NewRootCommand builds the command tree with its own viper instance
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	var configFile string

	root := &cobra.Command{
		Use:   "sonido-stft",
		Short: "Short-time Fourier analysis and overlap-add resynthesis",
		Long: `sonido-stft runs the STFT engine on synthetic signals.

It splits a waveform into overlapping windowed frames, transforms each frame,
and rebuilds the waveform by overlap-add, reporting shape and reconstruction
error along the way.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
			}
			if err := bindFlags(cmd, a.v); err != nil {
				return err
			}
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")

	root.AddCommand(
		newRoundTripCommand(a),
		newAnalyzeCommand(a),
		newWindowsCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	cfg, err := configs.Load(a.v)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	// reports go to stdout, logs stay on stderr
	logger := logging.NewDefaultLoggerWithWriters(os.Stderr, os.Stderr)
	logger.SetLevel(level)
	logging.SetGlobalLogger(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// flagKeys maps flag names to their configuration keys
var flagKeys = map[string]string{
	"log-level":        "log_level",
	"output":           "output_format",
	"window-size":      "stft.window_size",
	"hop-size":         "stft.hop_size",
	"window":           "stft.window",
	"symmetric":        "stft.symmetric",
	"transform":        "stft.transform",
	"workers":          "stft.workers",
	"max-imag-residue": "stft.max_imag_residue",
	"signal":           "signal.kind",
	"sample-rate":      "signal.sample_rate",
	"frequency":        "signal.frequency",
	"amplitude":        "signal.amplitude",
	"length":           "signal.length",
	"seed":             "signal.seed",
}

// bindFlags binds every known flag of cmd (local and inherited) to viper
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// addSTFTFlags registers the engine flags shared by the subcommands
func addSTFTFlags(fs *pflag.FlagSet) {
	fs.Int("window-size", 1024, "analysis frame length in samples (nfft)")
	fs.Int("hop-size", 512, "distance between frame starts in samples (nhop)")
	fs.String("window", "hann", "window function ("+strings.Join(windowNames(), ", ")+")")
	fs.Bool("symmetric", false, "use the symmetric instead of the periodic window")
	fs.String("transform", "go-dsp", "transform backend (go-dsp, gonum)")
	fs.Int("workers", 0, "frame workers (0 = auto, 1 = serial)")
	fs.Float64("max-imag-residue", 0, "fail synthesis if a frame's imaginary residue exceeds this (0 = discard)")
}

// addSignalFlags registers the synthetic signal flags
func addSignalFlags(fs *pflag.FlagSet) {
	fs.String("signal", "sine", "signal kind (sine, noise, impulse)")
	fs.Int("sample-rate", 44100, "sample rate in Hz")
	fs.Float64("frequency", 1000, "sine frequency in Hz")
	fs.Float64("amplitude", 0.8, "peak amplitude")
	fs.Int("length", 44100, "signal length in samples")
	fs.Int64("seed", 1, "noise seed")
}
