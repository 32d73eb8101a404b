package configs

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-stft/algorithms/common"
	"github.com/RyanBlaney/sonido-stft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SONIDO_STFT_STFT_HOP_SIZE
const EnvPrefix = "SONIDO_STFT"

// Config represents the application configuration
type Config struct {
	LogLevel     string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	OutputFormat string `mapstructure:"output_format" json:"output_format" yaml:"output_format"`

	STFT   STFTConfig   `mapstructure:"stft" json:"stft" yaml:"stft"`
	Signal SignalConfig `mapstructure:"signal" json:"signal" yaml:"signal"`
}

// STFTConfig contains the analysis/synthesis parameters
type STFTConfig struct {
	WindowSize     int     `mapstructure:"window_size" json:"window_size" yaml:"window_size"`
	HopSize        int     `mapstructure:"hop_size" json:"hop_size" yaml:"hop_size"`
	Window         string  `mapstructure:"window" json:"window" yaml:"window"`
	Symmetric      bool    `mapstructure:"symmetric" json:"symmetric" yaml:"symmetric"`
	Transform      string  `mapstructure:"transform" json:"transform" yaml:"transform"`
	Workers        int     `mapstructure:"workers" json:"workers" yaml:"workers"`
	MaxImagResidue float64 `mapstructure:"max_imag_residue" json:"max_imag_residue" yaml:"max_imag_residue"`
}

// SignalConfig describes the synthetic test signal fed to the engine
type SignalConfig struct {
	Kind       string  `mapstructure:"kind" json:"kind" yaml:"kind"` // "sine", "noise", "impulse"
	SampleRate int     `mapstructure:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	Frequency  float64 `mapstructure:"frequency" json:"frequency" yaml:"frequency"`
	Amplitude  float64 `mapstructure:"amplitude" json:"amplitude" yaml:"amplitude"`
	Length     int     `mapstructure:"length" json:"length" yaml:"length"`
	Seed       int64   `mapstructure:"seed" json:"seed" yaml:"seed"`
}

// SetDefaults registers default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "table")

	v.SetDefault("stft.window_size", spectral.DefaultWindowSize)
	v.SetDefault("stft.hop_size", spectral.DefaultHopSize)
	v.SetDefault("stft.window", "hann")
	v.SetDefault("stft.symmetric", false)
	v.SetDefault("stft.transform", "go-dsp")
	v.SetDefault("stft.workers", 0)
	v.SetDefault("stft.max_imag_residue", 0.0)

	v.SetDefault("signal.kind", "sine")
	v.SetDefault("signal.sample_rate", 44100)
	v.SetDefault("signal.frequency", 1000.0)
	v.SetDefault("signal.amplitude", 0.8)
	v.SetDefault("signal.length", 44100)
	v.SetDefault("signal.seed", 1)
}

// Load reads defaults, environment and the optional config file into a Config
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot type-check
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (table, json, yaml)", c.OutputFormat)
	}

	if _, err := c.SpectralConfig(); err != nil {
		return err
	}

	switch c.Signal.Kind {
	case "sine", "noise", "impulse":
	default:
		return fmt.Errorf("unknown signal kind %q (sine, noise, impulse)", c.Signal.Kind)
	}
	if c.Signal.SampleRate <= 0 {
		return fmt.Errorf("signal sample rate must be positive, got %d", c.Signal.SampleRate)
	}
	if c.Signal.Length < 0 {
		return fmt.Errorf("signal length must not be negative, got %d", c.Signal.Length)
	}
	return nil
}

// SpectralConfig resolves window and transform names into an engine config
func (c *Config) SpectralConfig() (*spectral.Config, error) {
	window, err := windowing.ByName(c.STFT.Window, c.STFT.Symmetric)
	if err != nil {
		return nil, err
	}

	transform, err := spectral.NewTransformer(c.STFT.Transform)
	if err != nil {
		return nil, err
	}

	cfg := &spectral.Config{
		WindowSize:     c.STFT.WindowSize,
		HopSize:        c.STFT.HopSize,
		Window:         window,
		Transform:      transform,
		Workers:        c.STFT.Workers,
		MaxImagResidue: c.STFT.MaxImagResidue,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Generate renders the configured test signal
func (s SignalConfig) Generate() []float64 {
	switch s.Kind {
	case "noise":
		return common.Noise(s.Seed, s.Amplitude, s.Length)
	case "impulse":
		return common.Impulse(s.Length, s.Length/2)
	default:
		return common.Sine(s.Frequency, float64(s.SampleRate), s.Amplitude, s.Length)
	}
}
