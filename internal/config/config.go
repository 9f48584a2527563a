// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ik5/wavefmt/filter"
	"github.com/ik5/wavefmt/formats/wav"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Output   OutputConfig `mapstructure:"output"`
	Filter   FilterConfig `mapstructure:"filter"`
}

type OutputConfig struct {
	Format   string        `mapstructure:"format"`
	Duration time.Duration `mapstructure:"duration"`
	Downmix  bool          `mapstructure:"downmix"`
}

type FilterConfig struct {
	Name     string    `mapstructure:"name"`
	Gain     float64   `mapstructure:"gain"`
	Delay    float64   `mapstructure:"delay"`
	Feedback bool      `mapstructure:"feedback"`
	Mix      float64   `mapstructure:"mix"`
	Cutoff   float64   `mapstructure:"cutoff"`
	Q        float64   `mapstructure:"q"`
	B        []float64 `mapstructure:"b"`
	A        []float64 `mapstructure:"a"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Output: OutputConfig{
			Format:   "pcm",
			Duration: 0,
			Downmix:  false,
		},
		Filter: FilterConfig{
			Name:   "identity",
			Gain:   1,
			Delay:  0,
			Mix:    0.5,
			Cutoff: 1000,
			Q:      0.7071,
		},
	}
}

// flagKeys maps configuration keys to their command line flags.
var flagKeys = map[string]string{
	"log_level":       "log-level",
	"output.format":   "format",
	"output.duration": "duration",
	"output.downmix":  "downmix",
	"filter.name":     "filter",
	"filter.gain":     "gain",
	"filter.delay":    "delay",
	"filter.feedback": "feedback",
	"filter.mix":      "mix",
	"filter.cutoff":   "cutoff",
	"filter.q":        "q",
	"filter.b":        "b",
	"filter.a":        "a",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("format", defaults.Output.Format, "Output encoding (pcm|float)")
	fs.Duration("duration", defaults.Output.Duration, "Output duration; 0 keeps the input length")
	fs.Bool("downmix", defaults.Output.Downmix, "Average multichannel input to mono")
	fs.String("filter", defaults.Filter.Name, "Filter name (see `wavefmt filter --help`)")
	fs.Float64("gain", defaults.Filter.Gain, "Gain factor for the gain filter")
	fs.Float64("delay", defaults.Filter.Delay, "Delay in seconds for the echo and delay filters")
	fs.Bool("feedback", defaults.Filter.Feedback, "Use a feedback echo instead of feed forward")
	fs.Float64("mix", defaults.Filter.Mix, "Gain of the delayed signal in the echo filter")
	fs.Float64("cutoff", defaults.Filter.Cutoff, "Cutoff frequency in Hz for lowpass and highpass")
	fs.Float64("q", defaults.Filter.Q, "Quality factor for lowpass and highpass")
	fs.StringSlice("b", formatFloats(defaults.Filter.B), "Feed forward coefficients for the iir filter")
	fs.StringSlice("a", formatFloats(defaults.Filter.A), "Feedback coefficients for the iir filter")
}

func formatFloats(v []float64) []string {
	out := make([]string, 0, len(v))
	for _, f := range v {
		out = append(out, fmt.Sprint(f))
	}
	return out
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	v.SetEnvPrefix("WAVEFMT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wavefmt")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.duration", c.Output.Duration)
	v.SetDefault("output.downmix", c.Output.Downmix)
	v.SetDefault("filter.name", c.Filter.Name)
	v.SetDefault("filter.gain", c.Filter.Gain)
	v.SetDefault("filter.delay", c.Filter.Delay)
	v.SetDefault("filter.feedback", c.Filter.Feedback)
	v.SetDefault("filter.mix", c.Filter.Mix)
	v.SetDefault("filter.cutoff", c.Filter.Cutoff)
	v.SetDefault("filter.q", c.Filter.Q)
	v.SetDefault("filter.b", c.Filter.B)
	v.SetDefault("filter.a", c.Filter.A)
}

// bindFlags binds each known flag under its dotted key, so flags only win
// over files and environment when set explicitly.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// ParseFormat maps the output.format value to a WAVE format code.
func ParseFormat(s string) (wav.AudioFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pcm", "pcm16", "":
		return wav.FormatPCM, nil
	case "float", "float32":
		return wav.FormatIEEEFloat, nil
	}

	return 0, fmt.Errorf("%w: output format %q, want pcm or float", wav.ErrUnsupportedFormat, s)
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return lvl, nil
}

// Params converts the filter section into factory parameters.
func (c FilterConfig) Params() filter.Params {
	return filter.Params{
		Gain:     c.Gain,
		Delay:    c.Delay,
		Feedback: c.Feedback,
		Mix:      c.Mix,
		Cutoff:   c.Cutoff,
		Q:        c.Q,
		B:        c.B,
		A:        c.A,
	}
}
