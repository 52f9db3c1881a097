// Package config loads engine settings from YAML or TOML files and turns them into the
// builder options of the loader and window packages and a configured zerolog logger.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a config document.
type Format int

const (
	// FormatYAML is a YAML document.
	FormatYAML Format = iota

	// FormatTOML is a TOML document.
	FormatTOML
)

// Config is the root of a config document. Absent keys keep the values from Default.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Loader LoaderConfig `mapstructure:"loader"`
	Window WindowConfig `mapstructure:"window"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, fatal, panic or disabled.
	Level string `mapstructure:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `mapstructure:"format"`
}

// LoaderConfig configures the asynchronous shader loader.
type LoaderConfig struct {
	Workers  int           `mapstructure:"workers"`
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max"`
	Root     string        `mapstructure:"root"`
}

// WindowConfig configures the window and its GL context.
type WindowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	VSync     bool   `mapstructure:"vsync"`
	GLVersion string `mapstructure:"gl_version"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Loader: LoaderConfig{
			Workers:  4,
			Timeout:  30 * time.Second,
			RetryMax: 3,
		},
		Window: WindowConfig{
			Title:     "oxy-gl",
			Width:     1280,
			Height:    720,
			VSync:     true,
			GLVersion: "2.1",
		},
	}
}

// Load reads and parses a config file. The format is chosen from the extension:
// .yaml and .yml are YAML, .toml is TOML.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the parsed configuration over the defaults
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return Config{}, errors.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	return Parse(data, format)
}

// Parse decodes a config document. Unknown keys are an error.
//
// Parameters:
//   - data: the document
//   - format: its encoding
//
// Returns:
//   - Config: the parsed configuration over the defaults
//   - error: error if the document is malformed or has unknown keys
func Parse(data []byte, format Format) (Config, error) {
	raw := map[string]any{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, errors.Wrap(err, "config: yaml")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, errors.Wrap(err, "config: toml")
		}
	default:
		return Config{}, errors.Errorf("config: unknown format %d", format)
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "config: decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if _, _, err := cfg.Window.glVersion(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds the process logger described by the Log section.
//
// Parameters:
//   - w: where log lines are written
//
// Returns:
//   - zerolog.Logger: the configured logger
//   - error: error if the level name is unknown
func (c Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "config: log level %q", c.Log.Level)
	}
	out := w
	switch strings.ToLower(c.Log.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "json":
	default:
		return zerolog.Nop(), errors.Errorf("config: log format %q", c.Log.Format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// LoaderOptions returns the loader builder options for the Loader section.
//
// Parameters:
//   - logger: the logger handed to the loader
//
// Returns:
//   - []loader.LoaderBuilderOption: the options
func (c Config) LoaderOptions(logger zerolog.Logger) []loader.LoaderBuilderOption {
	opts := []loader.LoaderBuilderOption{
		loader.WithWorkers(c.Loader.Workers),
		loader.WithTimeout(c.Loader.Timeout),
		loader.WithRetryMax(c.Loader.RetryMax),
		loader.WithLogger(logger),
	}
	if c.Loader.Root != "" {
		opts = append(opts, loader.WithRoot(c.Loader.Root))
	}
	return opts
}

// WindowOptions returns the window builder options for the Window section.
//
// Returns:
//   - []window.WindowBuilderOption: the options
func (c Config) WindowOptions() []window.WindowBuilderOption {
	opts := []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithVSync(c.Window.VSync),
	}
	if major, minor, err := c.Window.glVersion(); err == nil {
		opts = append(opts, window.WithGLVersion(major, minor))
	}
	return opts
}

// glVersion parses "major.minor".
func (w WindowConfig) glVersion() (int, int, error) {
	majorStr, minorStr, ok := strings.Cut(w.GLVersion, ".")
	if !ok {
		return 0, 0, errors.Errorf("config: gl_version %q is not major.minor", w.GLVersion)
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "config: gl_version %q", w.GLVersion)
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "config: gl_version %q", w.GLVersion)
	}
	return major, minor, nil
}
