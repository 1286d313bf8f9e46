// Package config handles loading and saving user configuration for oasis.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/f3rmion/oasis/internal/specimen"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration for oasis.
type Config struct {
	OutputDir string            `yaml:"output_dir"` // Where exported cards are written
	Timing    TimingConfig      `yaml:"timing"`
	Export    ExportConfig      `yaml:"export"`
	Assets    AssetConfig       `yaml:"assets"`
	Texts     specimen.Texts    `yaml:"texts,omitempty"`
	Presets   []specimen.Preset `yaml:"presets,omitempty"` // Overrides the built-in list when non-empty
}

// TimingConfig holds the animation and delay durations.
type TimingConfig struct {
	FillDuration        Duration `yaml:"fill_duration"`         // Watering animation; 0 generates immediately
	TrailingPause       Duration `yaml:"trailing_pause"`        // Pause at 100% before generating
	GenerateDelay       Duration `yaml:"generate_delay"`        // GENERATING -> RESULT
	LoadingTextInterval Duration `yaml:"loading_text_interval"` // Loading text rotation
	RevealTimeout       Duration `yaml:"reveal_timeout"`        // Show result even if the image is still loading
	SettleDelay         Duration `yaml:"settle_delay"`          // Pause before rasterizing
	NoticeDuration      Duration `yaml:"notice_duration"`       // How long save notices stay visible
}

// ExportConfig holds card rasterization settings.
type ExportConfig struct {
	PixelRatio int    `yaml:"pixel_ratio"` // Output scale multiplier
	Background string `yaml:"background"`  // Hex fill color, e.g. "#fdfbf7"
	FontPath   string `yaml:"font_path,omitempty"`
}

// AssetConfig holds remote image settings.
type AssetConfig struct {
	SeedImage    string   `yaml:"seed_image"`
	FetchTimeout Duration `yaml:"fetch_timeout"`
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("decoding duration: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Timing: TimingConfig{
			FillDuration:        Duration(2 * time.Second),
			TrailingPause:       Duration(600 * time.Millisecond),
			GenerateDelay:       Duration(800 * time.Millisecond),
			LoadingTextInterval: Duration(1500 * time.Millisecond),
			RevealTimeout:       Duration(3 * time.Second),
			SettleDelay:         Duration(100 * time.Millisecond),
			NoticeDuration:      Duration(3 * time.Second),
		},
		Export: ExportConfig{
			PixelRatio: 3,
			Background: "#fdfbf7",
		},
		Assets: AssetConfig{
			SeedImage:    specimen.SeedImage,
			FetchTimeout: Duration(10 * time.Second),
		},
		Texts: specimen.DefaultTexts(),
	}
}

// Load reads a config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.Texts = cfg.Texts.Merge(specimen.DefaultTexts())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDir loads FileName from dir, returning defaults when the file does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks values that would break rendering or timing.
func (c *Config) Validate() error {
	if c.Export.PixelRatio < 1 || c.Export.PixelRatio > 8 {
		return fmt.Errorf("export.pixel_ratio must be between 1 and 8, got %d", c.Export.PixelRatio)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	t := c.Timing
	for name, d := range map[string]Duration{
		"fill_duration":         t.FillDuration,
		"trailing_pause":        t.TrailingPause,
		"generate_delay":        t.GenerateDelay,
		"loading_text_interval": t.LoadingTextInterval,
		"reveal_timeout":        t.RevealTimeout,
		"settle_delay":          t.SettleDelay,
		"notice_duration":       t.NoticeDuration,
	} {
		if d < 0 {
			return fmt.Errorf("timing.%s must not be negative", name)
		}
	}
	for i, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("presets[%d]: name is required", i)
		}
	}
	return nil
}

// BackgroundColor parses the export background hex color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	col, err := colorful.Hex(c.Export.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parsing export.background %q: %w", c.Export.Background, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// ActivePresets returns the configured presets, or the built-in list when none are set.
func (c *Config) ActivePresets() []specimen.Preset {
	if len(c.Presets) == 0 {
		return specimen.DefaultPresets()
	}
	out := make([]specimen.Preset, len(c.Presets))
	copy(out, c.Presets)
	return out
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "oasis"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
