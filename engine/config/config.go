// Package config loads the engine configuration from TOML or YAML files. Missing or zero
// values fall back to Default.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/common"
	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer/vertex_layout"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions other than .toml, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decoder is the common shape of the TOML and YAML decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

var decoders = map[Format]DecoderFunc{
	FormatTOML: func(r io.Reader) Decoder { return toml.NewDecoder(r) },
	FormatYAML: func(r io.Reader) Decoder { return yaml.NewDecoder(r) },
}

// RendererConfig configures the frame driver.
type RendererConfig struct {
	Backend        string            `toml:"backend" yaml:"backend"`
	Frames         int               `toml:"frames" yaml:"frames"`
	LogLevel       string            `toml:"log_level" yaml:"log_level"`
	VSync          bool              `toml:"vsync" yaml:"vsync"`
	DisableCulling bool              `toml:"disable_culling" yaml:"disable_culling"`
	Slots          map[string]uint32 `toml:"slots,omitempty" yaml:"slots,omitempty"`
}

// WindowConfig configures the demo window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// SceneConfig configures the demo scene.
type SceneConfig struct {
	Grid             int     `toml:"grid" yaml:"grid"`
	Spacing          float32 `toml:"spacing" yaml:"spacing"`
	SharedGeometry   bool    `toml:"shared_geometry" yaml:"shared_geometry"`
	TransparentEvery int     `toml:"transparent_every" yaml:"transparent_every"`
	Workers          int     `toml:"workers" yaml:"workers"`
	SpinSpeed        float32 `toml:"spin_speed" yaml:"spin_speed"`
}

// ProfilerConfig configures the interval profiler.
type ProfilerConfig struct {
	Enabled  bool   `toml:"enabled" yaml:"enabled"`
	Interval string `toml:"interval" yaml:"interval"`
}

// Config is the full engine configuration.
type Config struct {
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Scene    SceneConfig    `toml:"scene" yaml:"scene"`
	Profiler ProfilerConfig `toml:"profiler" yaml:"profiler"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Renderer: RendererConfig{
			Backend:  "memory",
			Frames:   120,
			LogLevel: "notice",
			VSync:    true,
		},
		Window: WindowConfig{
			Title:  "oxy-sg",
			Width:  1280,
			Height: 720,
		},
		Scene: SceneConfig{
			Grid:             8,
			Spacing:          2.5,
			SharedGeometry:   true,
			TransparentEvery: 4,
			Workers:          4,
			SpinSpeed:        0.01,
		},
		Profiler: ProfilerConfig{
			Enabled:  false,
			Interval: "1s",
		},
	}
}

// Load reads a configuration file, choosing the decoder by extension.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - Config: the loaded configuration merged over Default
//   - error: ErrUnsupportedFormat, a read or decode error, or a validation error
func Load(path string) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()

	cfg, err := Read(bufio.NewReader(fp), format)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes a configuration from r.
//
// Parameters:
//   - r: the encoded configuration
//   - format: the encoding
//
// Returns:
//   - Config: the decoded configuration merged over Default
//   - error: ErrUnsupportedFormat, a decode error, or a validation error
func Read(r io.Reader, format Format) (Config, error) {
	newDecoder, ok := decoders[format]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	cfg := Default()
	if err := newDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode %s: %w", format, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadBytes decodes a configuration from data.
func ReadBytes(data []byte, format Format) (Config, error) {
	return Read(bytes.NewReader(data), format)
}

// fillDefaults replaces values a file explicitly set to zero with the defaults.
func (c *Config) fillDefaults() {
	d := Default()
	c.Renderer.Backend = common.Coalesce(c.Renderer.Backend, d.Renderer.Backend)
	c.Renderer.Frames = common.Coalesce(c.Renderer.Frames, d.Renderer.Frames)
	c.Renderer.LogLevel = common.Coalesce(c.Renderer.LogLevel, d.Renderer.LogLevel)
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)
	c.Scene.Grid = common.Coalesce(c.Scene.Grid, d.Scene.Grid)
	c.Scene.Spacing = common.Coalesce(c.Scene.Spacing, d.Scene.Spacing)
	c.Scene.TransparentEvery = common.Coalesce(c.Scene.TransparentEvery, d.Scene.TransparentEvery)
	c.Scene.Workers = common.Coalesce(c.Scene.Workers, d.Scene.Workers)
	c.Scene.SpinSpeed = common.Coalesce(c.Scene.SpinSpeed, d.Scene.SpinSpeed)
	c.Profiler.Interval = common.Coalesce(c.Profiler.Interval, d.Profiler.Interval)
}

// Validate reports the first invalid value.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	if _, err := renderer.ParseBackend(c.Renderer.Backend); err != nil {
		return fmt.Errorf("config: renderer.backend: %w", err)
	}
	if c.Renderer.Frames < 0 {
		return fmt.Errorf("config: renderer.frames must not be negative, got %d", c.Renderer.Frames)
	}
	if _, err := log.ParseLevel(c.Renderer.LogLevel); err != nil {
		return fmt.Errorf("config: renderer.log_level: %w", err)
	}
	slots := c.SlotTable()
	seen := make(map[uint32]string)
	for _, name := range slices.Sorted(maps.Keys(slots)) {
		slot := slots[name]
		if other, ok := seen[slot]; ok {
			return fmt.Errorf("config: renderer.slots: %q and %q both use slot %d", other, name, slot)
		}
		seen[slot] = name
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("config: window size %dx%d is negative", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Grid < 0 || c.Scene.TransparentEvery < 0 || c.Scene.Workers < 0 {
		return errors.New("config: scene grid, transparent_every and workers must not be negative")
	}
	if _, err := time.ParseDuration(c.Profiler.Interval); err != nil {
		return fmt.Errorf("config: profiler.interval: %w", err)
	}
	return nil
}

// SlotTable returns the default attribute slots with the configured overrides applied.
func (c Config) SlotTable() vertex_layout.Slots {
	slots := vertex_layout.DefaultSlots()
	maps.Copy(slots, c.Renderer.Slots)
	return slots
}

// Backend returns the parsed renderer backend. The configuration must be valid.
func (c Config) Backend() renderer.RendererBackendType {
	b, _ := renderer.ParseBackend(c.Renderer.Backend)
	return b
}

// Level returns the parsed log level. The configuration must be valid.
func (c Config) Level() log.Level {
	l, _ := log.ParseLevel(c.Renderer.LogLevel)
	return l
}

// ProfilerInterval returns the parsed profiler interval. The configuration must be valid.
func (c Config) ProfilerInterval() time.Duration {
	d, _ := time.ParseDuration(c.Profiler.Interval)
	return d
}

// WriteTOML encodes c as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: an encode or write error
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
