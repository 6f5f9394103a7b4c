package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sg/engine/log"
	"github.com/Carmen-Shannon/oxy-sg/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, renderer.BackendTypeMemory, d.Backend())
	assert.Equal(t, log.Notice, d.Level())
	assert.Equal(t, time.Second, d.ProfilerInterval())
	assert.Equal(t, uint32(0), d.SlotTable()["position"])
}

func TestReadTOML(t *testing.T) {
	cfg, err := ReadBytes([]byte(`
[renderer]
backend = "wgpu"
frames = 10
log_level = "debug"

[renderer.slots]
custom = 9

[window]
width = 640

[scene]
grid = 3
shared_geometry = false
`), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, renderer.BackendTypeWGPU, cfg.Backend())
	assert.Equal(t, 10, cfg.Renderer.Frames)
	assert.Equal(t, log.Debug, cfg.Level())
	assert.Equal(t, uint32(9), cfg.SlotTable()["custom"])
	assert.Equal(t, uint32(3), cfg.SlotTable()["uv"], "defaults kept")
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "absent keys keep defaults")
	assert.Equal(t, 3, cfg.Scene.Grid)
	assert.False(t, cfg.Scene.SharedGeometry)
	assert.True(t, cfg.Renderer.VSync)
}

func TestReadYAML(t *testing.T) {
	cfg, err := ReadBytes([]byte(`
renderer:
  frames: 0
  slots:
    normal: 11
scene:
  spacing: 4
profiler:
  enabled: true
  interval: 250ms
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, Default().Renderer.Frames, cfg.Renderer.Frames, "zero falls back")
	assert.Equal(t, uint32(11), cfg.SlotTable()["normal"])
	assert.Equal(t, float32(4), cfg.Scene.Spacing)
	assert.True(t, cfg.Profiler.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.ProfilerInterval())
}

func TestEmptyYAMLGivesDefaults(t *testing.T) {
	cfg, err := ReadBytes(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"negative frames": "[renderer]\nframes = -1\n",
		"unknown backend": "[renderer]\nbackend = \"vulkan\"\n",
		"duplicate slot":  "[renderer.slots]\ncustom = 0\n",
		"bad log level":   "[renderer]\nlog_level = \"loud\"\n",
		"bad interval":    "[profiler]\ninterval = \"soon\"\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadBytes([]byte(input), FormatTOML)
			assert.Error(t, err)
		})
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: demo\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = Load(filepath.Join(dir, "engine.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTOMLRoundTrips(t *testing.T) {
	want := Default()
	want.Renderer.Slots = map[string]uint32{"custom": 12}
	want.Scene.Grid = 5

	var buf bytes.Buffer
	require.NoError(t, want.WriteTOML(&buf))
	got, err := ReadBytes(buf.Bytes(), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
