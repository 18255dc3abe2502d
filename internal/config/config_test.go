package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glquad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "Hello World", cfg.Window.Title)
	assert.Equal(t, 1, cfg.Window.SwapInterval)
	assert.Equal(t, "u_Color", cfg.Shader.Uniform)
	assert.Equal(t, mgl32.Vec4{0.8, 0.3, 0.8, 1.0}, Vec4(cfg.Animation.Initial))
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 1024
  title: quad
  swap_interval: 0
  fps_limit: 60
shader:
  path: shaders/custom.shader
  watch: true
animation:
  channel: 2
  step: 0.01
debug_gl: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, "quad", cfg.Window.Title)
	assert.Equal(t, 0, cfg.Window.SwapInterval)
	assert.Equal(t, 60, cfg.Window.FPSLimit)
	assert.Equal(t, "shaders/custom.shader", cfg.Shader.Path)
	assert.Equal(t, "u_Color", cfg.Shader.Uniform)
	assert.True(t, cfg.Shader.Watch)
	assert.Equal(t, 2, cfg.Animation.Channel)
	assert.InDelta(t, 0.01, cfg.Animation.Step, 1e-6)
	assert.True(t, cfg.DebugGL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "window: [not, a, map]"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "animation:\n  base: [1, 2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base must have 4 components")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size must be positive"},
		{"old context", func(c *Config) { c.Window.ContextMajor, c.Window.ContextMinor = 3, 2 }, "below 3.3"},
		{"no shader", func(c *Config) { c.Shader.Path = "" }, "shader path is empty"},
		{"no uniform", func(c *Config) { c.Shader.Uniform = "" }, "shader uniform is empty"},
		{"bad channel", func(c *Config) { c.Animation.Channel = 4 }, "channel must be 0..3"},
		{"zero step", func(c *Config) { c.Animation.Step = 0 }, "step must be in (0, 1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Default()
	cfg.Window.SwapInterval = -1
	cfg.Window.FPSLimit = -30
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0, cfg.Window.SwapInterval)
	assert.Equal(t, 0, cfg.Window.FPSLimit)
}

func TestVec4(t *testing.T) {
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 4}, Vec4([]float32{1, 2, 3, 4}))
	assert.Equal(t, mgl32.Vec4{1, 2, 0, 0}, Vec4([]float32{1, 2}))
}
