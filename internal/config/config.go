package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config holds the window, shader and animation settings
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Shader    ShaderConfig    `yaml:"shader"`
	Animation AnimationConfig `yaml:"animation"`

	// DebugGL checks glGetError around the draw call every frame
	DebugGL bool `yaml:"debug_gl"`
}

// WindowConfig configures the GLFW window and its context
type WindowConfig struct {
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
	Title             string `yaml:"title"`
	ContextMajor      int    `yaml:"context_major"`
	ContextMinor      int    `yaml:"context_minor"`
	ForwardCompatible bool   `yaml:"forward_compatible"`
	Resizable         bool   `yaml:"resizable"`
	SwapInterval      int    `yaml:"swap_interval"`
	FPSLimit          int    `yaml:"fps_limit"` // 0 = unlimited; only used with swap_interval 0
}

// ShaderConfig configures where the program source comes from
type ShaderConfig struct {
	Path    string `yaml:"path"`
	Uniform string `yaml:"uniform"`
	Watch   bool   `yaml:"watch"`
}

// AnimationConfig configures the pulsing color uniform
type AnimationConfig struct {
	Initial    []float32 `yaml:"initial"` // uploaded once before the first frame
	Base       []float32 `yaml:"base"`
	Channel    int       `yaml:"channel"`
	Start      float32   `yaml:"start"`
	Step       float32   `yaml:"step"`
	ClearColor []float32 `yaml:"clear_color"`
}

// Default returns the stock 640x480 "Hello World" settings
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:             640,
			Height:            480,
			Title:             "Hello World",
			ContextMajor:      3,
			ContextMinor:      3,
			ForwardCompatible: true,
			Resizable:         true,
			SwapInterval:      1,
		},
		Shader: ShaderConfig{
			Path:    "res/shaders/Basic.shader",
			Uniform: "u_Color",
		},
		Animation: AnimationConfig{
			Initial:    []float32{0.8, 0.3, 0.8, 1.0},
			Base:       []float32{0.0, 0.3, 0.8, 1.0},
			Channel:    0,
			Start:      0,
			Step:       0.05,
			ClearColor: []float32{0, 0, 0, 1},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings and clamps values that have a safe fallback
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.ContextMajor < 3 || (c.Window.ContextMajor == 3 && c.Window.ContextMinor < 3) {
		errs = append(errs, fmt.Errorf("context version %d.%d is below 3.3 core", c.Window.ContextMajor, c.Window.ContextMinor))
	}
	if c.Window.SwapInterval < 0 {
		c.Window.SwapInterval = 0
	}
	if c.Window.FPSLimit < 0 {
		c.Window.FPSLimit = 0
	}
	if c.Shader.Path == "" {
		errs = append(errs, errors.New("shader path is empty"))
	}
	if c.Shader.Uniform == "" {
		errs = append(errs, errors.New("shader uniform is empty"))
	}
	if c.Animation.Channel < 0 || c.Animation.Channel > 3 {
		errs = append(errs, fmt.Errorf("animation channel must be 0..3, got %d", c.Animation.Channel))
	}
	if c.Animation.Step <= 0 || c.Animation.Step > 1 {
		errs = append(errs, fmt.Errorf("animation step must be in (0, 1], got %v", c.Animation.Step))
	}
	for name, v := range map[string][]float32{
		"initial":     c.Animation.Initial,
		"base":        c.Animation.Base,
		"clear_color": c.Animation.ClearColor,
	} {
		if len(v) != 4 {
			errs = append(errs, fmt.Errorf("animation %s must have 4 components, got %d", name, len(v)))
		}
	}

	return errors.Join(errs...)
}

// Vec4 converts a validated 4-component slice
func Vec4(v []float32) mgl32.Vec4 {
	var out mgl32.Vec4
	copy(out[:], v)
	return out
}
