package app

import (
	"fmt"

	"glquad/internal/config"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow creates the window, makes its context current and loads GL.
// glfw.Init must already have succeeded.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.ContextMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.ContextMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, boolHint(cfg.ForwardCompatible))
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("could not initialize OpenGL bindings: %w", err)
	}

	glfw.SwapInterval(cfg.SwapInterval)

	return window, nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
