package renderer

import (
	"glquad/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	Shader *graphics.Shader
	Color  mgl32.Vec4
	Frame  uint64
	DT     float64
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext) error
	Dispose()
}
