package renderer

import (
	"glquad/internal/profiling"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Renderer clears the frame and draws each renderable in order
type Renderer struct {
	renderables []Renderable
	logger      *zap.Logger
	clearColor  mgl32.Vec4
}

// NewRenderer initializes the given renderables. On failure the ones already
// initialized are disposed.
func NewRenderer(logger *zap.Logger, clearColor mgl32.Vec4, rs ...Renderable) (*Renderer, error) {
	r := &Renderer{
		logger:     logger,
		clearColor: clearColor,
	}

	for _, renderable := range rs {
		if err := renderable.Init(); err != nil {
			r.Dispose()
			return nil, err
		}
		r.renderables = append(r.renderables, renderable)
	}

	return r, nil
}

// Render clears the color buffer and draws every renderable
func (r *Renderer) Render(ctx RenderContext) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	for i, renderable := range r.renderables {
		if err := renderable.Render(ctx); err != nil {
			r.logger.Error("render failed", zap.Int("renderable", i), zap.Uint64("frame", ctx.Frame), zap.Error(err))
		}
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// UpdateViewport resizes the GL viewport to the framebuffer size
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}
