package quad

import (
	"glquad/internal/graphics"
	renderer "glquad/internal/graphics/renderer"
	"glquad/internal/profiling"

	"github.com/go-gl/gl/v3.3-core/gl"
)

const (
	floatSize  = 4
	uint32Size = 4
	components = 2 // x,y per vertex
)

// Positions are the quad corners in normalized device coordinates
var Positions = []float32{
	-0.5, -0.5, // 0
	0.5, -0.5, // 1
	0.5, 0.5, // 2
	-0.5, 0.5, // 3
}

// Indices describe two counter-clockwise triangles sharing the 0-2 diagonal
var Indices = []uint32{
	0, 1, 2,
	2, 3, 0,
}

// Quad draws an indexed, single-colored rectangle
type Quad struct {
	uniform string
	debugGL bool

	vao uint32
	vbo uint32
	ibo uint32
}

// NewQuad creates a quad that writes the frame color into uniform
func NewQuad(uniform string, debugGL bool) *Quad {
	return &Quad{uniform: uniform, debugGL: debugGL}
}

// Init uploads the vertex and index buffers
func (q *Quad) Init() error {
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Positions)*floatSize, gl.Ptr(Positions), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, components, gl.FLOAT, false, components*floatSize, 0)

	// The element buffer binding is VAO state; keep the VAO bound while binding it.
	gl.GenBuffers(1, &q.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(Indices)*uint32Size, gl.Ptr(Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	return graphics.Check("quad.Init")
}

// Render sets the color uniform and draws both triangles
func (q *Quad) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("renderer.renderQuad")()

	ctx.Shader.Use()
	if err := ctx.Shader.SetVec4(q.uniform, ctx.Color); err != nil {
		return err
	}

	gl.BindVertexArray(q.vao)
	draw := func() {
		gl.DrawElements(gl.TRIANGLES, int32(len(Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	if !q.debugGL {
		draw()
		return nil
	}
	return graphics.Call("glDrawElements", draw)
}

// Dispose deletes the GPU buffers
func (q *Quad) Dispose() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.ibo != 0 {
		gl.DeleteBuffers(1, &q.ibo)
		q.ibo = 0
	}
}
