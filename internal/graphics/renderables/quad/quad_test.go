package quad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry(t *testing.T) {
	require.Len(t, Positions, 4*components)
	require.Len(t, Indices, 6)

	vertexCount := uint32(len(Positions) / components)
	for _, idx := range Indices {
		assert.Less(t, idx, vertexCount)
	}
}

func TestTrianglesAreCounterClockwise(t *testing.T) {
	vertex := func(i uint32) (float32, float32) {
		return Positions[i*components], Positions[i*components+1]
	}
	for tri := 0; tri < len(Indices); tri += 3 {
		ax, ay := vertex(Indices[tri])
		bx, by := vertex(Indices[tri+1])
		cx, cy := vertex(Indices[tri+2])
		area := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
		assert.Positive(t, area, "triangle %d", tri/3)
	}
}

func TestDisposeWithoutInit(t *testing.T) {
	q := NewQuad("u_Color", false)
	q.Dispose()
	assert.Zero(t, q.vao)
}
