package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTopN(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	record("renderer.Render", 3*time.Millisecond)
	record("glfw.SwapBuffers", 5*time.Millisecond)
	record("glfw.PollEvents", time.Millisecond)
	record("renderer.Render", time.Millisecond)

	top := TopN(2)
	require.Len(t, top, 2)
	assert.Equal(t, Sample{"glfw.SwapBuffers", 5 * time.Millisecond}, top[0])
	assert.Equal(t, Sample{"renderer.Render", 4 * time.Millisecond}, top[1])

	assert.Len(t, TopN(10), 3)
}

func TestTrackAndReset(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	stop := Track("shader.Reload")
	time.Sleep(time.Millisecond)
	stop()

	top := TopN(1)
	require.Len(t, top, 1)
	assert.Equal(t, "shader.Reload", top[0].Name)
	assert.GreaterOrEqual(t, top[0].Duration, time.Millisecond)

	ResetFrame()
	assert.Empty(t, TopN(5))
}

func TestField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	logger.Info("slow frame", Field("top", []Sample{{"renderer.Render", 2 * time.Millisecond}}))

	entries := logs.All()
	require.Len(t, entries, 1)
	top, ok := entries[0].ContextMap()["top"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2*time.Millisecond, top["renderer.Render"])
}
