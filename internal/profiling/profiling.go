// Package profiling keeps per-frame CPU timings for slow-frame reports.
package profiling

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Sample is one named duration accumulated during the current frame
type Sample struct {
	Name     string
	Duration time.Duration
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("renderer.Render")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// TopN returns the n largest totals of the current frame, largest first
func TopN(n int) []Sample {
	mu.Lock()
	list := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		list = append(list, Sample{Name: k, Duration: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Duration == list[j].Duration {
			return list[i].Name < list[j].Name
		}
		return list[i].Duration > list[j].Duration
	})
	if n < len(list) {
		list = list[:n]
	}
	return list
}

// Field renders samples as a single structured log field
func Field(key string, samples []Sample) zap.Field {
	return zap.Object(key, zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		for _, s := range samples {
			enc.AddDuration(s.Name, s.Duration)
		}
		return nil
	}))
}
