package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Per-frame timings and counters for the chunk pipeline.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCounts = make(map[string]int)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.ComputeLight")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// Count adds n to a per-frame counter, e.g. chunks meshed this frame.
func Count(name string, n int) {
	mu.Lock()
	frameCounts[name] += n
	mu.Unlock()
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCounts)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// Counter returns the current value of a per-frame counter.
func Counter(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameCounts[name]
}

// TopN formats the n slowest entries of the current frame,
// e.g. "meshing.Build:4.2ms, world.ComputeLight:1.1ms".
func TopN(n int) string {
	ss := Snapshot()
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, entry{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	n = min(n, len(list))

	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		sb.WriteString(list[i].name)
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatFloat(ms, 'f', 1, 64))
		sb.WriteString("ms")
	}
	return sb.String()
}
