// Package clock holds the frame timing used by the render loop.
package clock

import "time"

// FrameState carries per-frame timing and counters across ticks.
type FrameState struct {
	Last          time.Time
	Dt            float64
	Frames        int
	FPS           int
	windowStart   time.Time
	ShowProfiling bool
}

// Advance moves the state to now and updates the FPS counter once a second.
func (s *FrameState) Advance(now time.Time) {
	if s.Last.IsZero() {
		s.Last = now
		s.windowStart = now
	}
	s.Dt = now.Sub(s.Last).Seconds()
	s.Last = now
	s.Frames++
	if elapsed := now.Sub(s.windowStart); elapsed >= time.Second {
		s.FPS = int(float64(s.Frames) / elapsed.Seconds())
		s.Frames = 0
		s.windowStart = now
	}
}
