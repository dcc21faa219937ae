package clock

import "time"

const (
	// idleFPS caps the loop while the window is minimised.
	idleFPS = 15
	// spinWindow is the tail of each wait spent polling instead of sleeping.
	spinWindow = 200 * time.Microsecond
)

// FrameLimiter paces the frame loop to a rate read at every frame, so
// runtime changes to the cap apply immediately.
type FrameLimiter struct {
	limit    func() int
	deadline time.Time
	missed   int
}

// NewFrameLimiter creates a limiter; limit returns the target FPS, 0 for uncapped.
func NewFrameLimiter(limit func() int) *FrameLimiter {
	return &FrameLimiter{limit: limit}
}

// Missed returns how many frames overran their deadline by a whole interval.
func (l *FrameLimiter) Missed() int { return l.missed }

func (l *FrameLimiter) interval(idle bool) time.Duration {
	fps := l.limit()
	if idle && (fps <= 0 || fps > idleFPS) {
		fps = idleFPS
	}
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Wait blocks until the next frame deadline and returns how long it waited.
// Deadlines advance by whole intervals so the average rate does not drift.
func (l *FrameLimiter) Wait(idle bool) time.Duration {
	step := l.interval(idle)
	if step == 0 {
		l.deadline = time.Time{}
		return 0
	}

	start := time.Now()
	if l.deadline.IsZero() {
		l.deadline = start.Add(step)
	} else {
		l.deadline = l.deadline.Add(step)
	}

	if behind := start.Sub(l.deadline); behind > step {
		// a hitch: skip the missed frames rather than run them back to back
		l.missed++
		l.deadline = start.Add(step)
		return 0
	}

	if rest := time.Until(l.deadline) - spinWindow; rest > 0 {
		time.Sleep(rest)
	}
	for time.Now().Before(l.deadline) {
	}
	return time.Since(start)
}
