package config

import "sync"

// Render distance bounds in voxels.
const (
	MinRenderDistance = 32
	MaxRenderDistance = 512
)

// RenderSettings holds the settings input handlers may change while running.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in voxels
	fpsLimit       int // 0 means uncapped
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 160,
	fpsLimit:       60,
}

// GetRenderDistance returns the current render distance in voxels
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in voxels
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < MinRenderDistance {
		distance = MinRenderDistance
	}
	if distance > MaxRenderDistance {
		distance = MaxRenderDistance
	}

	globalRenderSettings.renderDistance = distance
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; negative values mean uncapped
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRenderSettings.fpsLimit = limit
}
