package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionFlyUp
	ActionFlyDown
	ActionSprint
	ActionRenderDistanceUp
	ActionRenderDistanceDown
	ActionToggleProfiling
	ActionReleaseMouse
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys to actions and tracks mouse movement.
// GLFW callbacks write to it while the frame loop reads, hence the lock.
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	lastX, lastY   float64
	dx, dy         float64
	haveCursor     bool
	cursorCaptured bool
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionFlyUp)
	im.BindKey(glfw.KeyLeftShift, ActionFlyDown)
	im.BindKey(glfw.KeyLeftControl, ActionSprint)
	im.BindKey(glfw.KeyEqual, ActionRenderDistanceUp)
	im.BindKey(glfw.KeyKPAdd, ActionRenderDistanceUp)
	im.BindKey(glfw.KeyMinus, ActionRenderDistanceDown)
	im.BindKey(glfw.KeyKPSubtract, ActionRenderDistanceDown)
	im.BindKey(glfw.KeyF3, ActionToggleProfiling)
	im.BindKey(glfw.KeyTab, ActionReleaseMouse)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorEvent accumulates mouse movement while the cursor is captured.
func (im *InputManager) HandleCursorEvent(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.haveCursor && im.cursorCaptured {
		im.dx += x - im.lastX
		im.dy += y - im.lastY
	}
	im.lastX, im.lastY = x, y
	im.haveCursor = true
}

// Attach installs the GLFW callbacks and captures the cursor.
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorEvent(x, y)
	})
	im.SetCursorCaptured(window, true)
}

// SetCursorCaptured hides and locks the cursor for mouse look, or frees it.
func (im *InputManager) SetCursorCaptured(window *glfw.Window, captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	window.SetInputMode(glfw.CursorMode, mode)

	im.mu.Lock()
	im.cursorCaptured = captured
	im.haveCursor = false
	im.mu.Unlock()
}

// CursorCaptured reports whether mouse look is active.
func (im *InputManager) CursorCaptured() bool {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursorCaptured
}

// MouseDelta returns the movement accumulated since the last call.
func (im *InputManager) MouseDelta() (dx, dy float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	dx, dy = im.dx, im.dy
	im.dx, im.dy = 0, 0
	return dx, dy
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := Action(0); i < ActionCount; i++ {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}
