package game

import (
	"fmt"

	"mini-vox/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// contextHints request a forward compatible 4.1 core context, the newest macOS offers.
var contextHints = []struct {
	hint  glfw.Hint
	value int
}{
	{glfw.ContextVersionMajor, 4},
	{glfw.ContextVersionMinor, 1},
	{glfw.OpenGLForwardCompatible, glfw.True},
	{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
	{glfw.Resizable, glfw.True},
}

// SetupWindow opens the render window, makes its context current and loads
// the GL bindings. glfw.Init must already have run on the main thread.
func SetupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	for _, h := range contextHints {
		glfw.WindowHint(h.hint, h.value)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	centerOnPrimary(window)
	window.SetSizeLimits(320, 240, glfw.DontCare, glfw.DontCare)
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("load gl: %w", err)
	}

	swap := 0
	if cfg.VSync {
		swap = 1
	}
	glfw.SwapInterval(swap)
	return window, nil
}

// GLVersion returns the driver version string of the current context.
func GLVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func centerOnPrimary(w *glfw.Window) {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return
	}
	mode := m.GetVideoMode()
	if mode == nil {
		return
	}
	mx, my := m.GetPos()
	ww, wh := w.GetSize()
	w.SetPos(mx+(mode.Width-ww)/2, my+(mode.Height-wh)/2)
}
