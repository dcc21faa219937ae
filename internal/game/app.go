package game

import (
	"fmt"
	"log"
	"time"

	"mini-vox/internal/camera"
	"mini-vox/internal/config"
	"mini-vox/internal/game/clock"
	"mini-vox/internal/graphics"
	"mini-vox/internal/input"
	"mini-vox/internal/profiling"
	"mini-vox/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// renderDistanceStep is how far one key press moves the render distance, in voxels.
const renderDistanceStep = 16

// slowFrame is the processing time above which a frame gets logged.
const slowFrame = 16 * time.Millisecond

// App owns the window and drives terrain streaming and rendering.
type App struct {
	window     *glfw.Window
	input      *input.InputManager
	cam        *camera.Camera
	controller camera.FlyController
	terrain    *world.Terrain
	renderer   *graphics.ChunkRenderer
	limiter    *clock.FrameLimiter
	logger     *log.Logger
	title      string

	state clock.FrameState
}

// NewApp builds the renderer and terrain for an already created window.
func NewApp(window *glfw.Window, cfg config.Config, logger *log.Logger) (*App, error) {
	renderer, err := graphics.NewChunkRenderer(cfg.Window.Textures, cfg.Window.TextureTile)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	terrain, err := world.NewTerrain(cfg.TerrainOptions(), cfg.Source(), graphics.MeshUploader{})
	if err != nil {
		renderer.Close()
		return nil, fmt.Errorf("terrain: %w", err)
	}

	fbw, fbh := window.GetFramebufferSize()
	cam := camera.New(cfg.Camera.Fov, aspect(fbw, fbh), cfg.Camera.Near, cfg.Camera.Far)
	cam.SetPosition(mgl32.Vec3(cfg.Camera.Start))

	a := &App{
		window:   window,
		input:    input.NewInputManager(),
		cam:      cam,
		terrain:  terrain,
		renderer: renderer,
		limiter:  clock.NewFrameLimiter(config.GetFPSLimit),
		logger:   logger,
		title:    cfg.Window.Title,
		controller: camera.FlyController{
			Speed:            cfg.Camera.Speed,
			SprintMultiplier: cfg.Camera.SprintMultiplier,
			Sensitivity:      cfg.Camera.MouseSensitivity,
		},
	}

	sun := graphics.DefaultSun()
	sun.Direction = mgl32.Vec3(cfg.Light.SunDirection)
	renderer.SetSun(sun)

	a.input.Attach(window)
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		a.cam.SetAspect(aspect(width, height))
	})
	return a, nil
}

func aspect(w, h int) float32 {
	if h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Run ticks until the window is closed or a frame fails.
func (a *App) Run() error {
	for !a.window.ShouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	start := time.Now()
	a.state.Advance(start)

	glfw.PollEvents()

	if err := a.Step(&a.state); err != nil {
		return err
	}
	visible := a.terrain.VisibleChunks(a.cam)
	a.renderer.Render(a.cam, visible, a.terrain.IsUnderwater(a.cam.Position()))
	a.window.SwapBuffers()

	if took := time.Since(start); took > slowFrame && a.state.ShowProfiling {
		a.logger.Printf("Slow frame: %v. Top tasks: %s", took, profiling.TopN(5))
	}

	a.input.PostUpdate()
	a.limiter.Wait(a.window.GetAttrib(glfw.Iconified) == glfw.True)
	return nil
}

// Step applies one frame of input and streams terrain around the camera.
func (a *App) Step(s *clock.FrameState) error {
	a.handleInput(s)
	if err := a.terrain.UpdateChunks(a.cam.Position()); err != nil {
		return fmt.Errorf("update chunks: %w", err)
	}
	return nil
}

func (a *App) handleInput(s *clock.FrameState) {
	im := a.input

	if im.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionReleaseMouse) {
		im.SetCursorCaptured(a.window, !im.CursorCaptured())
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		s.ShowProfiling = !s.ShowProfiling
		if !s.ShowProfiling {
			a.window.SetTitle(a.title)
		}
	}
	if im.JustPressed(input.ActionRenderDistanceUp) {
		a.changeRenderDistance(renderDistanceStep)
	}
	if im.JustPressed(input.ActionRenderDistanceDown) {
		a.changeRenderDistance(-renderDistanceStep)
	}

	if im.CursorCaptured() {
		dx, dy := im.MouseDelta()
		a.controller.Look(a.cam, dx, dy)
	}

	var m camera.Movement
	m.Forward = axis(im.IsActive(input.ActionMoveForward), im.IsActive(input.ActionMoveBackward))
	m.Right = axis(im.IsActive(input.ActionMoveRight), im.IsActive(input.ActionMoveLeft))
	m.Up = axis(im.IsActive(input.ActionFlyUp), im.IsActive(input.ActionFlyDown))
	m.Sprint = im.IsActive(input.ActionSprint)
	a.controller.Move(a.cam, m, float32(s.Dt))

	if s.ShowProfiling && s.Frames == 0 {
		p := a.cam.Position()
		a.window.SetTitle(fmt.Sprintf("%s | %d fps (%d late) | %d chunks (%d pending) | %.0f %.0f %.0f",
			a.title, s.FPS, a.limiter.Missed(), a.terrain.Len(), a.terrain.Pending(), p.X(), p.Y(), p.Z()))
	}
}

func (a *App) changeRenderDistance(delta int) {
	config.SetRenderDistance(config.GetRenderDistance() + delta)
	d := config.GetRenderDistance()
	a.terrain.SetRenderDistance(float32(d))
	a.logger.Printf("render distance %d", d)
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// Close frees GPU resources. The window is left to the caller.
func (a *App) Close() {
	a.terrain.Close()
	a.renderer.Close()
}
