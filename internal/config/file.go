package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"mini-vox/internal/meshing"
	"mini-vox/internal/voxel"
	"mini-vox/internal/world"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid value")

// Config is the on-disk configuration of the renderer.
type Config struct {
	Chunk   ChunkConfig   `yaml:"chunk"`
	Terrain TerrainConfig `yaml:"terrain"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Window  WindowConfig  `yaml:"window"`
}

type ChunkConfig struct {
	Size        []int `yaml:"size"`
	Margin      int   `yaml:"margin"`
	MaxPerFrame int   `yaml:"max_per_frame"`
}

type TerrainConfig struct {
	// Generator is "noise" or "flat".
	Generator      string            `yaml:"generator"`
	Seed           int64             `yaml:"seed"`
	FlatHeight     int               `yaml:"flat_height"`
	RenderDistance int               `yaml:"render_distance"`
	MaxHeight      int               `yaml:"max_height"`
	Noise          world.NoiseParams `yaml:"noise"`
}

type CameraConfig struct {
	Fov              float32    `yaml:"fov"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	Speed            float32    `yaml:"speed"`
	SprintMultiplier float32    `yaml:"sprint_multiplier"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Start            [3]float32 `yaml:"start"`
}

type LightConfig struct {
	FloodFill bool `yaml:"flood_fill"`

	// SunDirection points towards the directional light.
	SunDirection [3]float32 `yaml:"sun_direction"`
}

type MeshConfig struct {
	WaterAllFaces bool `yaml:"water_all_faces"`
}

type WindowConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	Title       string   `yaml:"title"`
	VSync       bool     `yaml:"vsync"`
	FPSLimit    int      `yaml:"fps_limit"`
	Textures    []string `yaml:"textures"`
	TextureTile int      `yaml:"texture_tile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Chunk: ChunkConfig{
			Size:        []int{32, 32, 32},
			Margin:      2,
			MaxPerFrame: 8,
		},
		Terrain: TerrainConfig{
			Generator:      "noise",
			Seed:           1337,
			FlatHeight:     20,
			RenderDistance: 160,
			MaxHeight:      256,
			Noise:          world.DefaultNoiseParams(),
		},
		Camera: CameraConfig{
			Fov:              70,
			Near:             0.1,
			Far:              1000,
			Speed:            20,
			SprintMultiplier: 4,
			MouseSensitivity: 0.1,
			Start:            [3]float32{0, 110, 0},
		},
		Light: LightConfig{
			SunDirection: [3]float32{30, 30, 18},
		},
		Window: WindowConfig{
			Width:       1280,
			Height:      720,
			Title:       "mini-vox",
			FPSLimit:    60,
			TextureTile: 16,
		},
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values the chunk pipeline depends on.
func (c Config) Validate() error {
	if len(c.Chunk.Size) != 3 {
		return fmt.Errorf("chunk.size needs 3 values, got %d: %w", len(c.Chunk.Size), ErrInvalid)
	}
	for _, s := range c.Chunk.Size {
		if s <= 0 {
			return fmt.Errorf("chunk.size %v must be positive: %w", c.Chunk.Size, ErrInvalid)
		}
	}
	if c.Chunk.Margin < 2 || c.Chunk.Margin%2 != 0 {
		return fmt.Errorf("chunk.margin %d must be even and at least 2: %w", c.Chunk.Margin, ErrInvalid)
	}
	if c.Chunk.MaxPerFrame <= 0 {
		return fmt.Errorf("chunk.max_per_frame %d must be positive: %w", c.Chunk.MaxPerFrame, ErrInvalid)
	}
	switch c.Terrain.Generator {
	case "noise", "flat":
	default:
		return fmt.Errorf("terrain.generator %q: %w", c.Terrain.Generator, ErrInvalid)
	}
	if c.Terrain.RenderDistance <= 0 || c.Terrain.MaxHeight <= 0 {
		return fmt.Errorf("terrain.render_distance and terrain.max_height must be positive: %w", ErrInvalid)
	}
	if c.Terrain.RenderDistance < MinRenderDistance || c.Terrain.RenderDistance > MaxRenderDistance {
		return fmt.Errorf("terrain.render_distance %d outside %d..%d: %w",
			c.Terrain.RenderDistance, MinRenderDistance, MaxRenderDistance, ErrInvalid)
	}
	if c.Light.SunDirection == [3]float32{} {
		return fmt.Errorf("light.sun_direction must not be zero: %w", ErrInvalid)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near || c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera near %v far %v fov %v: %w", c.Camera.Near, c.Camera.Far, c.Camera.Fov, ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("window.fps_limit %d: %w", c.Window.FPSLimit, ErrInvalid)
	}
	return nil
}

// Dims returns the chunk dimensions.
func (c Config) Dims() voxel.Dims {
	return voxel.NewDims(c.Chunk.Size[0], c.Chunk.Size[1], c.Chunk.Size[2], c.Chunk.Margin)
}

// TerrainOptions builds the terrain manager settings.
func (c Config) TerrainOptions() world.Options {
	return world.Options{
		Dims:              c.Dims(),
		RenderDistance:    float32(c.Terrain.RenderDistance),
		MaxHeight:         c.Terrain.MaxHeight,
		MaxChunksPerFrame: c.Chunk.MaxPerFrame,
		Mesh:              meshing.Options{WaterAllFaces: c.Mesh.WaterAllFaces},
		FloodLight:        c.Light.FloodFill,
	}
}

// Source builds the configured texture source.
func (c Config) Source() world.TextureSource {
	if c.Terrain.Generator == "flat" {
		return world.NewFlatGenerator(c.Terrain.FlatHeight)
	}
	return world.NewNoiseGenerator(c.Terrain.Seed, c.Terrain.Noise)
}

// Apply publishes the runtime settings.
func (c Config) Apply() {
	SetRenderDistance(c.Terrain.RenderDistance)
	SetFPSLimit(c.Window.FPSLimit)
}
