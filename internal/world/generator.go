package world

import (
	"fmt"
	"math"

	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/ojrac/opensimplex-go"
)

// TextureSource fills the padded grid of the chunk at origin. Voxels must be a
// pure function of world position so that margins agree with neighbours.
type TextureSource interface {
	Fill(origin ChunkCoord, d voxel.Dims, dst []byte) error
}

// forEachVoxel calls fn with the world position and grid index of every padded voxel.
func forEachVoxel(origin ChunkCoord, d voxel.Dims, fn func(wx, wy, wz, i int)) {
	h := d.Half()
	bx, by, bz := origin.X*d.X, origin.Y*d.Y, origin.Z*d.Z
	for y := -h; y < d.Y+h; y++ {
		for z := -h; z < d.Z+h; z++ {
			for x := -h; x < d.X+h; x++ {
				fn(bx+x, by+y, bz+z, d.Index(x, y, z))
			}
		}
	}
}

func checkTexture(d voxel.Dims, dst []byte) error {
	if len(dst) != d.PaddedVolume() {
		return fmt.Errorf("fill: got %d bytes, want %d: %w", len(dst), d.PaddedVolume(), ErrDataSizeMismatch)
	}
	return nil
}

// FlatGenerator produces flat terrain: bedrock at y=0, stone, then three dirt
// layers up to Height. Air below WaterLevel is water.
type FlatGenerator struct {
	Height     int
	WaterLevel int
}

// NewFlatGenerator creates a flat generator with no water.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: height}
}

// HeightAt returns the surface height; it is the same everywhere.
func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.Height
}

func (g *FlatGenerator) Fill(origin ChunkCoord, d voxel.Dims, dst []byte) error {
	if err := checkTexture(d, dst); err != nil {
		return err
	}
	forEachVoxel(origin, d, func(_, wy, _, i int) {
		switch {
		case wy <= 0:
			dst[i] = voxel.Bedrock
		case wy < g.Height-3:
			dst[i] = voxel.Stone
		case wy < g.Height:
			dst[i] = voxel.Dirt
		case wy < g.WaterLevel:
			dst[i] = voxel.Water
		default:
			dst[i] = voxel.Air
		}
	})
	return nil
}

// NoiseParams tunes NoiseGenerator.
type NoiseParams struct {
	Scale       float64 `yaml:"scale"`
	BaseHeight  int     `yaml:"base_height"`
	Amplitude   float64 `yaml:"amplitude"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	SeaLevel    int     `yaml:"sea_level"`
	SnowLine    int     `yaml:"snow_line"`

	// Caves are carved where 3D noise exceeds CaveThreshold. Zero scale disables caves.
	CaveScale     float64 `yaml:"cave_scale"`
	CaveThreshold float64 `yaml:"cave_threshold"`
}

// DefaultNoiseParams returns rolling hills with a lake level and sparse caves.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Scale:         1.0 / 128.0,
		BaseHeight:    48,
		Amplitude:     40,
		Octaves:       4,
		Persistence:   0.5,
		Lacunarity:    2.0,
		SeaLevel:      40,
		SnowLine:      80,
		CaveScale:     1.0 / 24.0,
		CaveThreshold: 0.55,
	}
}

// NoiseGenerator shapes terrain from OpenSimplex noise: a 2D fractal height
// field, 3D caves and water up to sea level.
type NoiseGenerator struct {
	params  NoiseParams
	surface opensimplex.Noise
	caves   opensimplex.Noise
}

// NewNoiseGenerator creates a generator; equal seeds give equal worlds.
func NewNoiseGenerator(seed int64, p NoiseParams) *NoiseGenerator {
	return &NoiseGenerator{
		params:  p,
		surface: opensimplex.New(seed),
		caves:   opensimplex.New(seed ^ 0x5DEECE66D),
	}
}

// HeightAt computes the surface height at world X,Z.
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	p := g.params
	x := float64(worldX) * p.Scale
	z := float64(worldZ) * p.Scale

	amplitude, frequency := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for i := 0; i < p.Octaves; i++ {
		sum += g.surface.Eval2(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= p.Persistence
		frequency *= p.Lacunarity
	}
	if norm > 0 {
		sum /= norm
	}
	h := float64(p.BaseHeight) + sum*p.Amplitude
	return max(int(math.Floor(h)), 1)
}

func (g *NoiseGenerator) isCave(wx, wy, wz int) bool {
	p := g.params
	if p.CaveScale == 0 {
		return false
	}
	n := g.caves.Eval3(float64(wx)*p.CaveScale, float64(wy)*p.CaveScale, float64(wz)*p.CaveScale)
	return n > p.CaveThreshold
}

func (g *NoiseGenerator) Fill(origin ChunkCoord, d voxel.Dims, dst []byte) error {
	if err := checkTexture(d, dst); err != nil {
		return err
	}
	defer profiling.Track("world.NoiseFill")()

	p := g.params
	heights := make(map[[2]int]int, d.Footprint())
	forEachVoxel(origin, d, func(wx, wy, wz, i int) {
		key := [2]int{wx, wz}
		h, ok := heights[key]
		if !ok {
			h = g.HeightAt(wx, wz)
			heights[key] = h
		}

		switch {
		case wy <= 0:
			dst[i] = voxel.Bedrock
		case wy > h:
			if wy <= p.SeaLevel {
				dst[i] = voxel.Water
			} else {
				dst[i] = voxel.Air
			}
		// Caves stay below the surface crust so lakes do not drain into them.
		case wy < h-3 && g.isCave(wx, wy, wz):
			dst[i] = voxel.Air
		case wy == h:
			dst[i] = surfaceBlock(h, p)
		case wy > h-4:
			if h <= p.SeaLevel+1 {
				dst[i] = voxel.Sand
			} else {
				dst[i] = voxel.Dirt
			}
		default:
			dst[i] = voxel.Stone
		}
	})
	return nil
}

func surfaceBlock(h int, p NoiseParams) voxel.Block {
	switch {
	case h <= p.SeaLevel-3:
		return voxel.Gravel
	case h <= p.SeaLevel+1:
		return voxel.Sand
	case h >= p.SnowLine:
		return voxel.Snow
	default:
		return voxel.Dirt
	}
}
