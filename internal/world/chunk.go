package world

import (
	"fmt"

	"mini-vox/internal/meshing"
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is a chunk's position on the chunk grid.
type ChunkCoord struct {
	X, Y, Z int
}

// Add returns the coordinate one step away in the face's direction.
func (c ChunkCoord) Add(f voxel.Face) ChunkCoord {
	dx, dy, dz := f.Normal()
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// MeshBuffers is the GPU side of a chunk mesh.
type MeshBuffers interface {
	DrawOpaque()
	DrawTransparent()
	Release()
}

// BufferFactory uploads vertex lists to the GPU.
type BufferFactory interface {
	Upload(opaque, transparent []meshing.Vertex) (MeshBuffers, error)
}

// Neighbors holds the six adjacent chunks indexed by voxel.Face. Entries may be nil.
type Neighbors [voxel.FaceCount]*Chunk

// Chunk owns a padded voxel grid, its lighting and its mesh.
type Chunk struct {
	Coord    ChunkCoord
	Position mgl32.Vec3

	dims      voxel.Dims
	grid      []byte
	lightMask []byte
	lightMap  []byte

	mesh    meshing.Mesh
	buffers MeshBuffers

	meshed      bool
	lighted     bool
	watered     bool
	underground bool
	outOfRange  bool
}

// CheckDims reports whether a chunk grid can be allocated for d.
func CheckDims(d voxel.Dims) error {
	if !d.Valid() {
		return fmt.Errorf("invalid chunk dims %dx%dx%d margin %d: %w", d.X, d.Y, d.Z, d.Margin, ErrDataSizeMismatch)
	}
	if d.PaddedVolume() > voxel.MaxPaddedVolume {
		return fmt.Errorf("chunk of %d voxels exceeds %d: %w", d.PaddedVolume(), voxel.MaxPaddedVolume, ErrResourceExhausted)
	}
	return nil
}

// NewChunk creates a chunk at coord, copying texture into its own grid.
// texture must hold exactly d.PaddedVolume() bytes.
func NewChunk(coord ChunkCoord, d voxel.Dims, texture []byte) (*Chunk, error) {
	if err := CheckDims(d); err != nil {
		return nil, err
	}
	if len(texture) != d.PaddedVolume() {
		return nil, fmt.Errorf("chunk %v: got %d bytes, want %d: %w", coord, len(texture), d.PaddedVolume(), ErrDataSizeMismatch)
	}

	c := &Chunk{
		Coord: coord,
		Position: mgl32.Vec3{
			float32(coord.X * d.X),
			float32(coord.Y * d.Y),
			float32(coord.Z * d.Z),
		},
		dims:      d,
		grid:      make([]byte, len(texture)),
		lightMask: make([]byte, d.Footprint()),
		lightMap:  make([]byte, len(texture)),
	}
	copy(c.grid, texture)
	return c, nil
}

// Dims returns the chunk's grid dimensions.
func (c *Chunk) Dims() voxel.Dims { return c.dims }

// Grid exposes the padded voxel grid.
func (c *Chunk) Grid() []byte { return c.grid }

// LightMask exposes the per-column sky mask passed to the chunk below.
func (c *Chunk) LightMask() []byte { return c.lightMask }

// LightMap exposes the per-voxel light levels.
func (c *Chunk) LightMap() []byte { return c.lightMap }

// Block returns the voxel at logical coordinates, margin included.
func (c *Chunk) Block(x, y, z int) voxel.Block {
	return c.grid[c.dims.Index(x, y, z)]
}

// LightAt returns the light level at logical coordinates, margin included.
func (c *Chunk) LightAt(x, y, z int) byte {
	return c.lightMap[c.dims.Index(x, y, z)]
}

func (c *Chunk) IsMeshed() bool      { return c.meshed }
func (c *Chunk) IsLighted() bool     { return c.lighted }
func (c *Chunk) IsWatered() bool     { return c.watered }
func (c *Chunk) IsUnderground() bool { return c.underground }
func (c *Chunk) IsOutOfRange() bool  { return c.outOfRange }

// SetOutOfRange is updated by the render distance check.
func (c *Chunk) SetOutOfRange(v bool) { c.outOfRange = v }

// Mesh returns the last built vertex lists.
func (c *Chunk) Mesh() meshing.Mesh { return c.mesh }

// Buffers returns the uploaded mesh, nil if there is none.
func (c *Chunk) Buffers() MeshBuffers { return c.buffers }

// HasGeometry reports whether the last mesh produced any vertex.
func (c *Chunk) HasGeometry() bool { return !c.mesh.Empty() }

// Size is the world-space extent of the chunk.
func (c *Chunk) Size() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.dims.X), float32(c.dims.Y), float32(c.dims.Z)}
}

// Center is the world-space midpoint of the chunk.
func (c *Chunk) Center() mgl32.Vec3 {
	return c.Position.Add(c.Size().Mul(0.5))
}

// BuildMesh meshes the grid and uploads the result. It may run again after the
// grid changes; previous buffers are released first. A nil factory keeps the
// mesh on the CPU only.
func (c *Chunk) BuildMesh(up BufferFactory, opts meshing.Options) error {
	defer profiling.Track("world.BuildMesh")()
	c.releaseBuffers()

	c.mesh = meshing.BuildWithOptions(c.grid, c.lightMap, c.dims, c.underground, opts)
	c.meshed = true
	profiling.Count("world.chunksMeshed", 1)

	if up == nil || c.mesh.Empty() {
		return nil
	}
	b, err := up.Upload(c.mesh.Opaque, c.mesh.Transparent)
	if err != nil {
		return fmt.Errorf("upload chunk %v: %w", c.Coord, err)
	}
	c.buffers = b
	return nil
}

func (c *Chunk) releaseBuffers() {
	if c.buffers != nil {
		c.buffers.Release()
		c.buffers = nil
	}
}

// Destroy releases GPU buffers and drops the voxel data. The GL context must be current.
func (c *Chunk) Destroy() {
	c.releaseBuffers()
	c.grid = nil
	c.lightMask = nil
	c.lightMap = nil
	c.mesh = meshing.Mesh{}
	c.meshed = false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
