package world

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"mini-vox/internal/camera"
	"mini-vox/internal/meshing"
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a Terrain.
type Options struct {
	Dims voxel.Dims
	// RenderDistance is the XZ distance in voxels from the camera to a chunk center.
	RenderDistance float32
	// MaxHeight is the world height in voxels; it is rounded up to whole chunks.
	MaxHeight int
	// MaxChunksPerFrame caps texture generation and meshing per update.
	MaxChunksPerFrame int
	Mesh              meshing.Options
	// FloodLight runs the falloff pass after the sky light scan.
	FloodLight bool
}

// DefaultOptions returns the stock terrain settings.
func DefaultOptions() Options {
	return Options{
		Dims:              voxel.NewDims(32, 32, 32, 2),
		RenderDistance:    160,
		MaxHeight:         256,
		MaxChunksPerFrame: 8,
	}
}

// Terrain drives every chunk from generation to drawing. It is single
// threaded; call it from the goroutine owning the GL context.
type Terrain struct {
	opts     Options
	layers   int
	store    *ChunkStore
	streamer *ChunkStreamer
	uploader BufferFactory

	camPos  mgl32.Vec3
	batch   []*Chunk
	visible []*Chunk
}

// NewTerrain creates a terrain manager. uploader may be nil to keep meshes on the CPU.
func NewTerrain(opts Options, source TextureSource, uploader BufferFactory) (*Terrain, error) {
	if err := CheckDims(opts.Dims); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("terrain: nil texture source")
	}
	if opts.RenderDistance <= 0 || opts.MaxHeight <= 0 || opts.MaxChunksPerFrame <= 0 {
		return nil, fmt.Errorf("terrain: render distance %v, max height %d and chunks per frame %d must be positive",
			opts.RenderDistance, opts.MaxHeight, opts.MaxChunksPerFrame)
	}

	layers := (opts.MaxHeight + opts.Dims.Y - 1) / opts.Dims.Y
	store := NewChunkStore()
	return &Terrain{
		opts:     opts,
		layers:   layers,
		store:    store,
		streamer: NewChunkStreamer(store, source, opts.Dims, layers),
		uploader: uploader,
	}, nil
}

// Layers returns the number of chunks stacked in a column.
func (t *Terrain) Layers() int { return t.layers }

// Len returns the number of loaded chunks.
func (t *Terrain) Len() int { return t.store.Len() }

// Pending returns the length of the generation list.
func (t *Terrain) Pending() int { return t.streamer.Pending() }

// Chunk returns the loaded chunk at coord, or nil.
func (t *Terrain) Chunk(coord ChunkCoord) *Chunk { return t.store.Get(coord) }

// SetRenderDistance changes the render distance; chunks beyond it are dropped on the next update.
func (t *Terrain) SetRenderDistance(d float32) {
	if d > 0 {
		t.opts.RenderDistance = d
	}
}

// ChunkPosition returns the grid coordinate of the chunk containing p.
func (t *Terrain) ChunkPosition(p mgl32.Vec3) ChunkCoord {
	d := t.opts.Dims
	return ChunkCoord{
		X: floorDiv(int(math.Floor(float64(p.X()))), d.X),
		Y: floorDiv(int(math.Floor(float64(p.Y()))), d.Y),
		Z: floorDiv(int(math.Floor(float64(p.Z()))), d.Z),
	}
}

// IsUnderwater reports whether p lies in a water voxel of a loaded chunk.
func (t *Terrain) IsUnderwater(p mgl32.Vec3) bool {
	coord := t.ChunkPosition(p)
	c := t.store.Get(coord)
	if c == nil {
		return false
	}
	d := t.opts.Dims
	x := int(math.Floor(float64(p.X()))) - coord.X*d.X
	y := int(math.Floor(float64(p.Y()))) - coord.Y*d.Y
	z := int(math.Floor(float64(p.Z()))) - coord.Z*d.Z
	return c.Block(x, y, z) == voxel.Water
}

// NeighbouringChunks returns the loaded chunks around coord.
func (t *Terrain) NeighbouringChunks(coord ChunkCoord) Neighbors {
	return t.store.Neighbors(coord)
}

// columnInRange reports whether the column's center lies within render distance of the camera.
func (t *Terrain) columnInRange(chunkX, chunkZ int) bool {
	d := t.opts.Dims
	dx := (float32(chunkX)+0.5)*float32(d.X) - t.camPos.X()
	dz := (float32(chunkZ)+0.5)*float32(d.Z) - t.camPos.Z()
	return dx*dx+dz*dz <= t.opts.RenderDistance*t.opts.RenderDistance
}

// inWorld reports whether coord can hold a chunk at all.
func (t *Terrain) inWorld(coord ChunkCoord) bool {
	return coord.Y >= 0 && coord.Y < t.layers && t.columnInRange(coord.X, coord.Z)
}

// CheckRenderDistance flags every chunk as in or out of range of pos.
func (t *Terrain) CheckRenderDistance(pos mgl32.Vec3) {
	t.camPos = pos
	t.batch = t.store.AppendChunks(t.batch[:0])
	for _, c := range t.batch {
		c.SetOutOfRange(!t.columnInRange(c.Coord.X, c.Coord.Z))
	}
}

// UpdateChunks advances the chunk pipeline by one frame around the camera position.
func (t *Terrain) UpdateChunks(pos mgl32.Vec3) error {
	defer profiling.Track("world.UpdateChunks")()

	t.CheckRenderDistance(pos)
	t.DeleteOutOfRangeChunks()
	t.AddChunksToGenerationList()
	if err := t.GenerateChunkTextures(); err != nil {
		return err
	}
	t.ComputeChunkLight()
	t.ComputeChunkWater()
	return t.GenerateChunkMeshes()
}

// AddChunksToGenerationList queues missing chunks around the last camera position.
func (t *Terrain) AddChunksToGenerationList() int {
	center := t.ChunkPosition(t.camPos)
	d := t.opts.Dims
	radius := int(math.Ceil(float64(t.opts.RenderDistance)/float64(min(d.X, d.Z)))) + 1
	return t.streamer.EnqueueAround(center.X, center.Z, radius, t.columnInRange)
}

// GenerateChunkTextures creates at most MaxChunksPerFrame chunks from the generation list.
func (t *Terrain) GenerateChunkTextures() error {
	_, err := t.streamer.GenerateNext(t.opts.MaxChunksPerFrame, t.columnInRange)
	return err
}

// sortedByHeight collects the chunks matching keep, top layer first.
func (t *Terrain) sortedByHeight(keep func(*Chunk) bool) []*Chunk {
	t.batch = t.batch[:0]
	t.batch = t.store.AppendChunks(t.batch)
	n := 0
	for _, c := range t.batch {
		if keep(c) {
			t.batch[n] = c
			n++
		}
	}
	t.batch = t.batch[:n]
	sort.Slice(t.batch, func(i, j int) bool {
		a, b := t.batch[i].Coord, t.batch[j].Coord
		if a.Y != b.Y {
			return a.Y > b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})
	return t.batch
}

// ComputeChunkLight lights every chunk whose upper neighbour is lit, top down.
func (t *Terrain) ComputeChunkLight() {
	defer profiling.Track("world.ComputeChunkLight")()
	for _, c := range t.sortedByHeight(func(c *Chunk) bool { return !c.IsLighted() }) {
		if c.Coord.Y == t.layers-1 {
			c.ComputeLight(nil)
		} else {
			above := t.store.Get(c.Coord.Add(voxel.FaceTop))
			if above == nil || !above.IsLighted() {
				continue
			}
			c.ComputeLight(above.LightMask())
		}
		if t.opts.FloodLight && !c.IsUnderground() {
			c.PropagateLight()
		}
	}
}

// ComputeChunkWater floods every lit chunk once.
func (t *Terrain) ComputeChunkWater() {
	defer profiling.Track("world.ComputeChunkWater")()
	for _, c := range t.sortedByHeight(func(c *Chunk) bool { return c.IsLighted() && !c.IsWatered() }) {
		c.ComputeWater(t.store.Neighbors(c.Coord))
	}
}

// settled reports whether every neighbour the chunk will ever have is loaded and flooded.
func (t *Terrain) settled(c *Chunk) bool {
	for _, f := range voxel.Faces {
		coord := c.Coord.Add(f)
		if !t.inWorld(coord) {
			continue
		}
		nb := t.store.Get(coord)
		if nb == nil || !nb.IsWatered() {
			return false
		}
	}
	return true
}

// GenerateChunkMeshes refreshes margins and meshes at most MaxChunksPerFrame
// chunks whose neighbourhood is complete.
func (t *Terrain) GenerateChunkMeshes() error {
	defer profiling.Track("world.GenerateChunkMeshes")()
	built := 0
	for _, c := range t.sortedByHeight(func(c *Chunk) bool { return c.IsWatered() && !c.IsMeshed() }) {
		if built >= t.opts.MaxChunksPerFrame {
			break
		}
		if !t.settled(c) {
			continue
		}
		c.ExchangeBoundaries(t.store.Neighbors(c.Coord))
		if err := c.BuildMesh(t.uploader, t.opts.Mesh); err != nil {
			return err
		}
		built++
	}
	return nil
}

// DeleteOutOfRangeChunks destroys chunks flagged by the last render distance check.
func (t *Terrain) DeleteOutOfRangeChunks() int {
	return t.store.EvictOutOfRange()
}

// VisibleChunks returns the meshed chunks in range of the camera whose bounds
// pass the frustum test, sorted back to front.
func (t *Terrain) VisibleChunks(cam *camera.Camera) []*Chunk {
	defer profiling.Track("world.VisibleChunks")()
	cam.Update()
	pos := cam.Position()
	t.CheckRenderDistance(pos)

	t.visible = t.visible[:0]
	for _, c := range t.batch {
		if !c.IsMeshed() || c.IsOutOfRange() || !c.HasGeometry() {
			continue
		}
		if !cam.AABBInFrustum(c.Position, c.Size()) {
			continue
		}
		t.visible = append(t.visible, c)
	}
	sort.Slice(t.visible, func(i, j int) bool {
		di := t.visible[i].Center().Sub(pos).LenSqr()
		dj := t.visible[j].Center().Sub(pos).LenSqr()
		return di > dj
	})
	profiling.Count("world.chunksVisible", len(t.visible))
	return t.visible
}

// Close destroys every chunk and empties the generation list.
func (t *Terrain) Close() {
	t.store.Clear()
	t.streamer.Reset()
	t.batch = nil
	t.visible = nil
}
