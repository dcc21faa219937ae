package world

import (
	"fmt"

	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/gammazero/deque"
)

// ChunkStreamer keeps the generation list: chunk coordinates waiting for a
// texture, ordered in rings outward from the camera column and top to bottom
// inside a column.
type ChunkStreamer struct {
	queue      deque.Deque[ChunkCoord]
	pending    map[ChunkCoord]struct{}
	maxPending int

	maxJobsPerCall int

	store   *ChunkStore
	source  TextureSource
	dims    voxel.Dims
	layers  int
	scratch []byte
}

// NewChunkStreamer creates a streamer filling chunks of dims d, layers chunks high.
func NewChunkStreamer(store *ChunkStore, source TextureSource, d voxel.Dims, layers int) *ChunkStreamer {
	return &ChunkStreamer{
		pending:        make(map[ChunkCoord]struct{}),
		maxPending:     16384,
		maxJobsPerCall: 2048,
		store:          store,
		source:         source,
		dims:           d,
		layers:         layers,
		scratch:        make([]byte, d.PaddedVolume()),
	}
}

// Pending returns the number of queued coordinates.
func (cs *ChunkStreamer) Pending() int {
	return cs.queue.Len()
}

// EnqueueAround queues missing columns within radius chunks of (cx, cz),
// nearest rings first. inRange filters columns by the exact render distance.
func (cs *ChunkStreamer) EnqueueAround(cx, cz, radius int, inRange func(chunkX, chunkZ int) bool) int {
	defer profiling.Track("world.EnqueueAround")()

	jobsPushed := 0
	column := func(xk, zk int) bool {
		if inRange(xk, zk) {
			jobsPushed += cs.enqueueColumn(xk, zk)
		}
		return jobsPushed < cs.maxJobsPerCall
	}

	if !column(cx, cz) {
		return jobsPushed
	}
	for r := 1; r <= radius; r++ {
		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r

		for xk := x0; xk <= x1; xk++ {
			if !column(xk, z0) {
				return jobsPushed
			}
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			if !column(x1, zk) {
				return jobsPushed
			}
		}
		for xk := x1; xk >= x0; xk-- {
			if !column(xk, z1) {
				return jobsPushed
			}
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			if !column(x0, zk) {
				return jobsPushed
			}
		}
	}
	return jobsPushed
}

// enqueueColumn queues the missing chunks of a column, top layer first.
func (cs *ChunkStreamer) enqueueColumn(chunkX, chunkZ int) int {
	enq := 0
	for cy := cs.layers - 1; cy >= 0; cy-- {
		if cs.request(ChunkCoord{X: chunkX, Y: cy, Z: chunkZ}) {
			enq++
		}
	}
	return enq
}

func (cs *ChunkStreamer) request(coord ChunkCoord) bool {
	if cs.store.HasChunk(coord) {
		return false
	}
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	if cs.maxPending > 0 && len(cs.pending) >= cs.maxPending {
		return false
	}
	cs.pending[coord] = struct{}{}
	cs.queue.PushBack(coord)
	return true
}

// GenerateNext fills and installs up to budget queued chunks. Coordinates
// that fell out of range while queued are dropped without counting.
func (cs *ChunkStreamer) GenerateNext(budget int, inRange func(chunkX, chunkZ int) bool) (int, error) {
	defer profiling.Track("world.GenerateChunkTextures")()
	made := 0
	for made < budget && cs.queue.Len() > 0 {
		coord := cs.queue.PopFront()
		delete(cs.pending, coord)
		if cs.store.HasChunk(coord) || !inRange(coord.X, coord.Z) {
			continue
		}

		if err := cs.source.Fill(coord, cs.dims, cs.scratch); err != nil {
			return made, fmt.Errorf("generate chunk %v: %w", coord, err)
		}
		chunk, err := NewChunk(coord, cs.dims, cs.scratch)
		if err != nil {
			return made, err
		}
		cs.store.AddChunk(chunk)
		made++
	}
	profiling.Count("world.chunksGenerated", made)
	return made, nil
}

// Reset drops every queued coordinate.
func (cs *ChunkStreamer) Reset() {
	cs.queue.Clear()
	clear(cs.pending)
}
