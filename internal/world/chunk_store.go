package world

import (
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"
)

// ChunkStore maps grid coordinates to loaded chunks. It is owned by the
// terrain manager and used from the frame loop only.
type ChunkStore struct {
	chunks map[ChunkCoord]*Chunk
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Get returns the chunk at coord, or nil.
func (cs *ChunkStore) Get(coord ChunkCoord) *Chunk {
	return cs.chunks[coord]
}

// HasChunk checks if a chunk exists.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	_, ok := cs.chunks[coord]
	return ok
}

// AddChunk installs a chunk unless one is already stored at coord.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	return true
}

// Neighbors collects the six chunks around coord.
func (cs *ChunkStore) Neighbors(coord ChunkCoord) Neighbors {
	var n Neighbors
	for i := range n {
		n[i] = cs.chunks[coord.Add(voxel.Face(i))]
	}
	return n
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	return len(cs.chunks)
}

// AppendChunks appends every stored chunk to dst.
func (cs *ChunkStore) AppendChunks(dst []*Chunk) []*Chunk {
	for _, c := range cs.chunks {
		dst = append(dst, c)
	}
	return dst
}

// EvictOutOfRange destroys and removes chunks flagged out of range.
// Returns number of removed chunks.
func (cs *ChunkStore) EvictOutOfRange() int {
	defer profiling.Track("world.EvictOutOfRange")()
	removed := 0
	for coord, c := range cs.chunks {
		if !c.IsOutOfRange() {
			continue
		}
		c.Destroy()
		delete(cs.chunks, coord)
		removed++
	}
	return removed
}

// Clear destroys every chunk.
func (cs *ChunkStore) Clear() {
	for _, c := range cs.chunks {
		c.Destroy()
	}
	clear(cs.chunks)
}
