package world

import (
	"testing"

	"mini-vox/internal/meshing"
	"mini-vox/internal/voxel"
)

// texture builds a padded grid for the chunk at origin from a world function.
func texture(origin ChunkCoord, d voxel.Dims, fn func(wx, wy, wz int) voxel.Block) []byte {
	tex := make([]byte, d.PaddedVolume())
	forEachVoxel(origin, d, func(wx, wy, wz, i int) {
		tex[i] = fn(wx, wy, wz)
	})
	return tex
}

func air(_, _, _ int) voxel.Block { return voxel.Air }

func mustChunk(t testing.TB, coord ChunkCoord, d voxel.Dims, tex []byte) *Chunk {
	t.Helper()
	c, err := NewChunk(coord, d, tex)
	if err != nil {
		t.Fatalf("NewChunk(%v): %v", coord, err)
	}
	return c
}

type fakeBuffers struct {
	u        *fakeUploader
	opaque   int
	released bool
}

func (b *fakeBuffers) DrawOpaque()      {}
func (b *fakeBuffers) DrawTransparent() {}

func (b *fakeBuffers) Release() {
	if b.released {
		b.u.doubleRelease++
		return
	}
	b.released = true
	b.u.released++
}

type fakeUploader struct {
	uploads       int
	released      int
	doubleRelease int
	err           error
}

func (u *fakeUploader) Upload(opaque, _ []meshing.Vertex) (MeshBuffers, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.uploads++
	return &fakeBuffers{u: u, opaque: len(opaque)}, nil
}
