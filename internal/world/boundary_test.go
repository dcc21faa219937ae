package world

import (
	"testing"

	"mini-vox/internal/meshing"
	"mini-vox/internal/voxel"
)

func pattern(x, y, z int) voxel.Block {
	return voxel.Block(1 + ((x*7+y*13+z*5)%11+11)%11)
}

func TestExchangeCopiesFaceLayers(t *testing.T) {
	d := voxel.NewDims(4, 4, 4, 4)
	a := mustChunk(t, ChunkCoord{}, d, make([]byte, d.PaddedVolume()))
	right := mustChunk(t, ChunkCoord{X: 1}, d, texture(ChunkCoord{X: 1}, d, pattern))
	left := mustChunk(t, ChunkCoord{X: -1}, d, texture(ChunkCoord{X: -1}, d, pattern))
	top := mustChunk(t, ChunkCoord{Y: 1}, d, texture(ChunkCoord{Y: 1}, d, pattern))
	right.LightMap()[d.Index(1, 2, 3)] = 9

	a.ExchangeBoundaries(Neighbors{voxel.FaceRight: right, voxel.FaceLeft: left, voxel.FaceTop: top})

	for k := 0; k < d.Half(); k++ {
		for y := 0; y < d.Y; y++ {
			for z := 0; z < d.Z; z++ {
				if a.Block(d.X+k, y, z) != right.Block(k, y, z) {
					t.Fatalf("right layer %d at (%d,%d) not copied", k, y, z)
				}
				if a.Block(-1-k, y, z) != left.Block(d.X-1-k, y, z) {
					t.Fatalf("left layer %d at (%d,%d) not copied", k, y, z)
				}
				if a.Block(y, d.Y+k, z) != top.Block(y, k, z) {
					t.Fatalf("top layer %d at (%d,%d) not copied", k, y, z)
				}
			}
		}
	}
	if a.LightAt(d.X+1, 2, 3) != 9 {
		t.Error("light not copied")
	}
	// Edges belong to diagonal chunks.
	if a.Block(d.X, -1, 0) != voxel.Air || a.Block(d.X, d.Y, 0) != voxel.Air {
		t.Error("edge cell overwritten")
	}
	if a.Block(0, -1, 0) != voxel.Air {
		t.Error("face without neighbour overwritten")
	}
}

// Meshing a chunk whose margin came from its neighbour gives the same
// vertices as meshing both chunks as one grid.
func TestBoundaryConsistency(t *testing.T) {
	world := func(x, y, z int) voxel.Block {
		if y < 6 && (x*3+y*5+z*7)%4 != 0 {
			return voxel.Block(1 + (x+z+16)%5)
		}
		return voxel.Air
	}
	d := voxel.NewDims(8, 8, 8, 2)
	wide := voxel.NewDims(16, 8, 8, 2)

	atex := texture(ChunkCoord{}, d, world)
	for y := 0; y < d.Y; y++ {
		for z := 0; z < d.Z; z++ {
			i := d.Index(d.X, y, z)
			if atex[i] == voxel.Air {
				atex[i] = voxel.Stone
			} else {
				atex[i] = voxel.Air
			}
		}
	}
	a := mustChunk(t, ChunkCoord{}, d, atex)
	b := mustChunk(t, ChunkCoord{X: 1}, d, texture(ChunkCoord{X: 1}, d, world))
	merged := mustChunk(t, ChunkCoord{}, wide, texture(ChunkCoord{}, wide, world))

	for _, c := range []*Chunk{a, b, merged} {
		c.ComputeLight(nil)
	}
	a.ExchangeBoundaries(Neighbors{voxel.FaceRight: b})
	if err := a.BuildMesh(nil, meshing.Options{}); err != nil {
		t.Fatal(err)
	}
	if err := merged.BuildMesh(nil, meshing.Options{}); err != nil {
		t.Fatal(err)
	}

	var want []meshing.Vertex
	for _, v := range merged.Mesh().Opaque {
		if v.Position.X() < float32(d.X) {
			want = append(want, v)
		}
	}
	got := a.Mesh().Opaque
	if len(got) != len(want) {
		t.Fatalf("chunk has %d vertices, merged grid %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("vertex %d: chunk %+v, merged %+v", i, got[i], want[i])
		}
	}
}
