package world

import (
	"errors"
	"fmt"
	"testing"

	"mini-vox/internal/meshing"
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewChunkSizeMismatch(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 2)
	_, err := NewChunk(ChunkCoord{}, d, make([]byte, d.PaddedVolume()-1))
	if !errors.Is(err, ErrDataSizeMismatch) {
		t.Fatalf("err = %v, want ErrDataSizeMismatch", err)
	}
}

func TestNewChunkInvalidDims(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 3)
	_, err := NewChunk(ChunkCoord{}, d, make([]byte, d.PaddedVolume()))
	if !errors.Is(err, ErrDataSizeMismatch) {
		t.Fatalf("odd margin: err = %v, want ErrDataSizeMismatch", err)
	}
}

func TestNewChunkTooLarge(t *testing.T) {
	d := voxel.NewDims(512, 512, 512, 2)
	_, err := NewChunk(ChunkCoord{}, d, nil)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("err = %v, want ErrResourceExhausted", err)
	}
}

func TestNewChunkCopiesTexture(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 2)
	tex := make([]byte, d.PaddedVolume())
	tex[d.Index(1, 2, 3)] = voxel.Stone

	c := mustChunk(t, ChunkCoord{X: 2, Y: 1, Z: -1}, d, tex)
	tex[d.Index(1, 2, 3)] = voxel.Air

	if c.Block(1, 2, 3) != voxel.Stone {
		t.Error("chunk shares memory with the texture")
	}
	if c.Position != (mgl32.Vec3{16, 8, -8}) {
		t.Errorf("position = %v", c.Position)
	}
	if c.IsMeshed() || c.IsLighted() || c.IsWatered() || c.IsUnderground() || c.IsOutOfRange() {
		t.Error("new chunk has flags set")
	}
}

func TestBuildMeshReleasesOldBuffers(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 2)
	tex := make([]byte, d.PaddedVolume())
	tex[d.Index(4, 4, 4)] = voxel.Stone
	c := mustChunk(t, ChunkCoord{}, d, tex)

	up := &fakeUploader{}
	if err := c.BuildMesh(up, meshing.Options{}); err != nil {
		t.Fatal(err)
	}
	first := c.Buffers()
	if first == nil || !c.IsMeshed() || !c.HasGeometry() {
		t.Fatal("mesh not uploaded")
	}

	if err := c.BuildMesh(up, meshing.Options{}); err != nil {
		t.Fatal(err)
	}
	if up.uploads != 2 || up.released != 1 {
		t.Errorf("uploads=%d released=%d, want 2/1", up.uploads, up.released)
	}
	if c.Buffers() == first {
		t.Error("rebuild kept the old buffers")
	}

	c.Destroy()
	if up.released != 2 || up.doubleRelease != 0 {
		t.Errorf("after Destroy released=%d double=%d", up.released, up.doubleRelease)
	}
	if c.Grid() != nil || c.LightMap() != nil || c.LightMask() != nil {
		t.Error("Destroy kept voxel data")
	}
}

func TestBuildMeshUploadError(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 2)
	tex := make([]byte, d.PaddedVolume())
	tex[d.Index(0, 0, 0)] = voxel.Dirt
	c := mustChunk(t, ChunkCoord{}, d, tex)

	up := &fakeUploader{err: fmt.Errorf("gl: out of memory: %w", ErrResourceExhausted)}
	err := c.BuildMesh(up, meshing.Options{})
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("err = %v, want ErrResourceExhausted", err)
	}
	if c.Buffers() != nil {
		t.Error("failed upload left buffers behind")
	}
}

func TestEmptyChunkSkipsUpload(t *testing.T) {
	d := voxel.NewDims(8, 8, 8, 2)
	c := mustChunk(t, ChunkCoord{}, d, make([]byte, d.PaddedVolume()))

	up := &fakeUploader{}
	if err := c.BuildMesh(up, meshing.Options{}); err != nil {
		t.Fatal(err)
	}
	if !c.IsMeshed() || c.HasGeometry() || c.Buffers() != nil || up.uploads != 0 {
		t.Errorf("meshed=%v geometry=%v uploads=%d", c.IsMeshed(), c.HasGeometry(), up.uploads)
	}
}

func TestFloorDiv(t *testing.T) {
	cases := [][3]int{{7, 8, 0}, {8, 8, 1}, {-1, 8, -1}, {-8, 8, -1}, {-9, 8, -2}}
	for _, c := range cases {
		if got := floorDiv(c[0], c[1]); got != c[2] {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c[0], c[1], got, c[2])
		}
	}
}
