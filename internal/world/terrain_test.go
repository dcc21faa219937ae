package world

import (
	"errors"
	"testing"

	"mini-vox/internal/camera"
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

func testOptions() Options {
	return Options{
		Dims:              voxel.NewDims(8, 8, 8, 2),
		RenderDistance:    12,
		MaxHeight:         16,
		MaxChunksPerFrame: 4,
	}
}

// runUntilMeshed updates the terrain until every loaded chunk is meshed and nothing is queued.
func runUntilMeshed(t *testing.T, tr *Terrain, pos mgl32.Vec3) {
	t.Helper()
	for frame := 0; frame < 100; frame++ {
		if err := tr.UpdateChunks(pos); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if tr.Pending() > 0 || tr.Len() == 0 {
			continue
		}
		done := true
		for _, c := range tr.store.AppendChunks(nil) {
			done = done && c.IsMeshed()
		}
		if done {
			return
		}
	}
	t.Fatal("terrain did not settle")
}

func TestNewTerrainRejectsBadOptions(t *testing.T) {
	src := NewFlatGenerator(4)

	o := testOptions()
	o.Dims.Margin = 1
	if _, err := NewTerrain(o, src, nil); !errors.Is(err, ErrDataSizeMismatch) {
		t.Errorf("odd margin: %v", err)
	}

	o = testOptions()
	o.Dims = voxel.NewDims(1024, 64, 1024, 2)
	if _, err := NewTerrain(o, src, nil); !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("huge chunk: %v", err)
	}

	o = testOptions()
	o.MaxChunksPerFrame = 0
	if _, err := NewTerrain(o, src, nil); err == nil {
		t.Error("zero budget accepted")
	}
	if _, err := NewTerrain(testOptions(), nil, nil); err == nil {
		t.Error("nil source accepted")
	}
}

func TestTerrainGeneratesTopDown(t *testing.T) {
	o := testOptions()
	o.MaxChunksPerFrame = 1
	tr, err := NewTerrain(o, NewFlatGenerator(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.UpdateChunks(mgl32.Vec3{4, 20, 4}); err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 1 {
		t.Fatalf("generated %d chunks, want 1", tr.Len())
	}
	top := tr.Chunk(ChunkCoord{Y: tr.Layers() - 1})
	if top == nil || !top.IsLighted() {
		t.Fatal("first chunk should be the lit top of the camera column")
	}
	if top.IsMeshed() {
		t.Error("chunk meshed before its neighbours exist")
	}
}

func TestTerrainPipeline(t *testing.T) {
	up := &fakeUploader{}
	tr, err := NewTerrain(testOptions(), NewFlatGenerator(5), up)
	if err != nil {
		t.Fatal(err)
	}
	runUntilMeshed(t, tr, mgl32.Vec3{4, 20, 4})

	// 3x3 columns fall within 12 voxels of the camera, two layers each.
	if tr.Len() != 18 {
		t.Fatalf("loaded %d chunks, want 18", tr.Len())
	}
	ground := tr.Chunk(ChunkCoord{})
	if ground == nil || !ground.IsLighted() || !ground.IsWatered() || ground.IsUnderground() {
		t.Fatal("ground chunk not processed")
	}
	if tr.Chunk(ChunkCoord{Y: 1}).HasGeometry() {
		t.Error("sky chunk has geometry")
	}

	var surface, edge bool
	for _, v := range ground.Mesh().Opaque {
		if v.Position == (mgl32.Vec3{0, 4, 0}) {
			surface = true
			if v.ID != voxel.MaterialGrassTop || v.VisibleFaces != voxel.BitTop {
				t.Errorf("surface vertex id=%d faces=%#x", v.ID, v.VisibleFaces)
			}
			if v.FaceLight(voxel.FaceTop) != FullLight {
				t.Errorf("surface light = %d", v.FaceLight(voxel.FaceTop))
			}
		}
		if v.Position.Y() < 4 {
			edge = true
		}
	}
	if !surface {
		t.Error("no surface vertex at (0,4,0)")
	}
	if edge {
		t.Error("buried voxels emitted faces across chunk borders")
	}
	if up.uploads == 0 {
		t.Error("nothing uploaded")
	}

	tr.Close()
	if tr.Len() != 0 || up.released != up.uploads || up.doubleRelease != 0 {
		t.Errorf("after Close: len=%d uploads=%d released=%d double=%d",
			tr.Len(), up.uploads, up.released, up.doubleRelease)
	}
}

func TestVisibleChunks(t *testing.T) {
	tr, err := NewTerrain(testOptions(), NewFlatGenerator(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	pos := mgl32.Vec3{4, 20, 4}
	runUntilMeshed(t, tr, pos)

	cam := camera.New(70, 1, 0.1, 100)
	cam.SetPosition(pos)
	cam.SetOrientation(-90, -89)

	vis := tr.VisibleChunks(cam)
	if len(vis) == 0 {
		t.Fatal("looking down at the ground shows nothing")
	}
	for i, c := range vis {
		if !c.HasGeometry() || c.IsOutOfRange() {
			t.Errorf("chunk %v should not be drawn", c.Coord)
		}
		if i > 0 {
			prev := vis[i-1].Center().Sub(pos).LenSqr()
			if c.Center().Sub(pos).LenSqr() > prev {
				t.Error("visible chunks not sorted back to front")
			}
		}
	}

	cam.SetOrientation(-90, 89)
	if n := len(tr.VisibleChunks(cam)); n != 0 {
		t.Errorf("looking at the sky shows %d chunks", n)
	}
}

func TestOutOfRangeChunksDeleted(t *testing.T) {
	up := &fakeUploader{}
	tr, err := NewTerrain(testOptions(), NewFlatGenerator(5), up)
	if err != nil {
		t.Fatal(err)
	}
	runUntilMeshed(t, tr, mgl32.Vec3{4, 20, 4})
	uploads := up.uploads

	if err := tr.UpdateChunks(mgl32.Vec3{1000, 20, 1000}); err != nil {
		t.Fatal(err)
	}
	if tr.Chunk(ChunkCoord{}) != nil {
		t.Error("old chunk survived")
	}
	if up.released != uploads {
		t.Errorf("released %d of %d buffers", up.released, uploads)
	}
	if tr.Len() > testOptions().MaxChunksPerFrame {
		t.Errorf("generated %d chunks in one frame", tr.Len())
	}
}

func TestChunkPosition(t *testing.T) {
	tr, err := NewTerrain(testOptions(), NewFlatGenerator(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := tr.ChunkPosition(mgl32.Vec3{-0.5, 3, 9})
	if got != (ChunkCoord{X: -1, Y: 0, Z: 1}) {
		t.Errorf("ChunkPosition = %v", got)
	}
	n := tr.NeighbouringChunks(got)
	for i, c := range n {
		if c != nil {
			t.Errorf("neighbour %v present in empty terrain", voxel.Face(i))
		}
	}
}

func TestIsUnderwater(t *testing.T) {
	tr, err := NewTerrain(testOptions(), &FlatGenerator{Height: 3, WaterLevel: 6}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tr.Close()

	if tr.IsUnderwater(mgl32.Vec3{2, 4.5, 2}) {
		t.Error("underwater before any chunk is loaded")
	}
	runUntilMeshed(t, tr, mgl32.Vec3{4, 4, 4})

	cases := []struct {
		pos  mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{2, 4.5, 2}, true},
		{mgl32.Vec3{-3.2, 5.9, -1}, true},
		{mgl32.Vec3{2, 6.1, 2}, false},
		{mgl32.Vec3{2, 1.5, 2}, false}, // stone
		{mgl32.Vec3{2, 9, 2}, false},   // next layer
	}
	for _, c := range cases {
		if got := tr.IsUnderwater(c.pos); got != c.want {
			t.Errorf("IsUnderwater(%v) = %v, want %v", c.pos, got, c.want)
		}
	}
}
