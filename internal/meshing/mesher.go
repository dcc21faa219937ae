package meshing

import (
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh holds the point lists of one chunk.
type Mesh struct {
	Opaque      []Vertex
	Transparent []Vertex
}

// Empty reports whether the mesh has nothing to draw.
func (m Mesh) Empty() bool {
	return len(m.Opaque) == 0 && len(m.Transparent) == 0
}

// Options tweaks the mesh builder.
type Options struct {
	// WaterAllFaces draws every water face touching air instead of only top and bottom.
	WaterAllFaces bool
}

// waterFaces is the fixed face set for water voxels.
const waterFaces = voxel.BitTop | voxel.BitBottom

// Build meshes a padded voxel grid with default options.
func Build(grid, light []byte, d voxel.Dims, underground bool) Mesh {
	return BuildWithOptions(grid, light, d, underground, Options{})
}

// BuildWithOptions scans the logical extent of the grid and emits one vertex
// per voxel with at least one visible face. Neighbour reads reach into the
// margin, which must already hold the adjacent chunks' voxels.
func BuildWithOptions(grid, light []byte, d voxel.Dims, underground bool, opts Options) Mesh {
	defer profiling.Track("meshing.Build")()

	mesh := Mesh{
		Opaque: make([]Vertex, 0, 1024),
	}
	up := d.StrideY()

	for y := 0; y < d.Y; y++ {
		for z := 0; z < d.Z; z++ {
			for x := 0; x < d.X; x++ {
				i := d.Index(x, y, z)
				b := grid[i]

				switch {
				case b == voxel.Air:
					continue

				case b == voxel.Water:
					touching := facesTouching(grid, d, i, isAir)
					if touching == 0 {
						continue
					}
					visible := waterFaces
					if opts.WaterAllFaces {
						visible = touching
					}
					mesh.Transparent = append(mesh.Transparent,
						newVertex(grid, light, d, i, x, y, z, voxel.MaterialWater, visible))

				default:
					visible := facesTouching(grid, d, i, voxel.IsTransparent)
					if visible == 0 {
						continue
					}
					id := voxel.Material(b)
					if b == voxel.Dirt && grid[i+up] == voxel.Air && !underground {
						id = voxel.MaterialGrassTop
					}
					mesh.Opaque = append(mesh.Opaque,
						newVertex(grid, light, d, i, x, y, z, id, visible))
				}
			}
		}
	}
	return mesh
}

func isAir(b byte) bool {
	return b == voxel.Air
}

// facesTouching returns a face mask of the neighbours matching pred.
func facesTouching(grid []byte, d voxel.Dims, i int, pred func(byte) bool) uint8 {
	var mask uint8
	for _, f := range voxel.Faces {
		if pred(grid[i+d.Offset(f)]) {
			mask |= f.Bit()
		}
	}
	return mask
}

func newVertex(grid, light []byte, d voxel.Dims, i, x, y, z int, id, visible uint8) Vertex {
	return Vertex{
		Position:     mgl32.Vec3{float32(x), float32(y), float32(z)},
		AO:           packFaces(grid, d, i, visible),
		ID:           id,
		VisibleFaces: visible,
		Light:        faceLight(light, d, i),
	}
}

func faceLight(light []byte, d voxel.Dims, i int) uint32 {
	if len(light) == 0 {
		return 0
	}
	var levels [voxel.FaceCount]uint8
	for _, f := range voxel.Faces {
		levels[f] = light[i+d.Offset(f)]
	}
	return PackLight(levels)
}
