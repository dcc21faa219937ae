package meshing

import "mini-vox/internal/voxel"

// Corner weights. Two occluding sides already saturate the corner.
const (
	sideWeight   = 1.5
	cornerWeight = 1.0
	aoCap        = 3.0
)

var cornerSigns = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// cornerLevel maps the three occluders around a face corner to a level 0..3.
func cornerLevel(side1, corner, side2 bool) uint8 {
	v := b2f(side1)*sideWeight + b2f(corner)*cornerWeight + b2f(side2)*sideWeight
	if v > aoCap {
		v = aoCap
	}
	return uint8(v)
}

func axisStride(d voxel.Dims, a [3]int) int {
	return a[0] + a[1]*d.StrideY() + a[2]*d.StrideZ()
}

// faceAO samples the 8 voxels around face f of voxel i, in the layer the face
// looks into, and returns the level of each corner.
func faceAO(grid []byte, d voxel.Dims, i int, f voxel.Face) [4]uint8 {
	u, v := f.Tangents()
	su, sv := axisStride(d, u), axisStride(d, v)
	base := i + d.Offset(f)

	var out [4]uint8
	for c, s := range cornerSigns {
		side1 := voxel.IsOpaque(grid[base+s[0]*su])
		side2 := voxel.IsOpaque(grid[base+s[1]*sv])
		corner := voxel.IsOpaque(grid[base+s[0]*su+s[1]*sv])
		out[c] = cornerLevel(side1, corner, side2)
	}
	return out
}

// needsFlip picks the diagonal that splits the darker corners apart.
func needsFlip(c [4]uint8) bool {
	return int(c[0])+int(c[2]) > int(c[1])+int(c[3])
}

// packFaces computes AO and flip bits for every visible face.
func packFaces(grid []byte, d voxel.Dims, i int, visible uint8) [2]uint32 {
	var ao [2]uint32
	for _, f := range voxel.Faces {
		if visible&f.Bit() == 0 {
			continue
		}
		corners := faceAO(grid, d, i, f)
		PackAO(&ao, f, corners)
		if needsFlip(corners) {
			SetFlip(&ao, f)
		}
	}
	return ao
}
