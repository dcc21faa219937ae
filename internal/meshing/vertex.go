package meshing

import (
	"mini-vox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one visible voxel. Faces are expanded to quads on the GPU, so the
// bit layout of AO and Light is shared with the geometry shader:
//
//	AO[0]  bits 8f+2c   corner c of face f, f in right,left,front,back
//	AO[1]  bits 8f'+2c  corner c of face 4+f', f' in top,bottom
//	AO[1]  bits 16..21  quad flip, bit per face
//	Light  bits 4f      light level seen by face f
//
// Corner order within a face is (-u,-v), (+u,-v), (+u,+v), (-u,+v) in the
// face's tangent frame (see voxel.Face.Tangents).
type Vertex struct {
	Position     mgl32.Vec3
	AO           [2]uint32
	ID           uint8
	VisibleFaces uint8
	Light        uint32
}

const (
	aoBitsPerCorner = 2
	aoCornerMask    = 1<<aoBitsPerCorner - 1
	aoBitsPerFace   = 4 * aoBitsPerCorner
	aoFacesPerWord  = 4
	flipShift       = 16

	lightBitsPerFace = 4
	lightMask        = 1<<lightBitsPerFace - 1
)

// MaxAO is the strongest occlusion level a corner can carry.
const MaxAO = 3

func aoSlot(f voxel.Face) (word int, shift uint) {
	if int(f) < aoFacesPerWord {
		return 0, uint(f) * aoBitsPerFace
	}
	return 1, uint(int(f)-aoFacesPerWord) * aoBitsPerFace
}

// PackAO stores the four corner levels of a face into ao.
func PackAO(ao *[2]uint32, f voxel.Face, corners [4]uint8) {
	word, shift := aoSlot(f)
	var bits uint32
	for c, level := range corners {
		if level > MaxAO {
			level = MaxAO
		}
		bits |= uint32(level) << (uint(c) * aoBitsPerCorner)
	}
	ao[word] &^= uint32(0xFF) << shift
	ao[word] |= bits << shift
}

// SetFlip marks face f as needing its quad triangulated along the other diagonal.
func SetFlip(ao *[2]uint32, f voxel.Face) {
	ao[1] |= 1 << (flipShift + uint(f))
}

// CornerAO returns the occlusion level of a face corner.
func (v Vertex) CornerAO(f voxel.Face, corner int) uint8 {
	word, shift := aoSlot(f)
	return uint8(v.AO[word]>>(shift+uint(corner)*aoBitsPerCorner)) & aoCornerMask
}

// Flipped reports the quad flip bit of face f.
func (v Vertex) Flipped(f voxel.Face) bool {
	return v.AO[1]>>(flipShift+uint(f))&1 != 0
}

// FlipMask returns the 6-bit flip mask.
func (v Vertex) FlipMask() uint8 {
	return uint8(v.AO[1]>>flipShift) & voxel.AllFaces
}

// PackLight builds a light word from six levels in face order.
func PackLight(levels [voxel.FaceCount]uint8) uint32 {
	var w uint32
	for f, l := range levels {
		w |= uint32(l&lightMask) << (uint(f) * lightBitsPerFace)
	}
	return w
}

// FaceLight returns the light level stored for face f.
func (v Vertex) FaceLight(f voxel.Face) uint8 {
	return uint8(v.Light>>(uint(f)*lightBitsPerFace)) & lightMask
}

// HasFace reports whether face f is drawn.
func (v Vertex) HasFace(f voxel.Face) bool {
	return v.VisibleFaces&f.Bit() != 0
}
