package voxel

// Face identifies one of the six faces of a voxel. The order is part of the
// vertex format: bit n of a visible-face mask and nibble n of a light word
// both refer to Face(n).
type Face int

const (
	FaceRight  Face = iota // +X
	FaceLeft               // -X
	FaceFront              // +Z
	FaceBack               // -Z
	FaceTop                // +Y
	FaceBottom             // -Y

	FaceCount = 6
)

// Face bits for visible-face masks.
const (
	BitRight  uint8 = 1 << FaceRight
	BitLeft   uint8 = 1 << FaceLeft
	BitFront  uint8 = 1 << FaceFront
	BitBack   uint8 = 1 << FaceBack
	BitTop    uint8 = 1 << FaceTop
	BitBottom uint8 = 1 << FaceBottom

	AllFaces uint8 = 0x3F
)

// Faces lists every face in mask order.
var Faces = [FaceCount]Face{FaceRight, FaceLeft, FaceFront, FaceBack, FaceTop, FaceBottom}

var faceNormals = [FaceCount][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
	{0, 1, 0},
	{0, -1, 0},
}

// Tangent frame (u, v) of each face. Corner order for AO is
// (-u,-v), (+u,-v), (+u,+v), (-u,+v).
var faceTangents = [FaceCount][2][3]int{
	{{0, 0, 1}, {0, 1, 0}},
	{{0, 0, 1}, {0, 1, 0}},
	{{1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, 1}},
	{{1, 0, 0}, {0, 0, 1}},
}

// Normal returns the unit offset pointing out of the face.
func (f Face) Normal() (dx, dy, dz int) {
	n := faceNormals[f]
	return n[0], n[1], n[2]
}

// Tangents returns the face's u and v axes.
func (f Face) Tangents() (u, v [3]int) {
	t := faceTangents[f]
	return t[0], t[1]
}

// Opposite returns the face on the other side of the voxel.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Bit returns the mask bit for the face.
func (f Face) Bit() uint8 {
	return 1 << f
}

func (f Face) String() string {
	switch f {
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}
