package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is n·p + D = 0; points with a positive distance lie inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Plane order in a Frustum.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
)

// Frustum holds six inward-facing planes.
type Frustum [6]Plane

// ExtractFrustum builds the six planes from a combined projection*view matrix.
// Planes come out in order: left, right, bottom, top, near, far.
func ExtractFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 matrices are column-major
	r0 := mgl32.Vec4{clip[0], clip[4], clip[8], clip[12]}
	r1 := mgl32.Vec4{clip[1], clip[5], clip[9], clip[13]}
	r2 := mgl32.Vec4{clip[2], clip[6], clip[10], clip[14]}
	r3 := mgl32.Vec4{clip[3], clip[7], clip[11], clip[15]}

	var f Frustum
	f[PlaneLeft] = planeFromRow(r3.Add(r0))
	f[PlaneRight] = planeFromRow(r3.Sub(r0))
	f[PlaneBottom] = planeFromRow(r3.Add(r1))
	f[PlaneTop] = planeFromRow(r3.Sub(r1))
	f[PlaneNear] = planeFromRow(r3.Add(r2))
	f[PlaneFar] = planeFromRow(r3.Sub(r2))
	return f
}

func planeFromRow(r mgl32.Vec4) Plane {
	n := r.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{Normal: n, D: r.W()}
	}
	return Plane{Normal: n.Mul(1 / l), D: r.W() / l}
}

// DistancePointToPlane returns the signed distance of point to plane.
func DistancePointToPlane(point mgl32.Vec3, plane Plane) float32 {
	return plane.Normal.Dot(point) + plane.D
}

// ContainsPoint reports whether p is on the inner side of every plane.
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for i := range f {
		if DistancePointToPlane(p, f[i]) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere keeps spheres that straddle a plane.
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f {
		if DistancePointToPlane(center, f[i]) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB tests the box [min, min+size] with the positive-vertex method.
// It never rejects a visible box but may keep boxes near plane intersections.
func (f *Frustum) IntersectsAABB(min, size mgl32.Vec3) bool {
	max := min.Add(size)
	for i := range f {
		p := f[i]
		px := max.X()
		if p.Normal.X() < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.Normal.Y() < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.Normal.Z() < 0 {
			pz = min.Z()
		}
		if p.Normal.X()*px+p.Normal.Y()*py+p.Normal.Z()*pz+p.D < 0 {
			return false
		}
	}
	return true
}

// matrixNearEqual compares two matrices for approximate equality within epsilon
func matrixNearEqual(a, b mgl32.Mat4, epsilon float32) bool {
	for i := 0; i < 16; i++ {
		if float32(math.Abs(float64(a[i]-b[i]))) > epsilon {
			return false
		}
	}
	return true
}
