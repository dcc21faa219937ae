package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// planeEpsilon is how far the view-projection matrix may drift before the
// frustum planes are rebuilt.
const planeEpsilon = 1e-6

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera owns the view and projection matrices and the frustum derived from them.
type Camera struct {
	fov    float32 // degrees
	aspect float32
	near   float32
	far    float32

	position mgl32.Vec3
	yaw      float32 // degrees
	pitch    float32 // degrees

	projection     mgl32.Mat4
	view           mgl32.Mat4
	viewProjection mgl32.Mat4
	invView        mgl32.Mat4
	invProjection  mgl32.Mat4

	planes     Frustum
	planesFrom mgl32.Mat4
	planesInit bool
	dirty      bool
}

// New creates a camera at the origin looking down -Z.
func New(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		fov:    fov,
		aspect: aspect,
		near:   near,
		far:    far,
		yaw:    -90,
		dirty:  true,
	}
	c.Update()
	return c
}

// Update rebuilds dirty matrices and the frustum planes.
func (c *Camera) Update() {
	if !c.dirty {
		return
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.view = mgl32.LookAtV(c.position, c.position.Add(c.Front()), worldUp)
	c.viewProjection = c.projection.Mul4(c.view)
	c.invView = c.view.Inv()
	c.invProjection = c.projection.Inv()
	c.dirty = false
	c.UpdateFrustumPlanes()
}

// UpdateFrustumPlanes re-extracts the planes when the view-projection matrix changed.
func (c *Camera) UpdateFrustumPlanes() {
	if c.planesInit && matrixNearEqual(c.planesFrom, c.viewProjection, planeEpsilon) {
		return
	}
	c.planes = ExtractFrustum(c.viewProjection)
	c.planesFrom = c.viewProjection
	c.planesInit = true
}

// PointInFrustum reports whether p lies inside all six planes.
func (c *Camera) PointInFrustum(p mgl32.Vec3) bool {
	return c.planes.ContainsPoint(p)
}

// SphereInFrustum reports whether any part of the sphere may be visible.
func (c *Camera) SphereInFrustum(p mgl32.Vec3, radius float32) bool {
	return c.planes.IntersectsSphere(p, radius)
}

// AABBInFrustum reports whether the box starting at min may be visible.
func (c *Camera) AABBInFrustum(min, size mgl32.Vec3) bool {
	return c.planes.IntersectsAABB(min, size)
}

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.yaw))
	p := float64(mgl32.DegToRad(c.pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Right returns the unit vector to the right of the view direction, in the XZ plane.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(worldUp).Normalize()
}

// Move translates the camera along dir.
func (c *Camera) Move(dir mgl32.Vec3, dist float32) {
	if dir.Len() == 0 {
		return
	}
	c.position = c.position.Add(dir.Normalize().Mul(dist))
	c.dirty = true
}

// Rotate changes yaw and pitch in degrees, clamping pitch to avoid gimbal flip.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.yaw += dYaw
	c.pitch += dPitch
	if c.pitch > 89 {
		c.pitch = 89
	}
	if c.pitch < -89 {
		c.pitch = -89
	}
	c.dirty = true
}

// Setters

func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.dirty = true
}

func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.yaw = 0
	c.pitch = 0
	c.Rotate(yaw, pitch)
}

func (c *Camera) SetFov(fov float32) {
	c.fov = fov
	c.dirty = true
}

func (c *Camera) SetAspect(aspect float32) {
	c.aspect = aspect
	c.dirty = true
}

func (c *Camera) SetNear(near float32) {
	c.near = near
	c.dirty = true
}

func (c *Camera) SetFar(far float32) {
	c.far = far
	c.dirty = true
}

// Getters

func (c *Camera) Position() mgl32.Vec3             { return c.position }
func (c *Camera) Yaw() float32                     { return c.yaw }
func (c *Camera) Pitch() float32                   { return c.pitch }
func (c *Camera) Fov() float32                     { return c.fov }
func (c *Camera) Aspect() float32                  { return c.aspect }
func (c *Camera) Near() float32                    { return c.near }
func (c *Camera) Far() float32                     { return c.far }
func (c *Camera) ProjectionMatrix() mgl32.Mat4     { return c.projection }
func (c *Camera) ViewMatrix() mgl32.Mat4           { return c.view }
func (c *Camera) ViewProjectionMatrix() mgl32.Mat4 { return c.viewProjection }
func (c *Camera) InvViewMatrix() mgl32.Mat4        { return c.invView }
func (c *Camera) InvProjectionMatrix() mgl32.Mat4  { return c.invProjection }
func (c *Camera) Frustum() Frustum                 { return c.planes }
