package camera

import "github.com/go-gl/mathgl/mgl32"

// Movement is one frame of directional input, each axis in [-1, 1].
type Movement struct {
	Forward, Right, Up float32
	Sprint             bool
}

// FlyController moves a camera freely: horizontal movement follows the yaw,
// vertical movement is along world up.
type FlyController struct {
	Speed            float32 // voxels per second
	SprintMultiplier float32
	Sensitivity      float32 // degrees per pixel
}

// Move applies a frame of movement over dt seconds.
func (fc FlyController) Move(c *Camera, m Movement, dt float32) {
	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	dir := flat.Mul(m.Forward).
		Add(c.Right().Mul(m.Right)).
		Add(worldUp.Mul(m.Up))

	speed := fc.Speed
	if m.Sprint && fc.SprintMultiplier > 0 {
		speed *= fc.SprintMultiplier
	}
	c.Move(dir, speed*dt)
}

// Look turns the camera by a mouse delta in pixels. Moving the mouse up looks up.
func (fc FlyController) Look(c *Camera, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.Rotate(float32(dx)*fc.Sensitivity, float32(-dy)*fc.Sensitivity)
}
