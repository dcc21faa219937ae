package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// near compares positions absolutely; float32 trig leaves ~1e-7 on zero axes.
func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func TestFlyControllerMove(t *testing.T) {
	c := New(70, 1, 0.1, 100)
	fc := FlyController{Speed: 10, SprintMultiplier: 3, Sensitivity: 0.1}

	fc.Move(c, Movement{Forward: 1}, 0.5)
	if !near(c.Position(), mgl32.Vec3{0, 0, -5}) {
		t.Errorf("forward = %v, want (0,0,-5)", c.Position())
	}

	c.SetPosition(mgl32.Vec3{})
	c.SetOrientation(-90, 60)
	fc.Move(c, Movement{Forward: 1, Sprint: true}, 1)
	if p := c.Position(); p.Y() != 0 || !mgl32.FloatEqualThreshold(p.Len(), 30, 1e-3) {
		t.Errorf("pitched sprint = %v, want 30 voxels on the ground plane", p)
	}

	c.SetPosition(mgl32.Vec3{})
	fc.Move(c, Movement{Up: -1}, 1)
	if !near(c.Position(), mgl32.Vec3{0, -10, 0}) {
		t.Errorf("down = %v", c.Position())
	}

	c.SetPosition(mgl32.Vec3{})
	fc.Move(c, Movement{}, 1)
	if c.Position() != (mgl32.Vec3{}) {
		t.Error("no input moved the camera")
	}
}

func TestFlyControllerLook(t *testing.T) {
	c := New(70, 1, 0.1, 100)
	fc := FlyController{Sensitivity: 0.5}
	fc.Look(c, 20, -10)
	if c.Yaw() != -80 || c.Pitch() != 5 {
		t.Errorf("yaw=%v pitch=%v, want -80/5", c.Yaw(), c.Pitch())
	}
}
