package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cubelink/pkg/math"
)

func TestOrbitCamera_Position(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10, Y: 20, Z: 30}
	c.Distance = 100
	c.RotationX = 0
	c.RotationY = 0

	// Zero yaw and pitch puts the camera straight down +Z from the center.
	pos := c.Position()
	want := math.Vec3{X: 10, Y: 20, Z: 130}
	if gomath.Abs(pos.X-want.X) > 1e-9 ||
		gomath.Abs(pos.Y-want.Y) > 1e-9 ||
		gomath.Abs(pos.Z-want.Z) > 1e-9 {
		t.Errorf("position %v, want %v", pos, want)
	}

	// The camera always sits Distance away from the center.
	c.RotationX = 0.7
	c.RotationY = -2.1
	d := c.Position().Sub(c.Center).Length()
	if gomath.Abs(d-100) > 1e-9 {
		t.Errorf("distance from center %.9f, want 100", d)
	}
}

func TestOrbitCamera_HandleDrag_ClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch %.3f not clamped to max %.3f", c.RotationX, c.MaxPitch)
	}

	c.HandleDrag(0, -1e6)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch %.3f not clamped to min %.3f", c.RotationX, c.MinPitch)
	}
}

func TestOrbitCamera_HandleZoom_ClampsDistance(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleZoom(1e9)
	if c.Distance != c.MinDistance {
		t.Errorf("distance %.3f not clamped to min %.3f", c.Distance, c.MinDistance)
	}

	c.HandleZoom(-1e9)
	if c.Distance != c.MaxDistance {
		t.Errorf("distance %.3f not clamped to max %.3f", c.Distance, c.MaxDistance)
	}
}
