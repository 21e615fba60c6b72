// Package camera provides the viewer's orbit camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cubelink/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float64 // Distance from center
	RotationX float64 // Pitch (vertical angle, radians)
	RotationY float64 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitCamera creates an orbit camera with defaults sized for the
// mechanism's working envelope.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        320.0,
		RotationX:       0.5,
		RotationY:       -0.8,
		MinDistance:     50.0,
		MaxDistance:     2000.0,
		MinPitch:        -1.45,
		MaxPitch:        1.45,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * gomath.Cos(c.RotationX) * gomath.Sin(c.RotationY)
	y := c.Distance * gomath.Sin(c.RotationX)
	z := c.Distance * gomath.Cos(c.RotationX) * gomath.Cos(c.RotationY)

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// HandlePan moves the center point in the camera's screen plane.
func (c *OrbitCamera) HandlePan(right, up float64) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	rightX := gomath.Cos(c.RotationY)
	rightZ := -gomath.Sin(c.RotationY)

	c.Center.X += rightX * right * speed
	c.Center.Z += rightZ * right * speed
	c.Center.Y += up * speed
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(center math.Vec3) {
	c.Center = center
}
