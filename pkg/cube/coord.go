package cube

import (
	"fmt"

	"github.com/Faultbox/cubelink/pkg/math"
)

// Coord identifies a lattice cell of the 3x3x3 grid. Each component is in
// {-1, 0, 1}. The 26 cells surrounding the fixed core at (0,0,0) each hold
// exactly one piece; the core itself holds none.
type Coord struct {
	X, Y, Z int
}

// Valid reports whether c is one of the 26 piece cells.
func (c Coord) Valid() bool {
	if c.X < -1 || c.X > 1 || c.Y < -1 || c.Y > 1 || c.Z < -1 || c.Z > 1 {
		return false
	}
	return c != Coord{}
}

// Kind classifies the cell by how many of its components are zero.
func (c Coord) Kind() PieceKind {
	zeros := 0
	if c.X == 0 {
		zeros++
	}
	if c.Y == 0 {
		zeros++
	}
	if c.Z == 0 {
		zeros++
	}
	switch zeros {
	case 0:
		return KindCorner
	case 1:
		return KindEdge
	default:
		return KindCenter
	}
}

// Vec returns the cell offset scaled by the given per-cell distance.
func (c Coord) Vec(spacing float64) math.Vec3 {
	return math.Vec3{
		X: float64(c.X) * spacing,
		Y: float64(c.Y) * spacing,
		Z: float64(c.Z) * spacing,
	}
}

// String returns the coordinate as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// rotated returns c turned by one right-handed quarter turn about the given
// axis, positive when positive is true. Integer arithmetic keeps grid motion
// exact; no rounding is involved.
func (c Coord) rotated(ax axis, positive bool) Coord {
	if positive {
		switch ax {
		case axisX:
			return Coord{c.X, -c.Z, c.Y}
		case axisY:
			return Coord{c.Z, c.Y, -c.X}
		default:
			return Coord{-c.Y, c.X, c.Z}
		}
	}
	switch ax {
	case axisX:
		return Coord{c.X, c.Z, -c.Y}
	case axisY:
		return Coord{-c.Z, c.Y, c.X}
	default:
		return Coord{c.Y, -c.X, c.Z}
	}
}

// axis selects one of the three world axes.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// vec returns the unit vector along the axis.
func (a axis) vec() math.Vec3 {
	switch a {
	case axisX:
		return math.Vec3{X: 1}
	case axisY:
		return math.Vec3{Y: 1}
	default:
		return math.Vec3{Z: 1}
	}
}
