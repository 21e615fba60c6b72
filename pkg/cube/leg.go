package cube

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/cubelink/pkg/math"
)

// Leg is the telescoping prismatic joint mounted on one corner piece. It is
// created with the corner at assembly and stays with that physical body for
// the cube's lifetime; face turns carry it along with the piece.
//
// The joint slides along the corner's outward space diagonal. The tip is the
// outer surface point of the docking sphere, at
//
//	vertex + diagonal*(anchor + base + extension + tipRadius)
//
// in the piece's own frame.
type Leg struct {
	Diagonal  math.Vec3 // unit outward direction in the piece frame
	Extension float64   // current travel, always in [0, MaxExtension]

	vertex math.Vec3 // outer corner vertex in the piece frame
	geom   Geometry

	target float64
	rate   float64
	active bool
}

// newLeg builds the joint for a corner's home cell.
func newLeg(home Coord, geom Geometry) *Leg {
	return &Leg{
		Diagonal: home.Vec(1 / gomath.Sqrt(3)),
		vertex:   home.Vec(geom.CellSize / 2),
		geom:     geom,
	}
}

// SetTarget starts an interpolation toward the given extension. The target is
// clamped to [0, MaxExtension]. A zero or negative rate fails with
// ErrInvalidRate and leaves the leg untouched.
func (l *Leg) SetTarget(target, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("leg rate %g: %w", rate, ErrInvalidRate)
	}
	if target < 0 {
		target = 0
	} else if target > l.geom.MaxExtension {
		target = l.geom.MaxExtension
	}
	l.target = target
	l.rate = rate
	l.active = true
	return nil
}

// Advance moves the extension toward the target by at most rate*dt. Arrival
// is exact: the extension lands on the target, never past it. Idle legs are
// unchanged.
func (l *Leg) Advance(dt float64) {
	if !l.active || dt <= 0 {
		return
	}
	remaining := l.target - l.Extension
	step := l.rate * dt
	if gomath.Abs(remaining) <= step {
		l.Extension = l.target
		l.active = false
		return
	}
	if remaining > 0 {
		l.Extension += step
	} else {
		l.Extension -= step
	}
}

// Active reports whether an interpolation toward a target is running.
func (l *Leg) Active() bool {
	return l.active
}

// Target returns the extension the leg is moving toward. Meaningful only
// while Active.
func (l *Leg) Target() float64 {
	return l.target
}

// VertexLocal returns the corner vertex the joint is anchored to, in the
// piece frame.
func (l *Leg) VertexLocal() math.Vec3 {
	return l.vertex
}

// TipLocal returns the tip sphere's outer surface point in the piece frame.
func (l *Leg) TipLocal() math.Vec3 {
	travel := l.geom.AnchorOffset + l.geom.BaseOffset + l.Extension + l.geom.TipRadius
	return l.vertex.Add(l.Diagonal.Scale(travel))
}

// TipWorld returns the tip position with the owning piece's placement and the
// cube root applied.
func (l *Leg) TipWorld(piece, root math.Transform) math.Vec3 {
	return root.Mul(piece).Apply(l.TipLocal())
}
