// Package picking casts screen rays into the scene for piece selection.
package picking

import (
	gomath "math"

	"github.com/Faultbox/cubelink/pkg/math"
)

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3
}

// ScreenRay builds the ray through a screen pixel for a camera at eye looking
// toward target with the given vertical field of view in degrees. px and py
// are pixel coordinates with the origin at the top left; width and height are
// the viewport dimensions in the same units.
//
// The basis degenerates when the view direction is parallel to world up; the
// orbit camera clamps pitch short of vertical, so callers behind it never hit
// that case.
func ScreenRay(eye, target math.Vec3, fovDeg float64, px, py, width, height int) (Ray, error) {
	forward, err := target.Sub(eye).Normalize()
	if err != nil {
		return Ray{}, err
	}
	right, err := forward.Cross(math.Vec3{Y: 1}).Normalize()
	if err != nil {
		return Ray{}, err
	}
	up := right.Cross(forward)

	aspect := float64(width) / float64(height)
	tanHalf := gomath.Tan(fovDeg * gomath.Pi / 360)

	ndcX := 2*float64(px)/float64(width) - 1
	ndcY := 1 - 2*float64(py)/float64(height)

	dir, err := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()
	if err != nil {
		return Ray{}, err
	}

	return Ray{Origin: eye, Dir: dir}, nil
}

// IntersectBox tests the ray against an oriented box: frame places a cube of
// the given half extent centered on its own origin. Returns the entry
// distance along the ray; a ray starting inside reports the exit distance
// instead.
func (r Ray) IntersectBox(frame math.Transform, half float64) (float64, bool) {
	inv := frame.Inverse()
	origin := inv.Apply(r.Origin)
	dir := inv.ApplyDir(r.Dir)

	tmin := gomath.Inf(-1)
	tmax := gomath.Inf(1)

	for _, s := range [3]struct{ o, d float64 }{
		{origin.X, dir.X},
		{origin.Y, dir.Y},
		{origin.Z, dir.Z},
	} {
		if s.d == 0 {
			if s.o < -half || s.o > half {
				return 0, false
			}
			continue
		}
		t1 := (-half - s.o) / s.d
		t2 := (half - s.o) / s.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = gomath.Max(tmin, t1)
		tmax = gomath.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
