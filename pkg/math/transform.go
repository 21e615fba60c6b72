package math

// Transform is a rigid placement: a rotation followed by a translation.
// Apply rotates first, then translates.
type Transform struct {
	Rot Quat
	Pos Vec3
}

// TransformIdentity returns the identity placement.
func TransformIdentity() Transform {
	return Transform{Rot: QuatIdentity()}
}

// Apply transforms a point: Rot*p + Pos.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rot.Rotate(p).Add(t.Pos)
}

// ApplyDir transforms a direction, ignoring translation.
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return t.Rot.Rotate(d)
}

// Mul composes two transforms. t.Mul(other) applies other first, then t,
// mirroring matrix multiplication order.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Rot: t.Rot.Mul(other.Rot),
		Pos: t.Rot.Rotate(other.Pos).Add(t.Pos),
	}
}

// Inverse returns the transform mapping t's output frame back to its input
// frame. t.Rot must be unit length.
func (t Transform) Inverse() Transform {
	inv := t.Rot.Conjugate()
	return Transform{
		Rot: inv,
		Pos: inv.Rotate(t.Pos).Scale(-1),
	}
}

// Mat4 returns the equivalent 4x4 matrix.
func (t Transform) Mat4() Mat4 {
	return Translate(t.Pos.X, t.Pos.Y, t.Pos.Z).Mul(t.Rot.ToMat4())
}

// RotateAbout returns the rigid transform rotating by angle radians around an
// axis line through center.
func RotateAbout(axis Vec3, angle float64, center Vec3) Transform {
	rot := QuatFromAxisAngle(axis, angle)
	return Transform{
		Rot: rot,
		Pos: center.Sub(rot.Rotate(center)),
	}
}
