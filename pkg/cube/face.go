package cube

import (
	"fmt"
	"strings"
)

// Face identifies one of the six rotating slices by the conventional letters:
// R(ight), L(eft), U(p), D(own), F(ront), B(ack).
type Face int

// Face labels.
const (
	FaceR Face = iota
	FaceL
	FaceU
	FaceD
	FaceF
	FaceB
)

// faceSpec fixes a face's rotation axis and the coordinate component value
// that selects its slice. Selection always tests a piece's current
// coordinate, never its home.
type faceSpec struct {
	axis axis
	sel  int
}

var faceSpecs = [...]faceSpec{
	FaceR: {axisX, 1},
	FaceL: {axisX, -1},
	FaceU: {axisY, 1},
	FaceD: {axisY, -1},
	FaceF: {axisZ, 1},
	FaceB: {axisZ, -1},
}

// valid reports whether f is one of the six defined faces.
func (f Face) valid() bool {
	return f >= FaceR && f <= FaceB
}

// contains reports whether c lies in the face's slice.
func (f Face) contains(c Coord) bool {
	spec := faceSpecs[f]
	switch spec.axis {
	case axisX:
		return c.X == spec.sel
	case axisY:
		return c.Y == spec.sel
	default:
		return c.Z == spec.sel
	}
}

// String returns the face letter.
func (f Face) String() string {
	switch f {
	case FaceR:
		return "R"
	case FaceL:
		return "L"
	case FaceU:
		return "U"
	case FaceD:
		return "D"
	case FaceF:
		return "F"
	case FaceB:
		return "B"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

// ParseFace maps a face letter to its Face. Lowercase is accepted.
func ParseFace(s string) (Face, error) {
	switch strings.ToUpper(s) {
	case "R":
		return FaceR, nil
	case "L":
		return FaceL, nil
	case "U":
		return FaceU, nil
	case "D":
		return FaceD, nil
	case "F":
		return FaceF, nil
	case "B":
		return FaceB, nil
	default:
		return 0, fmt.Errorf("face %q: %w", s, ErrInvalidFace)
	}
}
