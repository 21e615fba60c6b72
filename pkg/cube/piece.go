package cube

import (
	"fmt"

	"github.com/Faultbox/cubelink/pkg/math"
)

// PieceKind classifies a piece by the number of exposed faces at its home
// cell.
type PieceKind int

// Piece kinds.
const (
	KindCenter PieceKind = iota
	KindEdge
	KindCorner
)

// String returns a human-readable kind name.
func (k PieceKind) String() string {
	switch k {
	case KindCenter:
		return "center"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Piece is one of the 26 movable rigid bodies of a cube. ID and Home are
// fixed at assembly and identify the physical body forever; Coord and Local
// change with every face turn that carries the piece. Corner pieces own a
// Leg, and the leg travels with the body, never with the cell.
type Piece struct {
	ID    int
	Kind  PieceKind
	Home  Coord
	Coord Coord
	Local math.Transform // placement relative to the cube root frame
	Leg   *Leg
}
