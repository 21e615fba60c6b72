package cube

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/cubelink/pkg/math"
)

// SolveDock returns the root transform cube b must adopt so that the
// receiving corner's leg tip meets the driving corner's leg tip, separated by
// gap along the shared diagonal axis, with the two corners' outward diagonals
// exactly antiparallel. Corners are identified by home cell, so the physical
// leg-bearing bodies are used no matter where turns have carried them.
//
// The result is a pure closed-form function of current state. It is meant to
// be recomputed on every step where the driving leg's extension or cube a's
// transforms change; repeated calls with unchanged inputs return identical
// output, so the docked pose self-corrects and cannot drift.
func SolveDock(a *Cube, cornerA Coord, b *Cube, cornerB Coord, gap float64) (math.Transform, error) {
	pa, err := a.Corner(cornerA)
	if err != nil {
		return math.Transform{}, fmt.Errorf("driving corner: %w", err)
	}
	pb, err := b.Corner(cornerB)
	if err != nil {
		return math.Transform{}, fmt.Errorf("receiving corner: %w", err)
	}

	worldA := a.root.Mul(pa.Local)
	tipA := pa.Leg.TipWorld(pa.Local, a.root)
	diagA := worldA.ApplyDir(pa.Leg.Diagonal)

	// Rotation for b: bring the receiving corner's root-frame diagonal onto
	// the driving corner's piece-frame diagonal, then mirror the driving
	// corner's world orientation flipped half a turn about the contact axis.
	// For the canonical pairing of fully opposing, unturned corners the
	// alignment is the identity and this reduces to flip∘worldA.
	diagBRoot := pb.Local.ApplyDir(pb.Leg.Diagonal)
	align, err := math.RotationBetween(diagBRoot, pa.Leg.Diagonal.Scale(-1))
	if err != nil {
		return math.Transform{}, fmt.Errorf("aligning dock diagonals: %w", err)
	}
	rotB := math.QuatFromAxisAngle(diagA, gomath.Pi).Mul(worldA.Rot).Mul(align)

	// The receiving tip in b's root frame includes the receiving piece's own
	// placement; the only additive term along the axis is the explicit gap.
	tipBRoot := pb.Local.Apply(pb.Leg.TipLocal())
	pos := tipA.Sub(rotB.Rotate(tipBRoot)).Add(diagA.Scale(gap))

	return math.Transform{Rot: rotB, Pos: pos}, nil
}

// DockLink names a standing docked pairing between two cubes. The receiving
// cube's root transform is derived output: Apply overwrites it from the
// driving side's current state.
type DockLink struct {
	Drive       *Cube
	DriveCorner Coord
	Recv        *Cube
	RecvCorner  Coord
	Gap         float64
}

// Apply re-solves the docked placement and moves the receiving cube onto it.
func (l DockLink) Apply() error {
	t, err := SolveDock(l.Drive, l.DriveCorner, l.Recv, l.RecvCorner, l.Gap)
	if err != nil {
		return err
	}
	l.Recv.SetRootTransform(t)
	return nil
}
