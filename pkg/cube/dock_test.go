package cube

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/cubelink/pkg/math"
)

// dockPair builds the canonical pairing: cube a drives from its (1,1,1)
// corner, cube b receives on its fully opposing (-1,-1,-1) corner.
func dockPair() (*Cube, *Cube) {
	return New(DefaultGeometry()), New(DefaultGeometry())
}

// tipDistance solves the dock, applies it, and returns the world distance
// between the two leg tips.
func tipDistance(t *testing.T, a, b *Cube, gap float64) float64 {
	t.Helper()
	tr, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{-1, -1, -1}, gap)
	if err != nil {
		t.Fatalf("SolveDock() error = %v", err)
	}
	b.SetRootTransform(tr)

	tipA, err := a.TipWorld(Coord{1, 1, 1})
	if err != nil {
		t.Fatalf("TipWorld(a) error = %v", err)
	}
	tipB, err := b.TipWorld(Coord{-1, -1, -1})
	if err != nil {
		t.Fatalf("TipWorld(b) error = %v", err)
	}
	return tipA.Distance(tipB)
}

func TestSolveDock_TipsCoincideAtZeroGap(t *testing.T) {
	a, b := dockPair()
	if d := tipDistance(t, a, b, 0); d > 1e-6 {
		t.Errorf("tip distance = %v, want 0", d)
	}
}

func TestSolveDock_TipsCoincideAfterTurnHistory(t *testing.T) {
	a, b := dockPair()

	moves, err := ParseMoves("R U F' D L2 B")
	if err != nil {
		t.Fatalf("ParseMoves() error = %v", err)
	}
	for _, m := range moves {
		if err := a.TurnFace(m.Face, m.Clockwise); err != nil {
			t.Fatalf("TurnFace(%v) error = %v", m, err)
		}
	}

	if d := tipDistance(t, a, b, 0); d > 1e-6 {
		t.Errorf("tip distance after turn history = %v, want 0", d)
	}
}

func TestSolveDock_TipsCoincideAcrossExtensions(t *testing.T) {
	a, b := dockPair()

	for _, ext := range []float64{0, 10, 25, 30} {
		if err := a.SetLegTarget(Coord{1, 1, 1}, ext, 100); err != nil {
			t.Fatalf("SetLegTarget() error = %v", err)
		}
		a.AdvanceLegs(1)
		if err := b.SetLegTarget(Coord{-1, -1, -1}, ext, 100); err != nil {
			t.Fatalf("SetLegTarget() error = %v", err)
		}
		b.AdvanceLegs(1)

		if d := tipDistance(t, a, b, 0); d > 1e-6 {
			t.Errorf("extension %v: tip distance = %v, want 0", ext, d)
		}
	}
}

func TestSolveDock_GapSeparatesAlongAxis(t *testing.T) {
	a, b := dockPair()
	const gap = 7.5

	tr, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{-1, -1, -1}, gap)
	if err != nil {
		t.Fatalf("SolveDock() error = %v", err)
	}
	b.SetRootTransform(tr)

	tipA, _ := a.TipWorld(Coord{1, 1, 1})
	tipB, _ := b.TipWorld(Coord{-1, -1, -1})

	if d := tipA.Distance(tipB); gomath.Abs(d-gap) > 1e-6 {
		t.Errorf("tip separation = %v, want %v", d, gap)
	}

	// The separation lies along the driving diagonal.
	diag := math.Vec3{X: 1, Y: 1, Z: 1}.Scale(1 / gomath.Sqrt(3))
	if along := tipB.Sub(tipA).Dot(diag); gomath.Abs(along-gap) > 1e-6 {
		t.Errorf("separation along axis = %v, want %v", along, gap)
	}
}

func TestSolveDock_DiagonalsAntiparallel(t *testing.T) {
	a, b := dockPair()

	if err := a.TurnFace(FaceU, true); err != nil {
		t.Fatalf("TurnFace() error = %v", err)
	}

	tr, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{-1, -1, -1}, 0)
	if err != nil {
		t.Fatalf("SolveDock() error = %v", err)
	}
	b.SetRootTransform(tr)

	pa, _ := a.Corner(Coord{1, 1, 1})
	pb, _ := b.Corner(Coord{-1, -1, -1})
	diagA := a.RootTransform().Mul(pa.Local).ApplyDir(pa.Leg.Diagonal)
	diagB := b.RootTransform().Mul(pb.Local).ApplyDir(pb.Leg.Diagonal)

	if dot := diagA.Dot(diagB); dot > -1+1e-9 {
		t.Errorf("corner diagonals dot = %v, want -1", dot)
	}
}

func TestSolveDock_Idempotent(t *testing.T) {
	a, b := dockPair()
	if err := a.TurnFace(FaceF, false); err != nil {
		t.Fatalf("TurnFace() error = %v", err)
	}

	first, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{-1, -1, -1}, 2)
	if err != nil {
		t.Fatalf("SolveDock() error = %v", err)
	}
	second, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{-1, -1, -1}, 2)
	if err != nil {
		t.Fatalf("SolveDock() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated solve differs:\n%v\n%v", first, second)
	}
}

func TestSolveDock_FollowsDrivingRoot(t *testing.T) {
	a, b := dockPair()
	a.SetRootTransform(math.Transform{
		Rot: math.QuatFromAxisAngle(math.Vec3{Z: 1}, gomath.Pi/3),
		Pos: math.Vec3{X: 40, Y: -12, Z: 3},
	})

	if d := tipDistance(t, a, b, 0); d > 1e-6 {
		t.Errorf("tip distance with moved driving root = %v, want 0", d)
	}
}

func TestSolveDock_UnknownCorner(t *testing.T) {
	a, b := dockPair()
	if _, err := SolveDock(a, Coord{1, 0, 0}, b, Coord{-1, -1, -1}, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("driving corner on a center: error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := SolveDock(a, Coord{1, 1, 1}, b, Coord{0, 0, 0}, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("receiving corner on the core: error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestDockLink_Apply(t *testing.T) {
	a, b := dockPair()
	link := DockLink{
		Drive:       a,
		DriveCorner: Coord{1, 1, 1},
		Recv:        b,
		RecvCorner:  Coord{-1, -1, -1},
		Gap:         0,
	}

	if err := link.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	before := b.RootTransform()

	// Extending the driving leg and re-applying moves the receiving cube
	// outward along the diagonal.
	if err := a.SetLegTarget(Coord{1, 1, 1}, 20, 100); err != nil {
		t.Fatalf("SetLegTarget() error = %v", err)
	}
	a.AdvanceLegs(1)
	if err := link.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	after := b.RootTransform()

	shift := after.Pos.Sub(before.Pos)
	diag := math.Vec3{X: 1, Y: 1, Z: 1}.Scale(1 / gomath.Sqrt(3))
	if gomath.Abs(shift.Length()-20) > 1e-6 {
		t.Errorf("receiving cube moved %v, want 20 along the diagonal", shift.Length())
	}
	if gomath.Abs(shift.Dot(diag)-20) > 1e-6 {
		t.Errorf("receiving shift along diagonal = %v, want 20", shift.Dot(diag))
	}

	tipA, _ := a.TipWorld(Coord{1, 1, 1})
	tipB, _ := b.TipWorld(Coord{-1, -1, -1})
	if d := tipA.Distance(tipB); d > 1e-6 {
		t.Errorf("tips apart by %v after re-apply, want 0", d)
	}
}
