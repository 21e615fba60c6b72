package cube

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/cubelink/pkg/math"
)

// vecClose reports whether two points agree within tolerance.
func vecClose(a, b math.Vec3, eps float64) bool {
	return a.Distance(b) <= eps
}

// sameRotation reports whether two unit quaternions describe the same
// rotation. q and -q are the same map, so the dot product is compared by
// magnitude.
func sameRotation(a, b math.Quat) bool {
	return gomath.Abs(a.Dot(b)) > 1-1e-9
}

// checkBijection fails the test unless every valid cell is occupied by
// exactly one piece and the cell table agrees with the pieces.
func checkBijection(t *testing.T, c *Cube) {
	t.Helper()
	seen := make(map[Coord]int, 26)
	for _, p := range c.Pieces() {
		if !p.Coord.Valid() {
			t.Fatalf("piece %d occupies invalid cell %v", p.ID, p.Coord)
		}
		if prev, ok := seen[p.Coord]; ok {
			t.Fatalf("pieces %d and %d both occupy %v", prev, p.ID, p.Coord)
		}
		seen[p.Coord] = p.ID
		at, err := c.PieceAt(p.Coord)
		if err != nil {
			t.Fatalf("PieceAt(%v) error = %v", p.Coord, err)
		}
		if at.ID != p.ID {
			t.Fatalf("cell table says %d at %v, piece table says %d", at.ID, p.Coord, p.ID)
		}
	}
	if len(seen) != 26 {
		t.Fatalf("%d occupied cells, want 26", len(seen))
	}
}

func TestNew_Assembly(t *testing.T) {
	c := New(DefaultGeometry())

	if len(c.Pieces()) != 26 {
		t.Fatalf("assembled %d pieces, want 26", len(c.Pieces()))
	}
	checkBijection(t, c)

	var centers, edges, corners int
	for _, p := range c.Pieces() {
		switch p.Kind {
		case KindCenter:
			centers++
		case KindEdge:
			edges++
		case KindCorner:
			corners++
		}
		if (p.Leg != nil) != (p.Kind == KindCorner) {
			t.Errorf("piece %d (%v): leg presence wrong for kind %v", p.ID, p.Home, p.Kind)
		}
		if p.Coord != p.Home {
			t.Errorf("piece %d starts at %v, want home %v", p.ID, p.Coord, p.Home)
		}
		want := p.Home.Vec(25)
		if !vecClose(p.Local.Pos, want, 1e-12) {
			t.Errorf("piece %d starts at %v, want %v", p.ID, p.Local.Pos, want)
		}
	}
	if centers != 6 || edges != 12 || corners != 8 {
		t.Errorf("kinds = %d centers, %d edges, %d corners; want 6, 12, 8", centers, edges, corners)
	}
}

func TestCube_PieceAt_Invalid(t *testing.T) {
	c := New(DefaultGeometry())
	for _, coord := range []Coord{{0, 0, 0}, {2, 0, 0}, {0, 0, -2}} {
		if _, err := c.PieceAt(coord); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("PieceAt(%v) error = %v, want ErrInvalidCoordinate", coord, err)
		}
	}
}

func TestCube_PieceByID_Bounds(t *testing.T) {
	c := New(DefaultGeometry())
	if _, err := c.PieceByID(-1); err == nil {
		t.Error("PieceByID(-1) should fail")
	}
	if _, err := c.PieceByID(26); err == nil {
		t.Error("PieceByID(26) should fail")
	}
	p, err := c.PieceByID(0)
	if err != nil || p.ID != 0 {
		t.Errorf("PieceByID(0) = %v, %v", p, err)
	}
}

func TestCube_Corner(t *testing.T) {
	c := New(DefaultGeometry())

	p, err := c.Corner(Coord{1, 1, 1})
	if err != nil {
		t.Fatalf("Corner() error = %v", err)
	}
	if p.Kind != KindCorner || p.Home != (Coord{1, 1, 1}) || p.Leg == nil {
		t.Errorf("Corner(1,1,1) = piece %d home %v kind %v", p.ID, p.Home, p.Kind)
	}

	if _, err := c.Corner(Coord{1, 0, 0}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Corner of a center cell: error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := c.Corner(Coord{0, 0, 0}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Corner of the core: error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestCube_RootTransform(t *testing.T) {
	c := New(DefaultGeometry())
	want := math.Transform{
		Rot: math.QuatFromAxisAngle(math.Vec3{Y: 1}, gomath.Pi/4),
		Pos: math.Vec3{X: 100},
	}
	c.SetRootTransform(want)
	if got := c.RootTransform(); got != want {
		t.Errorf("RootTransform() = %v, want %v", got, want)
	}
}

func TestCube_PieceTransform(t *testing.T) {
	c := New(DefaultGeometry())
	p, _ := c.PieceAt(Coord{1, 1, 1})
	tr, err := c.PieceTransform(p.ID)
	if err != nil {
		t.Fatalf("PieceTransform() error = %v", err)
	}
	if !vecClose(tr.Pos, math.Vec3{X: 25, Y: 25, Z: 25}, 1e-12) {
		t.Errorf("PieceTransform Pos = %v, want (25,25,25)", tr.Pos)
	}
}
