package cube

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/cubelink/pkg/math"
)

func TestLeg_SetTarget_ClampsTarget(t *testing.T) {
	l := newLeg(Coord{1, 1, 1}, DefaultGeometry())

	if err := l.SetTarget(50, 5); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	if l.Target() != 30 {
		t.Errorf("target after SetTarget(50) = %v, want clamp to 30", l.Target())
	}

	if err := l.SetTarget(-3, 5); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	if l.Target() != 0 {
		t.Errorf("target after SetTarget(-3) = %v, want clamp to 0", l.Target())
	}
}

func TestLeg_SetTarget_InvalidRate(t *testing.T) {
	l := newLeg(Coord{1, 1, 1}, DefaultGeometry())
	for _, rate := range []float64{0, -1} {
		if err := l.SetTarget(10, rate); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("SetTarget(rate=%v) error = %v, want ErrInvalidRate", rate, err)
		}
	}
	if l.Active() {
		t.Error("rejected SetTarget should leave the leg idle")
	}
}

func TestLeg_Advance_ExactArrival(t *testing.T) {
	l := newLeg(Coord{1, 1, 1}, DefaultGeometry())
	if err := l.SetTarget(30, 10); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}

	want := []float64{10, 20, 30}
	for i, w := range want {
		l.Advance(1)
		if l.Extension != w {
			t.Fatalf("extension after advance %d = %v, want %v", i+1, l.Extension, w)
		}
		if l.Extension > 30 {
			t.Fatalf("extension exceeded the limit: %v", l.Extension)
		}
	}
	if l.Active() {
		t.Error("leg should be idle after reaching the target")
	}

	// Once arrived, further advances are no-ops.
	l.Advance(1)
	if l.Extension != 30 {
		t.Errorf("extension after extra advance = %v, want 30", l.Extension)
	}
}

func TestLeg_Advance_NeverOvershoots(t *testing.T) {
	l := newLeg(Coord{1, 1, 1}, DefaultGeometry())
	if err := l.SetTarget(7, 10); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}
	l.Advance(1)
	if l.Extension != 7 {
		t.Errorf("extension = %v, want exactly 7", l.Extension)
	}
}

func TestLeg_Advance_Retracts(t *testing.T) {
	l := newLeg(Coord{1, 1, 1}, DefaultGeometry())
	l.Extension = 30
	if err := l.SetTarget(0, 12); err != nil {
		t.Fatalf("SetTarget() error = %v", err)
	}

	prev := l.Extension
	for l.Active() {
		l.Advance(1)
		if l.Extension > prev {
			t.Fatalf("retraction reversed: %v after %v", l.Extension, prev)
		}
		prev = l.Extension
	}
	if l.Extension != 0 {
		t.Errorf("extension after retraction = %v, want 0", l.Extension)
	}
}

func TestLeg_TipLocal(t *testing.T) {
	geom := DefaultGeometry()
	l := newLeg(Coord{1, 1, 1}, geom)

	vertex := math.Vec3{X: 12.5, Y: 12.5, Z: 12.5}
	tip := l.TipLocal()

	// The tip sits anchor+base+extension+radius beyond the corner vertex.
	if d := tip.Distance(vertex); gomath.Abs(d-63) > 1e-9 {
		t.Errorf("tip distance from vertex = %v, want 63", d)
	}

	l.Extension = 30
	if d := l.TipLocal().Distance(vertex); gomath.Abs(d-93) > 1e-9 {
		t.Errorf("tip distance at full extension = %v, want 93", d)
	}

	// And it lies on the outward diagonal.
	dir, err := tip.Sub(vertex).Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !vecClose(dir, l.Diagonal, 1e-9) {
		t.Errorf("tip direction = %v, want %v", dir, l.Diagonal)
	}
}

func TestLeg_TipWorld(t *testing.T) {
	geom := DefaultGeometry()
	l := newLeg(Coord{1, 1, 1}, geom)

	piece := math.Transform{Rot: math.QuatIdentity(), Pos: math.Vec3{X: 25, Y: 25, Z: 25}}
	root := math.Transform{Rot: math.QuatIdentity(), Pos: math.Vec3{X: 100}}

	got := l.TipWorld(piece, root)
	want := l.TipLocal().Add(math.Vec3{X: 125, Y: 25, Z: 25})
	if !vecClose(got, want, 1e-9) {
		t.Errorf("TipWorld() = %v, want %v", got, want)
	}
}

func TestCube_LegOps(t *testing.T) {
	c := New(DefaultGeometry())
	home := Coord{-1, -1, -1}

	if err := c.SetLegTarget(home, 30, 10); err != nil {
		t.Fatalf("SetLegTarget() error = %v", err)
	}
	if !c.LegsActive() {
		t.Fatal("LegsActive() = false with a leg moving")
	}

	c.AdvanceLegs(1.5)
	ext, err := c.LegExtension(home)
	if err != nil {
		t.Fatalf("LegExtension() error = %v", err)
	}
	if ext != 15 {
		t.Errorf("extension = %v, want 15", ext)
	}

	c.AdvanceLegs(10)
	if ext, _ = c.LegExtension(home); ext != 30 {
		t.Errorf("extension = %v, want 30", ext)
	}
	if c.LegsActive() {
		t.Error("LegsActive() = true after arrival")
	}

	if err := c.SetLegTarget(Coord{1, 0, 0}, 10, 5); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("SetLegTarget on a center: error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestCube_LegTips(t *testing.T) {
	c := New(DefaultGeometry())
	home := Coord{1, 1, 1}
	if err := c.SetLegTarget(home, 30, 10); err != nil {
		t.Fatalf("SetLegTarget() error = %v", err)
	}
	c.AdvanceLegs(1)

	tips := c.LegTips()
	if len(tips) != 8 {
		t.Fatalf("LegTips() returned %d entries, want 8", len(tips))
	}

	seen := make(map[Coord]bool)
	for _, tip := range tips {
		if tip.Home.Kind() != KindCorner {
			t.Errorf("tip home %v is not a corner", tip.Home)
		}
		seen[tip.Home] = true

		want, err := c.TipWorld(tip.Home)
		if err != nil {
			t.Fatalf("TipWorld(%v) error = %v", tip.Home, err)
		}
		if !vecClose(tip.Tip, want, 1e-9) {
			t.Errorf("tip %v position = %v, want %v", tip.Home, tip.Tip, want)
		}

		if tip.Home == home {
			if tip.Extension != 10 {
				t.Errorf("moving leg extension = %v, want 10", tip.Extension)
			}
			if !tip.Active {
				t.Error("moving leg reported idle")
			}
		} else if tip.Extension != 0 || tip.Active {
			t.Errorf("leg %v: extension %v active %v, want parked", tip.Home, tip.Extension, tip.Active)
		}
	}
	if len(seen) != 8 {
		t.Errorf("LegTips() covered %d distinct corners, want 8", len(seen))
	}
}
