package cube

import "testing"

func TestCoord_Valid(t *testing.T) {
	tests := []struct {
		coord Coord
		want  bool
	}{
		{Coord{0, 0, 0}, false},
		{Coord{1, 1, 1}, true},
		{Coord{-1, -1, -1}, true},
		{Coord{1, 0, 0}, true},
		{Coord{0, 1, -1}, true},
		{Coord{2, 0, 0}, false},
		{Coord{0, -2, 0}, false},
		{Coord{1, 1, 2}, false},
	}
	for _, tt := range tests {
		if got := tt.coord.Valid(); got != tt.want {
			t.Errorf("Coord%v.Valid() = %v, want %v", tt.coord, got, tt.want)
		}
	}
}

func TestCoord_Kind(t *testing.T) {
	tests := []struct {
		coord Coord
		want  PieceKind
	}{
		{Coord{1, 0, 0}, KindCenter},
		{Coord{0, -1, 0}, KindCenter},
		{Coord{1, 1, 0}, KindEdge},
		{Coord{0, 1, -1}, KindEdge},
		{Coord{1, 1, 1}, KindCorner},
		{Coord{-1, 1, -1}, KindCorner},
	}
	for _, tt := range tests {
		if got := tt.coord.Kind(); got != tt.want {
			t.Errorf("Coord%v.Kind() = %v, want %v", tt.coord, got, tt.want)
		}
	}
}

func TestCoord_Rotated(t *testing.T) {
	tests := []struct {
		coord    Coord
		axis     axis
		positive bool
		want     Coord
	}{
		// The documented quarter turn: R clockwise carries (1,1,-1) to (1,1,1).
		{Coord{1, 1, -1}, axisX, true, Coord{1, 1, 1}},
		{Coord{1, 1, 1}, axisX, true, Coord{1, -1, 1}},
		{Coord{1, 0, 0}, axisX, true, Coord{1, 0, 0}},
		{Coord{0, 1, 0}, axisY, true, Coord{0, 1, 0}},
		{Coord{1, 0, 0}, axisY, true, Coord{0, 0, -1}},
		{Coord{1, 0, 0}, axisZ, true, Coord{0, 1, 0}},
		{Coord{0, 1, 0}, axisZ, true, Coord{-1, 0, 0}},
	}
	for _, tt := range tests {
		if got := tt.coord.rotated(tt.axis, tt.positive); got != tt.want {
			t.Errorf("Coord%v.rotated(%v, %v) = %v, want %v",
				tt.coord, tt.axis, tt.positive, got, tt.want)
		}
	}
}

func TestCoord_Rotated_FourTurnsIdentity(t *testing.T) {
	for _, ax := range []axis{axisX, axisY, axisZ} {
		start := Coord{1, -1, 1}
		c := start
		for i := 0; i < 4; i++ {
			c = c.rotated(ax, true)
		}
		if c != start {
			t.Errorf("four quarter turns about %v moved %v to %v", ax, start, c)
		}
	}
}

func TestCoord_Rotated_NegativeInverts(t *testing.T) {
	for _, ax := range []axis{axisX, axisY, axisZ} {
		start := Coord{-1, 1, 0}
		if got := start.rotated(ax, true).rotated(ax, false); got != start {
			t.Errorf("rotated then unrotated about %v: %v, want %v", ax, got, start)
		}
	}
}

func TestCoord_Vec(t *testing.T) {
	v := Coord{1, -1, 0}.Vec(25)
	if v.X != 25 || v.Y != -25 || v.Z != 0 {
		t.Errorf("Coord{1,-1,0}.Vec(25) = %v, want (25,-25,0)", v)
	}
}

func TestCoord_String(t *testing.T) {
	if got := (Coord{1, -1, 0}).String(); got != "(1,-1,0)" {
		t.Errorf("String() = %q, want %q", got, "(1,-1,0)")
	}
}
