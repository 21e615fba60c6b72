package cube

import (
	"errors"
	"testing"
)

func TestParseFace(t *testing.T) {
	tests := []struct {
		in   string
		want Face
	}{
		{"R", FaceR}, {"L", FaceL}, {"U", FaceU},
		{"D", FaceD}, {"F", FaceF}, {"B", FaceB},
		{"r", FaceR}, {"u", FaceU},
	}
	for _, tt := range tests {
		got, err := ParseFace(tt.in)
		if err != nil {
			t.Errorf("ParseFace(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFace_Invalid(t *testing.T) {
	if _, err := ParseFace("Q"); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("ParseFace(\"Q\") error = %v, want ErrInvalidFace", err)
	}
}

func TestFace_String(t *testing.T) {
	if got := FaceR.String(); got != "R" {
		t.Errorf("FaceR.String() = %q, want %q", got, "R")
	}
	if got := Face(42).String(); got != "Face(42)" {
		t.Errorf("Face(42).String() = %q, want %q", got, "Face(42)")
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U2")
	if err != nil {
		t.Fatalf("ParseMoves() error = %v", err)
	}
	want := []Move{
		{FaceR, true},
		{FaceU, true},
		{FaceR, false},
		{FaceU, true},
		{FaceU, true},
	}
	if len(moves) != len(want) {
		t.Fatalf("ParseMoves() returned %d moves, want %d", len(moves), len(want))
	}
	for i, m := range moves {
		if m != want[i] {
			t.Errorf("move %d = %v, want %v", i, m, want[i])
		}
	}
}

func TestParseMoves_Empty(t *testing.T) {
	moves, err := ParseMoves("   ")
	if err != nil {
		t.Fatalf("ParseMoves() error = %v", err)
	}
	if len(moves) != 0 {
		t.Errorf("ParseMoves of blank input returned %d moves", len(moves))
	}
}

func TestParseMoves_Invalid(t *testing.T) {
	for _, in := range []string{"X", "R3", "R''", "2"} {
		if _, err := ParseMoves(in); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMoves(%q) error = %v, want ErrInvalidMove", in, err)
		}
	}
}

func TestFormatMoves(t *testing.T) {
	moves, err := ParseMoves("R U' F")
	if err != nil {
		t.Fatalf("ParseMoves() error = %v", err)
	}
	if got := FormatMoves(moves); got != "R U' F" {
		t.Errorf("FormatMoves() = %q, want %q", got, "R U' F")
	}
}
