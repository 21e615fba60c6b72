package cube

import (
	"fmt"
	"strings"
)

// Move is one quarter turn of a face.
type Move struct {
	Face      Face
	Clockwise bool
}

// String returns the move in standard notation (R for clockwise, R' for
// counter-clockwise).
func (m Move) String() string {
	if m.Clockwise {
		return m.Face.String()
	}
	return m.Face.String() + "'"
}

// ParseMoves reads a whitespace-separated move script in standard notation.
// Each token is a face letter with an optional suffix: ' turns
// counter-clockwise and 2 doubles the turn (expanded into two quarter turns).
// Unknown tokens fail with ErrInvalidMove.
func ParseMoves(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, tok := range fields {
		face, err := ParseFace(tok[:1])
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", tok, ErrInvalidMove)
		}
		switch tok[1:] {
		case "":
			moves = append(moves, Move{face, true})
		case "'":
			moves = append(moves, Move{face, false})
		case "2":
			moves = append(moves, Move{face, true}, Move{face, true})
		default:
			return nil, fmt.Errorf("move %q: %w", tok, ErrInvalidMove)
		}
	}
	return moves, nil
}

// FormatMoves renders a move list back into script notation.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
