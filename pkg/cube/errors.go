package cube

import "errors"

// State engine errors.
var (
	ErrInvalidCoordinate  = errors.New("invalid grid coordinate")
	ErrGridConsistency    = errors.New("grid consistency violation")
	ErrEmptyFaceSelection = errors.New("face slice selects no pieces")
	ErrInvalidRate        = errors.New("leg rate must be positive")
	ErrTurnInProgress     = errors.New("a face turn is already in progress")
	ErrInvalidMove        = errors.New("invalid move token")
	ErrInvalidFace        = errors.New("invalid face label")
	ErrInvalidStepCount   = errors.New("turn step count must be at least 1")
)
