package cube

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/cubelink/pkg/math"
)

// activeTurn is the uncommitted state of an animated face turn. Intermediate
// steps rewrite the selected pieces' transforms from the start snapshots at
// an absolute sweep angle, so partial steps never accumulate error.
type activeTurn struct {
	face      Face
	clockwise bool
	steps     int
	step      int
	ids       []int
	start     []math.Transform
}

// TurnFace rotates the nine pieces currently occupying the face a quarter
// turn about the face axis and commits coordinates and transforms as one
// atomic batch. Selection is by live coordinate: after earlier turns the
// slice holds whichever bodies have been carried there, not the ones
// assembled there.
func (c *Cube) TurnFace(face Face, clockwise bool) error {
	if c.turn != nil {
		return fmt.Errorf("turn %v: %w", face, ErrTurnInProgress)
	}
	ids, err := c.selectFace(face)
	if err != nil {
		return err
	}
	start := make([]math.Transform, len(ids))
	for i, id := range ids {
		start[i] = c.pieces[id].Local
	}
	return c.commitTurn(face, clockwise, ids, start)
}

// BeginTurn starts an animated quarter turn swept over the given number of
// steps. The grid commits once, on the final StepTurn; intermediate steps
// expose swept transforms only.
func (c *Cube) BeginTurn(face Face, clockwise bool, steps int) error {
	if c.turn != nil {
		return fmt.Errorf("turn %v: %w", face, ErrTurnInProgress)
	}
	if steps < 1 {
		return fmt.Errorf("%d steps: %w", steps, ErrInvalidStepCount)
	}
	ids, err := c.selectFace(face)
	if err != nil {
		return err
	}
	t := &activeTurn{
		face:      face,
		clockwise: clockwise,
		steps:     steps,
		ids:       ids,
		start:     make([]math.Transform, len(ids)),
	}
	for i, id := range ids {
		t.start[i] = c.pieces[id].Local
	}
	c.turn = t
	return nil
}

// StepTurn advances the active sweep by one step and reports whether the
// turn has committed. Without an active turn it reports done immediately.
func (c *Cube) StepTurn() (bool, error) {
	t := c.turn
	if t == nil {
		return true, nil
	}
	t.step++
	if t.step >= t.steps {
		return true, c.finishTurn(t)
	}
	fraction := float64(t.step) / float64(t.steps)
	sweep := turnTransform(faceSpecs[t.face], t.clockwise, fraction, c.geom.Spacing)
	for i, id := range t.ids {
		c.pieces[id].Local = sweep.Mul(t.start[i])
	}
	return false, nil
}

// AbortTurn snaps an active animated turn straight to its committed end
// state. Partial sweep angles are never left behind. No-op when idle.
func (c *Cube) AbortTurn() error {
	t := c.turn
	if t == nil {
		return nil
	}
	return c.finishTurn(t)
}

// TurnActive reports whether an animated turn is awaiting commit.
func (c *Cube) TurnActive() bool {
	return c.turn != nil
}

// TurningPieces returns the IDs of the pieces carried by the active animated
// turn, or nil when idle.
func (c *Cube) TurningPieces() []int {
	if c.turn == nil {
		return nil
	}
	return append([]int(nil), c.turn.ids...)
}

// finishTurn commits the active turn's end state, restoring the start
// snapshots if the commit is rejected.
func (c *Cube) finishTurn(t *activeTurn) error {
	err := c.commitTurn(t.face, t.clockwise, t.ids, t.start)
	if err != nil {
		for i, id := range t.ids {
			c.pieces[id].Local = t.start[i]
		}
	}
	c.turn = nil
	return err
}

// selectFace resolves the pieces currently occupying the face slice.
func (c *Cube) selectFace(face Face) ([]int, error) {
	if !face.valid() {
		return nil, fmt.Errorf("face %v: %w", face, ErrEmptyFaceSelection)
	}
	ids := make([]int, 0, 9)
	for _, p := range c.pieces {
		if face.contains(p.Coord) {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("face %v: %w", face, ErrEmptyFaceSelection)
	}
	return ids, nil
}

// commitTurn applies the full quarter turn from the given start transforms
// and commits every piece's new coordinate and transform as one batch. The
// batch is validated in full before any state changes; a rejected batch
// leaves the cube exactly as committed before the turn.
func (c *Cube) commitTurn(face Face, clockwise bool, ids []int, start []math.Transform) error {
	spec := faceSpecs[face]
	full := turnTransform(spec, clockwise, 1, c.geom.Spacing)

	type staged struct {
		id    int
		coord Coord
		local math.Transform
	}
	batch := make([]staged, len(ids))
	seen := make(map[Coord]bool, len(ids))
	for i, id := range ids {
		p := c.pieces[id]
		next := p.Coord.rotated(spec.axis, clockwise)
		if !next.Valid() {
			return fmt.Errorf("piece %d left the grid at %v: %w", id, next, ErrGridConsistency)
		}
		if seen[next] {
			return fmt.Errorf("piece %d collides at %v: %w", id, next, ErrGridConsistency)
		}
		seen[next] = true

		local := full.Mul(start[i])
		// The exact integer move and the swept transform must agree on the
		// landing cell.
		if snapCoord(local.Pos, c.geom.Spacing) != next {
			return fmt.Errorf("piece %d transform lands at %v, grid says %v: %w",
				id, snapCoord(local.Pos, c.geom.Spacing), next, ErrGridConsistency)
		}
		batch[i] = staged{id: id, coord: next, local: local}
	}

	for _, s := range batch {
		delete(c.cells, c.pieces[s.id].Coord)
	}
	for _, s := range batch {
		p := c.pieces[s.id]
		p.Coord = s.coord
		p.Local = s.local
		c.cells[s.coord] = s.id
	}
	return nil
}

// turnTransform returns the rigid sweep for a fraction of a face's quarter
// turn, about the face axis through the face center. Clockwise is +90°
// right-handed about the positive axis; fraction 1 is the full turn.
func turnTransform(spec faceSpec, clockwise bool, fraction, spacing float64) math.Transform {
	angle := gomath.Pi / 2 * fraction
	if !clockwise {
		angle = -angle
	}
	axisVec := spec.axis.vec()
	return math.RotateAbout(axisVec, angle, axisVec.Scale(spacing))
}

// snapCoord maps a root-frame position to the nearest lattice cell.
func snapCoord(p math.Vec3, spacing float64) Coord {
	return Coord{
		X: int(gomath.Round(p.X / spacing)),
		Y: int(gomath.Round(p.Y / spacing)),
		Z: int(gomath.Round(p.Z / spacing)),
	}
}
