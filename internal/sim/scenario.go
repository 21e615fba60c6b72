package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/cubelink/internal/logger"
	"github.com/Faultbox/cubelink/pkg/cube"
	"github.com/Faultbox/cubelink/pkg/math"
)

// ErrUnknownScenario reports a scenario name with no registered script.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario scripts simulator behavior. Update runs at the start of every
// step, before queued moves begin and before any motion advances.
type Scenario interface {
	// Name identifies the scenario in logs and errors.
	Name() string

	// Enter prepares the scenario on the given simulator.
	Enter(s *Simulator) error

	// Update is called once per step.
	Update(s *Simulator, dt float64) error

	// Done reports whether the script has finished. Endless scenarios
	// always return false.
	Done() bool
}

// BuildScenario constructs a built-in scenario by name: "turns", "waves" or
// "docked". moves feeds the turns scenario; when empty a seeded scramble is
// used instead.
func BuildScenario(name string, moves []cube.Move, opts Options) (Scenario, error) {
	switch name {
	case "turns":
		if len(moves) == 0 {
			moves = RandomMoves(20, rand.New(rand.NewSource(opts.Seed)))
		}
		return NewTurns(moves), nil
	case "waves":
		return NewWaves(opts.LegRate, rand.New(rand.NewSource(opts.Seed))), nil
	case "docked":
		return NewDocked(opts.DockGap, opts.LegRate), nil
	default:
		return nil, fmt.Errorf("scenario %q: %w", name, ErrUnknownScenario)
	}
}

// RandomMoves builds a scramble of n random face turns. Successive moves on
// the same face are skipped so every move visibly changes the state.
func RandomMoves(n int, rng *rand.Rand) []cube.Move {
	moves := make([]cube.Move, 0, n)
	last := cube.Face(-1)
	for len(moves) < n {
		f := cube.Face(rng.Intn(6))
		if f == last {
			continue
		}
		last = f
		moves = append(moves, cube.Move{Face: f, Clockwise: rng.Intn(2) == 0})
	}
	return moves
}

// Turns plays a fixed move sequence on the primary cube, one turn at a time.
type Turns struct {
	moves []cube.Move
	done  bool
}

// NewTurns creates a turns scenario for the given sequence.
func NewTurns(moves []cube.Move) *Turns {
	return &Turns{moves: moves}
}

// Name implements Scenario.
func (t *Turns) Name() string { return "turns" }

// Enter queues the whole sequence.
func (t *Turns) Enter(s *Simulator) error {
	for _, m := range t.moves {
		s.QueueMove(m)
	}
	logger.Info("move sequence queued", zap.String("moves", cube.FormatMoves(t.moves)))
	return nil
}

// Update watches for the queue to drain.
func (t *Turns) Update(s *Simulator, dt float64) error {
	if !t.done && s.PendingMoves() == 0 && !s.Cube(0).TurnActive() {
		t.done = true
		logger.Info("move sequence finished", zap.Int("tick", s.Tick()))
	}
	return nil
}

// Done implements Scenario.
func (t *Turns) Done() bool { return t.done }

// Waves cycles every leg between full retraction and full extension. Every
// retarget draws a fresh seeded rate, so the tips drift out of phase and
// ripple instead of pumping in unison.
type Waves struct {
	rng     *rand.Rand
	minRate float64
	maxRate float64
}

// NewWaves creates a waves scenario around the given top leg speed.
// Individual legs move at a random fraction of it, down to a third.
func NewWaves(rate float64, rng *rand.Rand) *Waves {
	return &Waves{rng: rng, minRate: rate / 3, maxRate: rate}
}

// Name implements Scenario.
func (w *Waves) Name() string { return "waves" }

func (w *Waves) randRate() float64 {
	return w.minRate + w.rng.Float64()*(w.maxRate-w.minRate)
}

// Enter starts every leg extending at its own rate.
func (w *Waves) Enter(s *Simulator) error {
	c := s.Cube(0)
	max := c.Geometry().MaxExtension

	for _, p := range c.Pieces() {
		if p.Leg == nil {
			continue
		}
		if err := c.SetLegTarget(p.Home, max, w.randRate()); err != nil {
			return err
		}
	}
	return nil
}

// Update reverses each leg that has arrived, at a fresh rate.
func (w *Waves) Update(s *Simulator, dt float64) error {
	c := s.Cube(0)
	max := c.Geometry().MaxExtension

	for _, p := range c.Pieces() {
		if p.Leg == nil || p.Leg.Active() {
			continue
		}
		next := 0.0
		if p.Leg.Extension < max/2 {
			next = max
		}
		if err := c.SetLegTarget(p.Home, next, w.randRate()); err != nil {
			return err
		}
	}
	return nil
}

// Done implements Scenario. Waves runs until the caller stops stepping.
func (w *Waves) Done() bool { return false }

// Docked runs a two-cube demo: the second cube hangs from the primary cube's
// docking leg and rides every motion. The script cycles the leg's extension
// and swings the carrying corner back and forth with face turns.
type Docked struct {
	gap   float64
	rate  float64
	drive cube.Coord
	recv  cube.Coord
	phase int
}

// Script phases, in loop order. Enter performs the initial extension, so the
// cycle starts with the swing.
const (
	dockPhaseSwing = iota
	dockPhaseRetract
	dockPhaseReturn
	dockPhaseExtend
	dockPhaseCount
)

// NewDocked creates a docked scenario with the given tip gap and leg speed.
func NewDocked(gap, rate float64) *Docked {
	return &Docked{
		gap:   gap,
		rate:  rate,
		drive: cube.Coord{X: 1, Y: 1, Z: 1},
		recv:  cube.Coord{X: -1, Y: -1, Z: -1},
	}
}

// Name implements Scenario.
func (d *Docked) Name() string { return "docked" }

// Enter assembles the second cube, establishes the dock link, and starts the
// first extension.
func (d *Docked) Enter(s *Simulator) error {
	for s.CubeCount() < 2 {
		s.AddCube(math.TransformIdentity())
	}

	link := cube.DockLink{
		Drive:       s.Cube(0),
		DriveCorner: d.drive,
		Recv:        s.Cube(1),
		RecvCorner:  d.recv,
		Gap:         d.gap,
	}
	if err := link.Apply(); err != nil {
		return fmt.Errorf("establishing dock: %w", err)
	}
	s.AddLink(link)

	logger.Info("dock established",
		zap.Stringer("drive", d.drive),
		zap.Stringer("recv", d.recv),
		zap.Float64("gap", d.gap))

	c := s.Cube(0)
	return c.SetLegTarget(d.drive, c.Geometry().MaxExtension, d.rate)
}

// Update advances the script one phase whenever all motion has settled.
func (d *Docked) Update(s *Simulator, dt float64) error {
	c := s.Cube(0)
	if c.TurnActive() || c.LegsActive() || s.PendingMoves() > 0 {
		return nil
	}

	var err error
	switch d.phase {
	case dockPhaseSwing:
		s.QueueMove(cube.Move{Face: cube.FaceR, Clockwise: true})
	case dockPhaseRetract:
		err = c.SetLegTarget(d.drive, c.Geometry().MaxExtension/3, d.rate)
	case dockPhaseReturn:
		s.QueueMove(cube.Move{Face: cube.FaceR, Clockwise: false})
	case dockPhaseExtend:
		err = c.SetLegTarget(d.drive, c.Geometry().MaxExtension, d.rate)
	}
	if err != nil {
		return err
	}

	d.phase = (d.phase + 1) % dockPhaseCount
	return nil
}

// Done implements Scenario. The demo loops until the caller stops stepping.
func (d *Docked) Done() bool { return false }
