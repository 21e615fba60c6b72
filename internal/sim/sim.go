// Package sim drives cube assemblies through scripted scenarios in fixed
// steps, producing per-tick frames for the viewer and the headless runner.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubelink/internal/config"
	"github.com/Faultbox/cubelink/internal/logger"
	"github.com/Faultbox/cubelink/pkg/cube"
	"github.com/Faultbox/cubelink/pkg/math"
)

// Options configures a Simulator.
type Options struct {
	Geometry  cube.Geometry
	TurnSteps int     // animation steps per quarter turn
	LegRate   float64 // default leg speed, mm per second
	DockGap   float64 // docking gap along the approach axis, mm
	Seed      int64   // seed for randomized scenarios
}

// Simulator owns one or more cubes, their standing dock links, and an
// optional scenario script. All motion advances through Step; nothing moves
// between calls.
type Simulator struct {
	opts   Options
	cubes  []*cube.Cube
	links  []cube.DockLink
	script Scenario
	moves  []cube.Move
	paused bool
	tick   int
}

// OptionsFromConfig maps the application config onto simulator options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Geometry: cube.Geometry{
			CellSize:     cfg.Geometry.CellSize,
			Spacing:      cfg.Geometry.Spacing,
			AnchorOffset: cfg.Geometry.AnchorOffset,
			BaseOffset:   cfg.Geometry.BaseOffset,
			MaxExtension: cfg.Geometry.MaxExtension,
			TipRadius:    cfg.Geometry.TipRadius,
		},
		TurnSteps: cfg.Simulation.TurnSteps,
		LegRate:   cfg.Simulation.LegRate,
		DockGap:   cfg.Simulation.DockGap,
		Seed:      cfg.Simulation.Seed,
	}
}

// New creates a simulator with a single cube at the origin.
func New(opts Options) *Simulator {
	if opts.Geometry == (cube.Geometry{}) {
		opts.Geometry = cube.DefaultGeometry()
	}
	if opts.TurnSteps < 1 {
		opts.TurnSteps = 1
	}

	s := &Simulator{opts: opts}
	s.AddCube(math.TransformIdentity())
	return s
}

// Options returns the simulator's configuration.
func (s *Simulator) Options() Options {
	return s.opts
}

// AddCube assembles a new cube at the given root transform and returns it.
func (s *Simulator) AddCube(root math.Transform) *cube.Cube {
	c := cube.New(s.opts.Geometry)
	c.SetRootTransform(root)
	s.cubes = append(s.cubes, c)
	return c
}

// Cube returns the i-th cube. Index 0 is the primary cube every scenario and
// queued move drives.
func (s *Simulator) Cube(i int) *cube.Cube {
	return s.cubes[i]
}

// CubeCount returns the number of assembled cubes.
func (s *Simulator) CubeCount() int {
	return len(s.cubes)
}

// QueueMove appends a face turn for the primary cube. Moves start one at a
// time, each waiting for the previous turn to finish.
func (s *Simulator) QueueMove(m cube.Move) {
	s.moves = append(s.moves, m)
}

// PendingMoves returns the number of queued moves not yet started.
func (s *Simulator) PendingMoves() int {
	return len(s.moves)
}

// AddLink registers a standing dock link. It is re-solved and applied on
// every step.
func (s *Simulator) AddLink(l cube.DockLink) {
	s.links = append(s.links, l)
}

// Links returns a copy of the registered dock links.
func (s *Simulator) Links() []cube.DockLink {
	out := make([]cube.DockLink, len(s.links))
	copy(out, s.links)
	return out
}

// ClearLinks removes all standing dock links. Receiving cubes keep their last
// applied transform.
func (s *Simulator) ClearLinks() {
	s.links = nil
}

// SetScenario installs a scenario script and runs its Enter hook. A nil
// scenario leaves the simulator driven only by queued moves.
func (s *Simulator) SetScenario(sc Scenario) error {
	s.script = sc
	if sc == nil {
		return nil
	}
	if err := sc.Enter(s); err != nil {
		return fmt.Errorf("entering scenario %s: %w", sc.Name(), err)
	}
	logger.Info("scenario set", zap.String("scenario", sc.Name()))
	return nil
}

// ScenarioDone reports whether the installed scenario has finished its
// script. Simulators without a scenario are always done.
func (s *Simulator) ScenarioDone() bool {
	return s.script == nil || s.script.Done()
}

// SetPaused freezes or resumes stepping.
func (s *Simulator) SetPaused(paused bool) {
	s.paused = paused
}

// Paused reports whether stepping is frozen.
func (s *Simulator) Paused() bool {
	return s.paused
}

// TogglePause flips the paused state and returns the new value.
func (s *Simulator) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Tick returns the number of completed steps.
func (s *Simulator) Tick() int {
	return s.tick
}

// Step advances the simulation by dt seconds: the scenario script runs first,
// then a queued move may start, then turns and legs advance, and finally
// every dock link is re-applied so receiving cubes follow the motion that
// just happened. Paused simulators do nothing.
func (s *Simulator) Step(dt float64) error {
	if s.paused {
		return nil
	}

	if s.script != nil {
		if err := s.script.Update(s, dt); err != nil {
			return fmt.Errorf("scenario %s: %w", s.script.Name(), err)
		}
	}

	// Start the next queued move once the primary cube is idle.
	if len(s.moves) > 0 && !s.cubes[0].TurnActive() {
		m := s.moves[0]
		s.moves = s.moves[1:]
		if err := s.cubes[0].BeginTurn(m.Face, m.Clockwise, s.opts.TurnSteps); err != nil {
			return fmt.Errorf("starting move %s: %w", m, err)
		}
		logger.Debug("turn started",
			zap.Stringer("move", m),
			zap.Int("steps", s.opts.TurnSteps),
			zap.Int("pending", len(s.moves)))
	}

	for _, c := range s.cubes {
		if c.TurnActive() {
			if _, err := c.StepTurn(); err != nil {
				return fmt.Errorf("advancing turn: %w", err)
			}
		}
		c.AdvanceLegs(dt)
	}

	for _, l := range s.links {
		if err := l.Apply(); err != nil {
			return fmt.Errorf("applying dock link: %w", err)
		}
	}

	s.tick++
	return nil
}
