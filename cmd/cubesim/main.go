// Package main is the headless simulator runner. It steps a scenario for a
// fixed number of ticks (or until the scenario reports done) and prints the
// final assembly state, which makes it usable from scripts and CI.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cubelink/internal/config"
	"github.com/Faultbox/cubelink/internal/logger"
	"github.com/Faultbox/cubelink/internal/sim"
	"github.com/Faultbox/cubelink/pkg/cube"
)

var (
	flagScenario = flag.String("scenario", "turns", "Scenario to run: turns, waves or docked")
	flagMoves    = flag.String("moves", "", "Move sequence for the turns scenario, e.g. \"R U R' U'\"")
	flagTicks    = flag.Int("ticks", 600, "Maximum number of simulation ticks")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	var moves []cube.Move
	if *flagMoves != "" {
		var err error
		moves, err = cube.ParseMoves(*flagMoves)
		if err != nil {
			return fmt.Errorf("parsing moves: %w", err)
		}
	}

	s := sim.New(sim.OptionsFromConfig(cfg))

	sc, err := sim.BuildScenario(*flagScenario, moves, s.Options())
	if err != nil {
		return err
	}
	if err := s.SetScenario(sc); err != nil {
		return fmt.Errorf("entering scenario: %w", err)
	}

	tickRate := cfg.Simulation.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1.0 / float64(tickRate)

	logger.Info("simulation start",
		zap.String("scenario", *flagScenario),
		zap.Int("max_ticks", *flagTicks),
		zap.Float64("dt", dt),
	)

	ran := 0
	for ; ran < *flagTicks; ran++ {
		if err := s.Step(dt); err != nil {
			return fmt.Errorf("tick %d: %w", s.Tick(), err)
		}
		if s.ScenarioDone() {
			ran++
			break
		}
	}

	logger.Info("simulation end",
		zap.Int("ticks", ran),
		zap.Bool("done", s.ScenarioDone()),
	)

	report(os.Stdout, s)
	return nil
}

// report prints the final assembly state: per-cube piece occupancy, leg
// extensions and any dock junction separation.
func report(w *os.File, s *sim.Simulator) {
	fr := s.Frame()

	fmt.Fprintf(w, "ticks: %d\n", fr.Tick)

	for ci, cf := range fr.Cubes {
		moved := 0
		for _, p := range cf.Pieces {
			if p.Coord != p.Home {
				moved++
			}
		}
		fmt.Fprintf(w, "cube %d: %d pieces, %d displaced\n", ci, len(cf.Pieces), moved)

		for _, p := range cf.Pieces {
			if p.Coord == p.Home {
				continue
			}
			fmt.Fprintf(w, "  %-6s %v -> %v\n", p.Kind, p.Home, p.Coord)
		}
		for _, l := range cf.Legs {
			fmt.Fprintf(w, "  leg %v ext=%.1f\n", l.Home, l.Extension)
		}
	}

	for li, l := range fr.Links {
		fmt.Fprintf(w, "link %d: tip separation %.3f\n", li, l.DriveTip.Distance(l.RecvTip))
	}
}
