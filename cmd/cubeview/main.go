// Package main is the interactive wireframe viewer. It renders one or more
// cube assemblies live while the simulator steps them, and maps the keyboard
// onto face turns and leg actuation.
//
// Controls:
//
//	R L U D F B    turn a face clockwise (hold Shift for counterclockwise)
//	X              abort the running turn
//	T / G          extend / retract all legs
//	Right click    toggle the leg of the corner under the cursor
//	Space          pause and resume
//	H              toggle the ground grid
//	F12            save a screenshot
//	Arrow keys     pan the camera
//	Left drag      orbit, mouse wheel zooms
//	Escape         quit
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cubelink/internal/config"
	"github.com/Faultbox/cubelink/internal/engine/camera"
	"github.com/Faultbox/cubelink/internal/engine/debug"
	"github.com/Faultbox/cubelink/internal/engine/input"
	"github.com/Faultbox/cubelink/internal/engine/picking"
	"github.com/Faultbox/cubelink/internal/engine/renderer"
	"github.com/Faultbox/cubelink/internal/engine/window"
	"github.com/Faultbox/cubelink/internal/logger"
	"github.com/Faultbox/cubelink/internal/sim"
	"github.com/Faultbox/cubelink/pkg/cube"
)

var (
	flagScenario = flag.String("scenario", "", "Scenario to run: turns, waves or docked (empty for interactive only)")
	flagMoves    = flag.String("moves", "", "Move sequence for the turns scenario, e.g. \"R U R' U'\"")
)

var faceKeys = map[sdl.Scancode]cube.Face{
	sdl.SCANCODE_R: cube.FaceR,
	sdl.SCANCODE_L: cube.FaceL,
	sdl.SCANCODE_U: cube.FaceU,
	sdl.SCANCODE_D: cube.FaceD,
	sdl.SCANCODE_F: cube.FaceF,
	sdl.SCANCODE_B: cube.FaceB,
}

func init() {
	runtime.LockOSThread()
}

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

	logger.Info("=== CubeLink Viewer ===")

	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		logger.Error("window creation failed", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	// Renderer needs the drawable size, which differs from the window size
	// on HiDPI displays.
	drawW, drawH := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:  drawW,
		Height: drawH,
		FOV:    cfg.Camera.FOV,
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	})
	if err != nil {
		logger.Error("renderer creation failed", zap.Error(err))
		os.Exit(1)
	}
	defer rend.Close()
	rend.Resize(drawW, drawH)

	cam := camera.NewOrbitCamera()
	cam.Distance = cfg.Camera.Distance
	cam.RotationY = cfg.Camera.Yaw * gomath.Pi / 180
	cam.RotationX = cfg.Camera.Pitch * gomath.Pi / 180

	s := sim.New(sim.OptionsFromConfig(cfg))
	if err := installScenario(s, cfg); err != nil {
		logger.Error("scenario setup failed", zap.Error(err))
		os.Exit(1)
	}

	in := input.New()
	if err := runLoop(win, rend, cam, s, in, cfg); err != nil {
		logger.Error("viewer loop failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

// installScenario wires the scenario selected by flags, if any. A bare
// -moves flag implies the turns scenario.
func installScenario(s *sim.Simulator, cfg *config.Config) error {
	name := *flagScenario
	if name == "" && *flagMoves == "" {
		return nil
	}
	if name == "" {
		name = "turns"
	}

	var moves []cube.Move
	if *flagMoves != "" {
		var err error
		moves, err = cube.ParseMoves(*flagMoves)
		if err != nil {
			return err
		}
	}

	sc, err := sim.BuildScenario(name, moves, s.Options())
	if err != nil {
		return err
	}
	return s.SetScenario(sc)
}

// toggles is loop-local viewer state flipped by the keyboard.
type toggles struct {
	showGrid    bool
	captureNext bool
}

func runLoop(win *window.Window, rend *renderer.Renderer, cam *camera.OrbitCamera,
	s *sim.Simulator, in *input.Input, cfg *config.Config) error {

	geom := s.Options().Geometry
	shots := debug.NewScreenshots("screenshots", "cubeview")
	tog := toggles{showGrid: true}

	var dragging bool
	var lastMouseX, lastMouseY int

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	running := true
	for running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if in.Update() {
			break
		}

		for _, event := range in.Events() {
			switch event.Type {
			case input.EventWindowResize:
				dw, dh := win.DrawableSize()
				rend.Resize(dw, dh)

			case input.EventKeyDown:
				if !handleKey(event, s, cam, win, cfg, &tog) {
					running = false
				}

			case input.EventMouseDown:
				if event.Button == sdl.BUTTON_LEFT {
					dragging = true
					lastMouseX, lastMouseY = event.MouseX, event.MouseY
				}
				if event.Button == sdl.BUTTON_RIGHT {
					togglePickedLeg(s, cam, win, cfg, event.MouseX, event.MouseY)
				}

			case input.EventMouseUp:
				if event.Button == sdl.BUTTON_LEFT {
					dragging = false
				}

			case input.EventMouseMove:
				if dragging {
					cam.HandleDrag(
						float64(event.MouseX-lastMouseX),
						float64(event.MouseY-lastMouseY),
					)
					lastMouseX, lastMouseY = event.MouseX, event.MouseY
				}

			case input.EventMouseWheel:
				cam.HandleZoom(float64(event.WheelY))
			}
		}

		if err := s.Step(dt); err != nil {
			return fmt.Errorf("simulation step: %w", err)
		}

		rend.Begin()
		if tog.showGrid {
			drawGrid(rend, geom)
		}
		drawFrame(rend, s.Frame(), geom)
		rend.End(rend.Projection().Mul(cam.ViewMatrix()))

		// Read back before the swap so the capture matches what was drawn.
		if tog.captureNext {
			tog.captureNext = false
			pixels, pw, ph := rend.ReadPixels()
			if path, err := shots.SavePixels(pixels, pw, ph); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}

		win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("tick", s.Tick()),
				zap.Int("pending", s.PendingMoves()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleKey processes one key press. Returns false to quit.
func handleKey(event input.Event, s *sim.Simulator, cam *camera.OrbitCamera,
	win *window.Window, cfg *config.Config, tog *toggles) bool {

	if face, ok := faceKeys[event.Key]; ok {
		s.QueueMove(cube.Move{Face: face, Clockwise: !event.Shift})
		return true
	}

	switch event.Key {
	case sdl.SCANCODE_ESCAPE:
		return false

	case sdl.SCANCODE_SPACE:
		if s.TogglePause() {
			win.SetTitle(cfg.Window.Title + " [paused]")
		} else {
			win.SetTitle(cfg.Window.Title)
		}

	case sdl.SCANCODE_X:
		if err := s.Cube(0).AbortTurn(); err != nil {
			logger.Warn("abort failed", zap.Error(err))
		}

	case sdl.SCANCODE_T:
		setAllLegs(s, s.Options().Geometry.MaxExtension, cfg.Simulation.LegRate)

	case sdl.SCANCODE_G:
		setAllLegs(s, 0, cfg.Simulation.LegRate)

	case sdl.SCANCODE_H:
		tog.showGrid = !tog.showGrid

	case sdl.SCANCODE_F12:
		tog.captureNext = true

	case sdl.SCANCODE_LEFT:
		cam.HandlePan(-1, 0)
	case sdl.SCANCODE_RIGHT:
		cam.HandlePan(1, 0)
	case sdl.SCANCODE_UP:
		cam.HandlePan(0, 1)
	case sdl.SCANCODE_DOWN:
		cam.HandlePan(0, -1)
	}

	return true
}

// togglePickedLeg casts a ray through the clicked pixel and toggles the leg
// of the nearest corner piece it hits, extending parked legs and retracting
// extended ones.
func togglePickedLeg(s *sim.Simulator, cam *camera.OrbitCamera, win *window.Window,
	cfg *config.Config, px, py int) {

	w, h := win.GetSize()
	ray, err := picking.ScreenRay(cam.Position(), cam.Center, cfg.Camera.FOV, px, py, w, h)
	if err != nil {
		logger.Warn("pick ray failed", zap.Error(err))
		return
	}

	geom := s.Options().Geometry
	fr := s.Frame()

	best := gomath.Inf(1)
	bestCube := -1
	var bestHome cube.Coord
	for ci, cf := range fr.Cubes {
		for _, p := range cf.Pieces {
			if p.Kind != cube.KindCorner {
				continue
			}
			if d, ok := ray.IntersectBox(p.World, geom.CellSize/2); ok && d < best {
				best = d
				bestCube = ci
				bestHome = p.Home
			}
		}
	}
	if bestCube < 0 {
		return
	}

	c := s.Cube(bestCube)
	ext, err := c.LegExtension(bestHome)
	if err != nil {
		logger.Warn("pick lookup failed", zap.Error(err))
		return
	}
	target := geom.MaxExtension
	if ext >= geom.MaxExtension/2 {
		target = 0
	}
	if err := c.SetLegTarget(bestHome, target, cfg.Simulation.LegRate); err != nil {
		logger.Warn("leg target failed",
			zap.Stringer("corner", bestHome),
			zap.Error(err))
		return
	}
	logger.Info("leg toggled",
		zap.Int("cube", bestCube),
		zap.Stringer("corner", bestHome),
		zap.Float64("target", target))
}

// setAllLegs retargets every leg of the primary cube.
func setAllLegs(s *sim.Simulator, target, rate float64) {
	c := s.Cube(0)
	for _, p := range c.Pieces() {
		if p.Leg == nil {
			continue
		}
		if err := c.SetLegTarget(p.Home, target, rate); err != nil {
			logger.Warn("leg target failed",
				zap.Stringer("corner", p.Home),
				zap.Error(err))
			return
		}
	}
}
