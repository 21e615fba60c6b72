package main

import (
	gomath "math"

	"github.com/Faultbox/cubelink/internal/engine/renderer"
	"github.com/Faultbox/cubelink/internal/sim"
	"github.com/Faultbox/cubelink/pkg/cube"
	"github.com/Faultbox/cubelink/pkg/math"
)

// Wireframe palette. Turning pieces and active legs get highlight colors so
// motion reads clearly against the resting state.
var (
	colorCorner    = renderer.Color{0.85, 0.85, 0.9}
	colorEdge      = renderer.Color{0.55, 0.6, 0.7}
	colorCenter    = renderer.Color{0.35, 0.4, 0.5}
	colorTurning   = renderer.Color{1.0, 0.75, 0.2}
	colorLeg       = renderer.Color{0.25, 0.85, 0.8}
	colorLegActive = renderer.Color{0.4, 1.0, 0.95}
	colorTip       = renderer.Color{1.0, 0.35, 0.35}
	colorLink      = renderer.Color{0.8, 0.4, 1.0}
	colorGrid      = renderer.Color{0.16, 0.18, 0.23}
)

// drawFrame renders one simulator frame as line geometry.
func drawFrame(r *renderer.Renderer, fr sim.Frame, geom cube.Geometry) {
	half := geom.CellSize / 2

	for _, cf := range fr.Cubes {
		for _, p := range cf.Pieces {
			r.Box(p.World, half, pieceColor(p))
		}
		for _, l := range cf.Legs {
			legColor := colorLeg
			if l.Active {
				legColor = colorLegActive
			}
			r.Line(l.Vertex, l.BaseEnd, legColor)
			r.Line(l.BaseEnd, l.Tip, legColor)
			r.Cross(l.Tip, geom.TipRadius, colorTip)
		}
	}

	for _, l := range fr.Links {
		r.Line(l.DriveTip, l.RecvTip, colorLink)
		r.Cross(l.DriveTip, geom.TipRadius*1.5, colorLink)
		r.Cross(l.RecvTip, geom.TipRadius*1.5, colorLink)
	}
}

// drawGrid renders the ground reference plane. It sits at the height the
// lower leg tips reach at full extension, so a fully extended cube stands
// on it.
func drawGrid(r *renderer.Renderer, geom cube.Geometry) {
	reach := (geom.AnchorOffset + geom.BaseOffset + geom.MaxExtension + geom.TipRadius) / gomath.Sqrt(3)
	floorY := -(geom.Spacing + geom.CellSize/2 + reach)
	r.Grid(math.Vec3{Y: floorY}, 6*geom.CellSize, geom.CellSize, colorGrid)
}

// pieceColor picks the wireframe color for a piece body.
func pieceColor(p sim.PieceFrame) renderer.Color {
	if p.Turning {
		return colorTurning
	}
	switch p.Kind {
	case cube.KindCorner:
		return colorCorner
	case cube.KindEdge:
		return colorEdge
	default:
		return colorCenter
	}
}
