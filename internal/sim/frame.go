package sim

import (
	"github.com/Faultbox/cubelink/pkg/cube"
	"github.com/Faultbox/cubelink/pkg/math"
)

// Frame is a per-tick snapshot of everything a viewer draws. It holds plain
// values only, so it stays valid after the simulator moves on.
type Frame struct {
	Tick  int
	Cubes []CubeFrame
	Links []LinkFrame
}

// CubeFrame is the drawable state of one cube.
type CubeFrame struct {
	Root   math.Transform
	Pieces []PieceFrame
	Legs   []LegFrame
}

// PieceFrame is the drawable state of one piece body.
type PieceFrame struct {
	ID      int
	Kind    cube.PieceKind
	Home    cube.Coord
	Coord   cube.Coord
	World   math.Transform
	Turning bool
}

// LegFrame is the drawable state of one telescoping leg, with all points in
// world coordinates. The fixed segment runs Vertex to BaseEnd, the sliding
// segment BaseEnd to Tip.
type LegFrame struct {
	Home      cube.Coord
	Vertex    math.Vec3
	BaseEnd   math.Vec3
	Tip       math.Vec3
	Extension float64
	Active    bool
}

// LinkFrame is the drawable state of one dock junction. Both tips are world
// points; they sit the configured gap apart along the shared diagonal.
type LinkFrame struct {
	DriveTip math.Vec3
	RecvTip  math.Vec3
}

// Frame captures the current drawable state of every cube.
func (s *Simulator) Frame() Frame {
	fr := Frame{Tick: s.tick, Cubes: make([]CubeFrame, 0, len(s.cubes))}

	for _, c := range s.cubes {
		root := c.RootTransform()
		geom := c.Geometry()
		fixed := geom.AnchorOffset + geom.BaseOffset

		turning := make(map[int]bool)
		for _, id := range c.TurningPieces() {
			turning[id] = true
		}

		cf := CubeFrame{Root: root}
		for _, p := range c.Pieces() {
			world := root.Mul(p.Local)
			cf.Pieces = append(cf.Pieces, PieceFrame{
				ID:      p.ID,
				Kind:    p.Kind,
				Home:    p.Home,
				Coord:   p.Coord,
				World:   world,
				Turning: turning[p.ID],
			})

			if p.Leg == nil {
				continue
			}
			vertex := p.Leg.VertexLocal()
			cf.Legs = append(cf.Legs, LegFrame{
				Home:      p.Home,
				Vertex:    world.Apply(vertex),
				BaseEnd:   world.Apply(vertex.Add(p.Leg.Diagonal.Scale(fixed))),
				Tip:       world.Apply(p.Leg.TipLocal()),
				Extension: p.Leg.Extension,
				Active:    p.Leg.Active(),
			})
		}
		fr.Cubes = append(fr.Cubes, cf)
	}

	for _, l := range s.links {
		driveTip, err := l.Drive.TipWorld(l.DriveCorner)
		if err != nil {
			continue
		}
		recvTip, err := l.Recv.TipWorld(l.RecvCorner)
		if err != nil {
			continue
		}
		fr.Links = append(fr.Links, LinkFrame{DriveTip: driveTip, RecvTip: recvTip})
	}

	return fr
}
