// Package cube models the kinematic state of a 3x3x3 twisty-puzzle mechanism
// whose corner pieces carry telescoping docking legs. It tracks which rigid
// body occupies which lattice cell through face turns, composes the resulting
// rigid transforms, and solves the placement of a second cube docked to one
// of the legs.
package cube

import (
	"fmt"

	"github.com/Faultbox/cubelink/pkg/math"
)

// Cube is one assembled mechanism: 26 pieces in bijection with the 26 cells
// around the fixed core, plus a root transform placing the whole cube in
// world space.
//
// A Cube is not safe for concurrent use. All mutation happens through its own
// methods on a single goroutine, and the piece/cell bijection is atomically
// permuted at turn commit.
type Cube struct {
	geom   Geometry
	pieces []*Piece      // indexed by ID, assembly order
	cells  map[Coord]int // current coordinate -> piece ID
	homes  map[Coord]int // home coordinate -> piece ID, fixed at assembly
	root   math.Transform
	turn   *activeTurn // non-nil while an animated turn is uncommitted
}

// New assembles a cube with the given geometry at the world origin. All 26
// pieces start at their home cells with identity rotation and translation
// coordinate*spacing; legs are mounted on the eight corners, retracted.
func New(geom Geometry) *Cube {
	c := &Cube{
		geom:   geom,
		pieces: make([]*Piece, 0, 26),
		cells:  make(map[Coord]int, 26),
		homes:  make(map[Coord]int, 26),
		root:   math.TransformIdentity(),
	}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				coord := Coord{x, y, z}
				if !coord.Valid() {
					continue
				}
				p := &Piece{
					ID:    len(c.pieces),
					Kind:  coord.Kind(),
					Home:  coord,
					Coord: coord,
					Local: math.Transform{Rot: math.QuatIdentity(), Pos: coord.Vec(geom.Spacing)},
				}
				if p.Kind == KindCorner {
					p.Leg = newLeg(coord, geom)
				}
				c.cells[coord] = p.ID
				c.homes[coord] = p.ID
				c.pieces = append(c.pieces, p)
			}
		}
	}
	return c
}

// Geometry returns the cube's fixed dimensions.
func (c *Cube) Geometry() Geometry {
	return c.geom
}

// Pieces returns all 26 pieces in stable ID order. Callers must treat the
// slice and the pieces as read-only.
func (c *Cube) Pieces() []*Piece {
	return c.pieces
}

// PieceByID returns the piece with the given stable ID.
func (c *Cube) PieceByID(id int) (*Piece, error) {
	if id < 0 || id >= len(c.pieces) {
		return nil, fmt.Errorf("piece id %d: %w", id, ErrInvalidCoordinate)
	}
	return c.pieces[id], nil
}

// PieceAt returns the piece currently occupying the cell.
func (c *Cube) PieceAt(coord Coord) (*Piece, error) {
	if !coord.Valid() {
		return nil, fmt.Errorf("cell %v: %w", coord, ErrInvalidCoordinate)
	}
	id, ok := c.cells[coord]
	if !ok {
		return nil, fmt.Errorf("cell %v unoccupied: %w", coord, ErrGridConsistency)
	}
	return c.pieces[id], nil
}

// CoordOf returns the cell currently occupied by the piece with the given ID.
func (c *Cube) CoordOf(id int) (Coord, error) {
	p, err := c.PieceByID(id)
	if err != nil {
		return Coord{}, err
	}
	return p.Coord, nil
}

// PieceTransform returns the piece's placement relative to the cube root.
func (c *Cube) PieceTransform(id int) (math.Transform, error) {
	p, err := c.PieceByID(id)
	if err != nil {
		return math.Transform{}, err
	}
	return p.Local, nil
}

// RootTransform returns the cube's world placement.
func (c *Cube) RootTransform() math.Transform {
	return c.root
}

// SetRootTransform places the whole cube in world space.
func (c *Cube) SetRootTransform(t math.Transform) {
	c.root = t
}

// Corner returns the corner piece assembled at the given home cell. The
// lookup is by stable identity: after turns the piece may occupy any corner
// cell, but it remains the same body with the same leg.
func (c *Cube) Corner(home Coord) (*Piece, error) {
	if !home.Valid() || home.Kind() != KindCorner {
		return nil, fmt.Errorf("corner home %v: %w", home, ErrInvalidCoordinate)
	}
	return c.pieces[c.homes[home]], nil
}

// SetLegTarget starts the corner's leg moving toward the target extension at
// the given rate.
func (c *Cube) SetLegTarget(home Coord, target, rate float64) error {
	p, err := c.Corner(home)
	if err != nil {
		return err
	}
	return p.Leg.SetTarget(target, rate)
}

// AdvanceLegs steps every active leg interpolation by dt.
func (c *Cube) AdvanceLegs(dt float64) {
	for _, p := range c.pieces {
		if p.Leg != nil {
			p.Leg.Advance(dt)
		}
	}
}

// LegExtension reports the current extension of the corner's leg.
func (c *Cube) LegExtension(home Coord) (float64, error) {
	p, err := c.Corner(home)
	if err != nil {
		return 0, err
	}
	return p.Leg.Extension, nil
}

// LegsActive reports whether any leg interpolation is still running.
func (c *Cube) LegsActive() bool {
	for _, p := range c.pieces {
		if p.Leg != nil && p.Leg.Active() {
			return true
		}
	}
	return false
}

// TipWorld returns the world position of the corner's leg tip.
func (c *Cube) TipWorld(home Coord) (math.Vec3, error) {
	p, err := c.Corner(home)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.Leg.TipWorld(p.Local, c.root), nil
}

// TipState reports one leg's extension and world tip position.
type TipState struct {
	Home      Coord
	Extension float64
	Tip       math.Vec3
	Active    bool
}

// LegTips reports all eight legs in stable assembly order.
func (c *Cube) LegTips() []TipState {
	tips := make([]TipState, 0, 8)
	for _, p := range c.pieces {
		if p.Leg == nil {
			continue
		}
		tips = append(tips, TipState{
			Home:      p.Home,
			Extension: p.Leg.Extension,
			Tip:       p.Leg.TipWorld(p.Local, c.root),
			Active:    p.Leg.Active(),
		})
	}
	return tips
}
