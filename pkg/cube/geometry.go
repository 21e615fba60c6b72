package cube

// Geometry fixes the physical dimensions shared by every piece of a cube.
// All distances are millimeters.
type Geometry struct {
	CellSize     float64 // edge length of one piece body
	Spacing      float64 // center-to-center distance between adjacent cells
	AnchorOffset float64 // corner vertex to leg base, along the diagonal
	BaseOffset   float64 // leg base to tip sphere center at zero extension
	MaxExtension float64 // prismatic travel limit
	TipRadius    float64 // docking sphere radius
}

// DefaultGeometry returns the reference mechanism's dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		CellSize:     25,
		Spacing:      25,
		AnchorOffset: 8,
		BaseOffset:   50,
		MaxExtension: 30,
		TipRadius:    5,
	}
}
