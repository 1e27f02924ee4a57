package parameter

// Maze topology
const (
	// MazeSize is the default grid edge length in cells
	MazeSize = 30

	// MazeMinSize keeps seed placement and interior sampling meaningful
	MazeMinSize = 4

	// MazeLoopFactor scales loop injection passes: floor(size * factor)
	MazeLoopFactor = 0.8

	// MazeShortcutFactor scales shortcut passes: floor(size * factor)
	MazeShortcutFactor = 0.4
)

// World-space wall layout
const (
	// CorridorPitch is the world distance between adjacent cell centers
	CorridorPitch = 6.0

	// WallThickness is the short horizontal extent of an internal wall
	WallThickness = 2.0

	// WallLength is the long horizontal extent; exceeds pitch so corners close
	WallLength = 8.0

	// WallHeight is the vertical extent; walls stand on y=0
	WallHeight = 4.0
)
