package parameter

// Spatial collision oracle
const (
	// ArenaRadius is the maximum horizontal distance from origin for any entity
	ArenaRadius = 100.0

	// CollisionMargin is the horizontal half-width of an entity's query box
	CollisionMargin = 0.5

	// CollisionHalfHeight is the vertical half-height of an entity's query box
	CollisionHalfHeight = 1.6
)
