package parameter

// Collectibles
const (
	// ShardCount is the number of glass shards scattered per level
	ShardCount = 250

	// BatteryCount is the number of spare batteries scattered per level
	BatteryCount = 5

	// CollectibleHeight is the placement elevation
	CollectibleHeight = 1.0

	// PlacementRadius bounds random placement around the origin
	PlacementRadius = 45.0

	// PlacementRetries caps rejected samples per item before giving up
	PlacementRetries = 1000

	// PickupDistance is the collection range
	PickupDistance = 2.0
)
