package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/shardmaze/physics"
)

// ErrPlacementExhausted reports that random sampling found no free spot within the retry cap
var ErrPlacementExhausted = errors.New("placement exhausted")

// Scatter describes a random placement pass
type Scatter struct {
	Count   int
	Radius  float64 // polar sampling radius around origin
	Height  float64
	Retries int // rejected samples allowed per item
}

// Place samples Count non-colliding positions uniformly in angle and radius
// Each item gets its own retry budget; the first item to run out aborts the pass
func Place(c physics.Collider, s Scatter, rng *rand.Rand) ([]mgl64.Vec3, error) {
	out := make([]mgl64.Vec3, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		pos, ok := sample(c, s, rng)
		if !ok {
			return out, fmt.Errorf("item %d of %d after %d samples: %w", i, s.Count, s.Retries, ErrPlacementExhausted)
		}
		out = append(out, pos)
	}
	return out, nil
}

func sample(c physics.Collider, s Scatter, rng *rand.Rand) (mgl64.Vec3, bool) {
	for try := 0; try < s.Retries; try++ {
		angle := rng.Float64() * 2 * math.Pi
		r := rng.Float64() * s.Radius
		sin, cos := math.Sincos(angle)
		pos := mgl64.Vec3{cos * r, s.Height, sin * r}
		if !c.Collides(pos) {
			return pos, true
		}
	}
	return mgl64.Vec3{}, false
}
