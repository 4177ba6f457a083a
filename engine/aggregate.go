package engine

import (
	"math"

	"github.com/viant/featspace/feature"
)

// Aggregate combines scaled per-feature distances into one scalar using the
// given norm. weights and scaled are parallel slices; an empty sequence
// yields 0. The result is order-independent and, with the nonnegative
// weights enforced at schema build, always >= 0.
func Aggregate(norm feature.Norm, weights, scaled []float64) float64 {
	var sum float64
	switch norm {
	case feature.L2:
		for i := range scaled {
			sum += weights[i] * scaled[i] * scaled[i]
		}
		return math.Sqrt(sum)
	default: // L1
		for i := range scaled {
			sum += weights[i] * scaled[i]
		}
		return sum
	}
}
