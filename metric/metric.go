package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// Kind identifies a per-feature distance function.
type Kind string

const (
	KindDiscrete  Kind = "discrete"
	KindAbsolute  Kind = "absolute"
	KindEuclidean Kind = "euclidean"
	KindManhattan Kind = "manhattan"
	KindChebyshev Kind = "chebyshev"
	KindCosine    Kind = "cosine"
	KindHellinger Kind = "hellinger"
	KindCustom    Kind = "custom"
)

// Valid reports whether k names a known metric kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDiscrete, KindAbsolute, KindEuclidean, KindManhattan,
		KindChebyshev, KindCosine, KindHellinger, KindCustom:
		return true
	}
	return false
}

// DefaultDistributionTolerance is the allowed deviation of a Hellinger
// operand's component sum from 1 when no per-feature tolerance is set.
const DefaultDistributionTolerance = 1e-6

var (
	// ErrDimensionMismatch indicates two vectors of unequal length.
	ErrDimensionMismatch = errors.New("metric: vector dimension mismatch")

	// ErrDegenerateInput indicates an input for which the metric is
	// undefined, such as a zero-magnitude vector passed to cosine.
	ErrDegenerateInput = errors.New("metric: degenerate input")

	// ErrInvalidDistribution indicates a Hellinger operand that is not a
	// probability distribution (negative components or sum away from 1).
	ErrInvalidDistribution = errors.New("metric: input is not a probability distribution")

	// ErrInvalidOutput indicates a custom metric that produced a value
	// outside its contract (negative, NaN or infinite).
	ErrInvalidOutput = errors.New("metric: custom metric output out of contract")
)

// Func is the extension signature for user-supplied metrics. Values arrive
// already shape-checked against the feature definition: float64 for real
// scalars, int64 for integer scalars, string for categorical, bool for
// boolean and []float32 for vectors. The result must be a finite,
// nonnegative number.
type Func func(x, y any) (float64, error)

// Discrete returns 0 when x equals y and 1 otherwise.
func Discrete[T comparable](x, y T) float64 {
	if x == y {
		return 0
	}
	return 1
}

// DiscreteTolerance compares two real scalars within tol: it returns 0 when
// |x-y| <= tol and 1 otherwise. A tol of 0 is exact comparison.
func DiscreteTolerance(x, y, tol float64) float64 {
	if math.Abs(x-y) <= tol {
		return 0
	}
	return 1
}

// Absolute returns |x - y|.
func Absolute(x, y float64) float64 {
	return math.Abs(x - y)
}

// EuclideanDistance returns the L2 distance between two vectors of equal
// length.
func EuclideanDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: euclidean: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	return float64(search.Float32s(a).EuclideanDistance(b)), nil
}

// ManhattanDistance returns the L1 distance between two vectors of equal
// length.
func ManhattanDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: manhattan: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum, nil
}

// ChebyshevDistance returns the maximum absolute componentwise difference
// between two vectors of equal length.
func ChebyshevDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: chebyshev: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	var max float64
	for i := range a {
		if d := math.Abs(float64(a[i]) - float64(b[i])); d > max {
			max = d
		}
	}
	return max, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors, a
// value in [-1, 1] where larger means more similar. It is a similarity, not
// a distance: callers feeding it into a distance aggregation must compose it
// with an explicit transform (e.g. CosineDistance) first. It fails with
// ErrDegenerateInput when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: cosine: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("metric: cosine on empty vectors: %w", ErrDegenerateInput)
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0, fmt.Errorf("metric: cosine with zero-magnitude vector: %w", ErrDegenerateInput)
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}

// CosineDistance returns 1 minus the cosine similarity, clamped at 0 to
// absorb floating-point rounding. Suitable as a custom metric where a
// nonnegative angular distance is wanted instead of the raw similarity.
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: cosine distance: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	v1 := search.Float32s(a)
	m1 := v1.Magnitude()
	m2 := search.Float32s(b).Magnitude()
	if m1 == 0 || m2 == 0 {
		return 0, fmt.Errorf("metric: cosine distance with zero-magnitude vector: %w", ErrDegenerateInput)
	}
	d := float64(v1.CosineDistanceWithMagnitude(b, m1, m2))
	return math.Max(0, d), nil
}

// HellingerDistance returns the Hellinger distance between two probability
// distributions over the same bins, a value in [0, 1]. Each operand must be
// componentwise nonnegative and sum to 1 within tol (pass tol <= 0 for
// DefaultDistributionTolerance); otherwise it fails with
// ErrInvalidDistribution. Inputs are not normalized on the caller's behalf.
// The max(0, ...) clamp on the radicand only absorbs floating-point rounding
// for valid distributions.
func HellingerDistance(a, b []float32, tol float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("metric: hellinger: %d vs %d: %w", len(a), len(b), ErrDimensionMismatch)
	}
	if tol <= 0 {
		tol = DefaultDistributionTolerance
	}
	if err := checkDistribution(a, tol); err != nil {
		return 0, err
	}
	if err := checkDistribution(b, tol); err != nil {
		return 0, err
	}
	var bc float64
	for i := range a {
		bc += math.Sqrt(float64(a[i]) * float64(b[i]))
	}
	return math.Sqrt(math.Max(0, 1-bc)), nil
}

func checkDistribution(v []float32, tol float64) error {
	var sum float64
	for i := range v {
		c := float64(v[i])
		if c < 0 {
			return fmt.Errorf("metric: hellinger: negative component %v at index %d: %w", c, i, ErrInvalidDistribution)
		}
		sum += c
	}
	if math.Abs(sum-1) > tol {
		return fmt.Errorf("metric: hellinger: component sum %v deviates from 1 beyond tolerance %v: %w", sum, tol, ErrInvalidDistribution)
	}
	return nil
}

// CheckOutput validates the output-range contract for custom metrics: the
// value must be a finite, nonnegative number.
func CheckOutput(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("metric: output %v: %w", d, ErrInvalidOutput)
	}
	return nil
}
