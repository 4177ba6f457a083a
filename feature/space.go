package feature

import (
	"fmt"
	"math"

	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

// Space is an ordered, validated, immutable feature schema together with its
// aggregation norm. A Space is read-only after construction and safe for
// unsynchronized concurrent use.
type Space struct {
	features []Definition
	norm     Norm
	index    map[string]int
}

// New validates the definitions in order and returns an immutable Space.
// It checks name uniqueness, dimension presence for vectors, metric and
// value-type compatibility, scaler range requirements, resolvability of
// custom implementations and weight validity. An empty norm defaults to L1.
func New(defs []Definition, norm Norm) (*Space, error) {
	if norm == "" {
		norm = L1
	}
	if !norm.Valid() {
		return nil, fmt.Errorf("feature: unknown aggregation norm %q", norm)
	}

	features := make([]Definition, len(defs))
	copy(features, defs)

	index := make(map[string]int, len(features))
	for i, def := range features {
		if def.Name == "" {
			return nil, fmt.Errorf("feature: definition %d has no name", i)
		}
		if _, ok := index[def.Name]; ok {
			return nil, fmt.Errorf("feature: %q: %w", def.Name, ErrDuplicateFeature)
		}
		index[def.Name] = i

		if !def.Type.Valid() {
			return nil, fmt.Errorf("feature: %q: unknown value type %q", def.Name, def.Type)
		}
		if def.Type == Vector {
			if def.Dimension <= 0 {
				return nil, fmt.Errorf("feature: %q: %w", def.Name, ErrMissingDimension)
			}
		} else if def.Dimension != 0 {
			return nil, fmt.Errorf("feature: %q: %w", def.Name, ErrUnexpectedDimension)
		}

		if err := validateMetric(def); err != nil {
			return nil, err
		}
		if err := validateScaler(def); err != nil {
			return nil, err
		}

		if math.IsNaN(def.Weight) || math.IsInf(def.Weight, 0) || def.Weight < 0 {
			return nil, fmt.Errorf("feature: %q: weight %v: %w", def.Name, def.Weight, ErrNegativeWeight)
		}
	}

	return &Space{features: features, norm: norm, index: index}, nil
}

// compatible lists the built-in metrics allowed per value type. Custom
// metrics are allowed for any type; compatibility is then the caller's
// responsibility.
var compatible = map[ValueType][]metric.Kind{
	Categorical: {metric.KindDiscrete},
	Boolean:     {metric.KindDiscrete},
	RealScalar:  {metric.KindDiscrete, metric.KindAbsolute},
	IntScalar:   {metric.KindDiscrete, metric.KindAbsolute},
	Vector: {
		metric.KindEuclidean, metric.KindManhattan, metric.KindChebyshev,
		metric.KindCosine, metric.KindHellinger,
	},
}

func validateMetric(def Definition) error {
	kind := def.Metric.Kind
	if !kind.Valid() {
		return fmt.Errorf("feature: %q: unknown metric kind %q", def.Name, kind)
	}
	if kind == metric.KindCustom {
		if def.Metric.Func != nil {
			return nil
		}
		if _, ok := metric.Lookup(def.Metric.Name); !ok {
			return fmt.Errorf("feature: %q: custom metric %q: %w", def.Name, def.Metric.Name, ErrUnresolvedCustom)
		}
		return nil
	}
	for _, allowed := range compatible[def.Type] {
		if kind == allowed {
			return nil
		}
	}
	return fmt.Errorf("feature: %q: metric %q on value type %q: %w", def.Name, kind, def.Type, ErrIncompatibleMetric)
}

func validateScaler(def Definition) error {
	kind := def.Scaler.Kind
	if kind == "" {
		kind = scaler.KindNone
	}
	if !kind.Valid() {
		return fmt.Errorf("feature: %q: unknown scaler kind %q", def.Name, kind)
	}
	r := def.Scaler.Range
	if kind.RequiresRange() && r == 0 {
		return fmt.Errorf("feature: %q: scaler %q requires a range: %w", def.Name, kind, ErrInvalidRange)
	}
	if r != 0 && (math.IsNaN(r) || math.IsInf(r, 0) || r <= 0) {
		return fmt.Errorf("feature: %q: range %v: %w", def.Name, r, ErrInvalidRange)
	}
	if kind == scaler.KindCustom && def.Scaler.Func == nil {
		if _, ok := scaler.Lookup(def.Scaler.Name); !ok {
			return fmt.Errorf("feature: %q: custom scaler %q: %w", def.Name, def.Scaler.Name, ErrUnresolvedCustom)
		}
	}
	return nil
}

// Len returns the number of features in the space.
func (s *Space) Len() int { return len(s.features) }

// At returns the definition at position i in schema order.
func (s *Space) At(i int) Definition { return s.features[i] }

// Features returns a copy of the definitions in schema order.
func (s *Space) Features() []Definition {
	out := make([]Definition, len(s.features))
	copy(out, s.features)
	return out
}

// Norm returns the space's aggregation norm.
func (s *Space) Norm() Norm { return s.norm }
