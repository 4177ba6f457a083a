package engine

import (
	"fmt"

	"github.com/viant/featspace/feature"
	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

// resolveMetric turns a validated definition into a raw-distance closure
// over normalized values. The bool result marks custom metrics, whose output
// the engine validates on every invocation rather than trusting.
func resolveMetric(def feature.Definition) (metric.Func, bool, error) {
	ref := def.Metric
	if ref.Kind == metric.KindCustom {
		fn := ref.Func
		if fn == nil {
			var ok bool
			if fn, ok = metric.Lookup(ref.Name); !ok {
				return nil, false, fmt.Errorf("engine: %q: custom metric %q not registered", def.Name, ref.Name)
			}
		}
		return fn, true, nil
	}

	switch ref.Kind {
	case metric.KindDiscrete:
		return resolveDiscrete(def), false, nil
	case metric.KindAbsolute:
		return func(x, y any) (float64, error) {
			return metric.Absolute(asFloat(x), asFloat(y)), nil
		}, false, nil
	case metric.KindEuclidean:
		return vectorMetric(metric.EuclideanDistance), false, nil
	case metric.KindManhattan:
		return vectorMetric(metric.ManhattanDistance), false, nil
	case metric.KindChebyshev:
		return vectorMetric(metric.ChebyshevDistance), false, nil
	case metric.KindCosine:
		return vectorMetric(metric.CosineSimilarity), false, nil
	case metric.KindHellinger:
		tol := ref.Tolerance
		return func(x, y any) (float64, error) {
			return metric.HellingerDistance(x.([]float32), y.([]float32), tol)
		}, false, nil
	}
	return nil, false, fmt.Errorf("engine: %q: unknown metric kind %q", def.Name, ref.Kind)
}

func resolveDiscrete(def feature.Definition) metric.Func {
	switch def.Type {
	case feature.RealScalar:
		tol := def.Metric.Tolerance
		return func(x, y any) (float64, error) {
			return metric.DiscreteTolerance(x.(float64), y.(float64), tol), nil
		}
	case feature.IntScalar:
		return func(x, y any) (float64, error) {
			return metric.Discrete(x.(int64), y.(int64)), nil
		}
	case feature.Boolean:
		return func(x, y any) (float64, error) {
			return metric.Discrete(x.(bool), y.(bool)), nil
		}
	default: // Categorical; vector types are rejected at schema build.
		return func(x, y any) (float64, error) {
			return metric.Discrete(x.(string), y.(string)), nil
		}
	}
}

func vectorMetric(fn func(a, b []float32) (float64, error)) metric.Func {
	return func(x, y any) (float64, error) {
		return fn(x.([]float32), y.([]float32))
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	}
	return 0
}

// resolveScaler binds the scaler closure with the feature's range. The bool
// result marks custom scalers, whose output the engine validates on every
// invocation.
func resolveScaler(def feature.Definition) (func(d float64) (float64, error), bool, error) {
	ref := def.Scaler
	kind := ref.Kind
	if kind == "" {
		kind = scaler.KindNone
	}
	switch kind {
	case scaler.KindNone:
		return func(d float64) (float64, error) { return scaler.Identity(d), nil }, false, nil
	case scaler.KindLinear:
		r := ref.Range
		return func(d float64) (float64, error) { return scaler.Linear(d, r), nil }, false, nil
	case scaler.KindExponential:
		r := ref.Range
		return func(d float64) (float64, error) { return scaler.Exponential(d, r), nil }, false, nil
	case scaler.KindCustom:
		fn := ref.Func
		if fn == nil {
			var ok bool
			if fn, ok = scaler.Lookup(ref.Name); !ok {
				return nil, false, fmt.Errorf("engine: %q: custom scaler %q not registered", def.Name, ref.Name)
			}
		}
		r := ref.Range
		return func(d float64) (float64, error) { return fn(d, r) }, true, nil
	}
	return nil, false, fmt.Errorf("engine: %q: unknown scaler kind %q", def.Name, kind)
}

// checkValue verifies a value against the declared type and dimension and
// normalizes it to the canonical runtime shape: float64, int64, string, bool
// or []float32.
func checkValue(def feature.Definition, v any) (any, error) {
	switch def.Type {
	case feature.RealScalar:
		switch t := v.(type) {
		case float64:
			return t, nil
		case float32:
			return float64(t), nil
		}
	case feature.IntScalar:
		switch t := v.(type) {
		case int64:
			return t, nil
		case int:
			return int64(t), nil
		case int32:
			return int64(t), nil
		}
	case feature.Categorical:
		if t, ok := v.(string); ok {
			return t, nil
		}
	case feature.Boolean:
		if t, ok := v.(bool); ok {
			return t, nil
		}
	case feature.Vector:
		t, ok := v.([]float32)
		if !ok {
			break
		}
		if len(t) != def.Dimension {
			return nil, fmt.Errorf("engine: %q: value has %d components, schema declares %d: %w",
				def.Name, len(t), def.Dimension, metric.ErrDimensionMismatch)
		}
		return t, nil
	}
	return nil, fmt.Errorf("engine: %q: got %T, want %s: %w", def.Name, v, def.Type, feature.ErrTypeMismatch)
}
