package feature

import (
	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

// ValueType enumerates the runtime shapes a feature value may take.
type ValueType string

const (
	RealScalar  ValueType = "real_scalar"
	IntScalar   ValueType = "int_scalar"
	Categorical ValueType = "categorical"
	Boolean     ValueType = "boolean"
	Vector      ValueType = "vector"
)

// Valid reports whether t names a known value type.
func (t ValueType) Valid() bool {
	switch t {
	case RealScalar, IntScalar, Categorical, Boolean, Vector:
		return true
	}
	return false
}

// Norm selects how scaled, weighted per-feature distances combine into one
// scalar.
type Norm string

const (
	// L1 aggregates as sum(w_i * d_i).
	L1 Norm = "L1"
	// L2 aggregates as sqrt(sum(w_i * d_i^2)).
	L2 Norm = "L2"
)

// Valid reports whether n names a known aggregation norm.
func (n Norm) Valid() bool { return n == L1 || n == L2 }

// MetricRef selects the per-feature metric.
type MetricRef struct {
	// Kind names a built-in metric, or metric.KindCustom for a user-supplied
	// one.
	Kind metric.Kind

	// Name refers to a metric registered via metric.Register. Consulted only
	// for custom metrics when Func is nil.
	Name string

	// Func is a directly supplied custom implementation. Takes precedence
	// over Name.
	Func metric.Func

	// Tolerance configures equality for discrete on real scalars (0 means
	// exact) and the distribution-sum check for hellinger (0 means
	// metric.DefaultDistributionTolerance). Ignored by other kinds.
	Tolerance float64
}

// ScalerRef selects the per-feature scaling of the raw distance.
type ScalerRef struct {
	// Kind names a built-in scaler, or scaler.KindCustom for a user-supplied
	// one. The zero value means scaler.KindNone.
	Kind scaler.Kind

	// Name refers to a scaler registered via scaler.Register. Consulted only
	// for custom scalers when Func is nil.
	Name string

	// Func is a directly supplied custom implementation. Takes precedence
	// over Name.
	Func scaler.Func

	// Range is the scale parameter, required finite and > 0 for linear and
	// exponential, passed through to custom scalers as given.
	Range float64
}

// Definition declares one feature of a space: a unique name bound to a value
// type, a metric, a scaler and a nonnegative weight.
type Definition struct {
	Name string
	Type ValueType

	// Dimension is the required vector length. Set if and only if Type is
	// Vector.
	Dimension int

	Metric MetricRef
	Scaler ScalerRef

	// Weight is the feature's contribution factor during aggregation. Zero
	// is permitted and contributes nothing.
	Weight float64
}
