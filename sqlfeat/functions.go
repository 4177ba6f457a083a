package sqlfeat

import (
	"database/sql/driver"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"

	"github.com/viant/featspace/feature"
	"github.com/viant/featspace/metric"
)

// RegisterMetricFunctions registers feat_euclidean, feat_manhattan,
// feat_chebyshev, feat_cosine and feat_hellinger as deterministic SQL scalar
// functions over BLOB-encoded vectors (see EncodeVector), so they are
// available on connections opened after this call. feat_cosine returns the
// raw cosine similarity in [-1, 1], consistent with the metric package.
// Note: existing open connections will not see new functions.
func RegisterMetricFunctions() error {
	// Idempotent registration; the driver rejects duplicates but we ignore errors silently here.
	_ = sqlite.RegisterDeterministicScalarFunction("feat_euclidean", 2, vectorMetricImpl(metric.EuclideanDistance))
	_ = sqlite.RegisterDeterministicScalarFunction("feat_manhattan", 2, vectorMetricImpl(metric.ManhattanDistance))
	_ = sqlite.RegisterDeterministicScalarFunction("feat_chebyshev", 2, vectorMetricImpl(metric.ChebyshevDistance))
	_ = sqlite.RegisterDeterministicScalarFunction("feat_cosine", 2, vectorMetricImpl(metric.CosineSimilarity))
	_ = sqlite.RegisterDeterministicScalarFunction("feat_hellinger", 2, vectorMetricImpl(hellingerDefault))
	return nil
}

func hellingerDefault(a, b []float32) (float64, error) {
	return metric.HellingerDistance(a, b, metric.DefaultDistributionTolerance)
}

func vectorMetricImpl(fn func(a, b []float32) (float64, error)) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("sqlfeat: expected 2 arguments, got %d", len(args))
		}
		a, err := asVector(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asVector(args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		return fn(a, b)
	}
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return DecodeVector(v)
	default:
		return nil, fmt.Errorf("sqlfeat: unsupported argument type %T for vector; want BLOB", arg)
	}
}

// Distancer is the part of the distance engine the SQL surface needs. It is
// satisfied by *engine.Engine.
type Distancer interface {
	Space() *feature.Space
	Compute(x, y feature.Element) (float64, error)
}

// RegisterSpaceFunction registers feat_distance_<name> as a deterministic
// SQL scalar function computing the aggregated distance between two
// JSON-encoded elements under the engine's schema. Element arguments are
// JSON objects mapping feature names to values; vector features are JSON
// arrays of numbers. NULL operands yield NULL.
//
// The name is sanitized for use inside a SQL identifier; it must be
// non-empty. Functions registered here become available on connections
// opened after the call.
func RegisterSpaceFunction(name string, dist Distancer) error {
	if name == "" {
		return fmt.Errorf("sqlfeat: RegisterSpaceFunction with empty name")
	}
	if dist == nil {
		return fmt.Errorf("sqlfeat: RegisterSpaceFunction %q with nil engine", name)
	}
	fnName := "feat_distance_" + sanitizeIdentifier(name)
	impl := func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", fnName, len(args))
		}
		x, err := asElement(dist.Space(), args[0])
		if err != nil {
			return nil, err
		}
		y, err := asElement(dist.Space(), args[1])
		if err != nil {
			return nil, err
		}
		if x == nil || y == nil {
			return nil, nil
		}
		return dist.Compute(x, y)
	}
	// Idempotent registration, same as the metric functions above.
	_ = sqlite.RegisterDeterministicScalarFunction(fnName, 2, impl)
	return nil
}

func sanitizeIdentifier(name string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return replacer.Replace(name)
}
