package sqlfeat

import (
	"math"
	"testing"

	"github.com/viant/featspace/engine"
	"github.com/viant/featspace/feature"
	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

func TestRegisterMetricFunctionsAndUse(t *testing.T) {
	// Register globally before first connection so functions are available.
	if err := RegisterMetricFunctions(); err != nil {
		t.Fatalf("RegisterMetricFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	aBlob := EncodeVector([]float32{1, 0})
	bBlob := EncodeVector([]float32{0, 1})

	// feat_cosine orthogonal -> 0
	var sim float64
	if err := db.QueryRow(`SELECT feat_cosine(?, ?)`, aBlob, bBlob).Scan(&sim); err != nil {
		t.Fatalf("feat_cosine(a,b) query failed: %v", err)
	}
	if sim != 0 {
		t.Fatalf("feat_cosine(a,b) = %v, want 0", sim)
	}

	// feat_cosine identical -> 1
	if err := db.QueryRow(`SELECT feat_cosine(?, ?)`, aBlob, aBlob).Scan(&sim); err != nil {
		t.Fatalf("feat_cosine(a,a) query failed: %v", err)
	}
	if math.Abs(sim-1) > 1e-9 {
		t.Fatalf("feat_cosine(a,a) = %v, want 1", sim)
	}

	// feat_euclidean between (0,0) and (3,4) -> 5
	zeroBlob := EncodeVector([]float32{0, 0})
	threeFourBlob := EncodeVector([]float32{3, 4})

	var dist float64
	if err := db.QueryRow(`SELECT feat_euclidean(?, ?)`, zeroBlob, threeFourBlob).Scan(&dist); err != nil {
		t.Fatalf("feat_euclidean query failed: %v", err)
	}
	if math.Abs(dist-5) > 1e-9 {
		t.Fatalf("feat_euclidean = %v, want 5", dist)
	}

	// feat_manhattan between (0,0) and (3,4) -> 7
	if err := db.QueryRow(`SELECT feat_manhattan(?, ?)`, zeroBlob, threeFourBlob).Scan(&dist); err != nil {
		t.Fatalf("feat_manhattan query failed: %v", err)
	}
	if math.Abs(dist-7) > 1e-9 {
		t.Fatalf("feat_manhattan = %v, want 7", dist)
	}

	// feat_chebyshev between (0,0) and (3,4) -> 4
	if err := db.QueryRow(`SELECT feat_chebyshev(?, ?)`, zeroBlob, threeFourBlob).Scan(&dist); err != nil {
		t.Fatalf("feat_chebyshev query failed: %v", err)
	}
	if math.Abs(dist-4) > 1e-9 {
		t.Fatalf("feat_chebyshev = %v, want 4", dist)
	}

	// feat_hellinger of a distribution with itself -> 0
	distBlob := EncodeVector([]float32{0.2, 0.3, 0.5})
	if err := db.QueryRow(`SELECT feat_hellinger(?, ?)`, distBlob, distBlob).Scan(&dist); err != nil {
		t.Fatalf("feat_hellinger query failed: %v", err)
	}
	if dist > 1e-6 {
		t.Fatalf("feat_hellinger(x,x) = %v, want ~0", dist)
	}

	// NULL operands pass through as NULL.
	var nullable *float64
	if err := db.QueryRow(`SELECT feat_euclidean(NULL, ?)`, aBlob).Scan(&nullable); err != nil {
		t.Fatalf("feat_euclidean(NULL, a) query failed: %v", err)
	}
	if nullable != nil {
		t.Fatalf("feat_euclidean(NULL, a) = %v, want NULL", *nullable)
	}
}

func TestRegisterMetricFunctions_Errors(t *testing.T) {
	if err := RegisterMetricFunctions(); err != nil {
		t.Fatalf("RegisterMetricFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	// Mismatched dimensions surface as query errors, not silent results.
	var out float64
	err = db.QueryRow(`SELECT feat_euclidean(?, ?)`,
		EncodeVector([]float32{1}), EncodeVector([]float32{1, 2})).Scan(&out)
	if err == nil {
		t.Fatalf("feat_euclidean with mismatched dimensions succeeded")
	}

	// Non-distribution input is rejected by feat_hellinger.
	err = db.QueryRow(`SELECT feat_hellinger(?, ?)`,
		EncodeVector([]float32{0.4, 0.4}), EncodeVector([]float32{0.5, 0.5})).Scan(&out)
	if err == nil {
		t.Fatalf("feat_hellinger with non-distribution input succeeded")
	}
}

func censusEngine(t *testing.T) *engine.Engine {
	t.Helper()
	space, err := feature.New([]feature.Definition{
		{
			Name:   "population",
			Type:   feature.RealScalar,
			Metric: feature.MetricRef{Kind: metric.KindAbsolute},
			Scaler: feature.ScalerRef{Kind: scaler.KindExponential, Range: 1000},
			Weight: 0.3,
		},
		{
			Name:      "income_distribution",
			Type:      feature.Vector,
			Dimension: 3,
			Metric:    feature.MetricRef{Kind: metric.KindHellinger},
			Scaler:    feature.ScalerRef{Kind: scaler.KindNone},
			Weight:    0.5,
		},
		{
			Name:   "coffee_shops",
			Type:   feature.IntScalar,
			Metric: feature.MetricRef{Kind: metric.KindAbsolute},
			Scaler: feature.ScalerRef{Kind: scaler.KindLinear, Range: 5},
			Weight: 0.2,
		},
	}, feature.L1)
	if err != nil {
		t.Fatalf("feature.New failed: %v", err)
	}
	eng, err := engine.New(space)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return eng
}

func TestRegisterSpaceFunctionAndUse(t *testing.T) {
	eng := censusEngine(t)
	if err := RegisterSpaceFunction("census", eng); err != nil {
		t.Fatalf("RegisterSpaceFunction failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	xJSON := `{"population": 1000, "income_distribution": [0.2, 0.3, 0.5], "coffee_shops": 3}`
	yJSON := `{"population": 1200, "income_distribution": [0.25, 0.25, 0.5], "coffee_shops": 6}`

	var got float64
	if err := db.QueryRow(`SELECT feat_distance_census(?, ?)`, xJSON, yJSON).Scan(&got); err != nil {
		t.Fatalf("feat_distance_census query failed: %v", err)
	}

	want, err := eng.Compute(
		feature.Element{
			"population":          1000.0,
			"income_distribution": []float32{0.2, 0.3, 0.5},
			"coffee_shops":        int64(3),
		},
		feature.Element{
			"population":          1200.0,
			"income_distribution": []float32{0.25, 0.25, 0.5},
			"coffee_shops":        int64(6),
		},
	)
	if err != nil {
		t.Fatalf("engine.Compute failed: %v", err)
	}
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("feat_distance_census = %v, engine.Compute = %v", got, want)
	}

	// NULL operands pass through as NULL.
	var nullable *float64
	if err := db.QueryRow(`SELECT feat_distance_census(NULL, ?)`, yJSON).Scan(&nullable); err != nil {
		t.Fatalf("feat_distance_census(NULL, y) query failed: %v", err)
	}
	if nullable != nil {
		t.Fatalf("feat_distance_census(NULL, y) = %v, want NULL", *nullable)
	}

	// A missing feature in the JSON surfaces as a query error.
	var out float64
	err = db.QueryRow(`SELECT feat_distance_census(?, ?)`,
		`{"population": 1000}`, yJSON).Scan(&out)
	if err == nil {
		t.Fatalf("feat_distance_census with incomplete element succeeded")
	}
}

func TestRegisterSpaceFunctionValidation(t *testing.T) {
	if err := RegisterSpaceFunction("", censusEngine(t)); err == nil {
		t.Fatalf("RegisterSpaceFunction with empty name succeeded")
	}
	if err := RegisterSpaceFunction("census", nil); err == nil {
		t.Fatalf("RegisterSpaceFunction with nil engine succeeded")
	}
}

func TestDecodeElement(t *testing.T) {
	eng := censusEngine(t)
	space := eng.Space()

	elem, err := DecodeElement(space, []byte(`{"population": 1000, "income_distribution": [0.2, 0.3, 0.5], "coffee_shops": 3}`))
	if err != nil {
		t.Fatalf("DecodeElement failed: %v", err)
	}
	if v, ok := elem["population"].(float64); !ok || v != 1000 {
		t.Fatalf("population = %#v, want float64 1000", elem["population"])
	}
	if v, ok := elem["coffee_shops"].(int64); !ok || v != 3 {
		t.Fatalf("coffee_shops = %#v, want int64 3", elem["coffee_shops"])
	}
	if v, ok := elem["income_distribution"].([]float32); !ok || len(v) != 3 {
		t.Fatalf("income_distribution = %#v, want []float32 of len 3", elem["income_distribution"])
	}

	// Fractional values for integer features are rejected.
	if _, err := DecodeElement(space, []byte(`{"coffee_shops": 3.5}`)); err == nil {
		t.Fatalf("DecodeElement accepted fractional int_scalar")
	}
	// Non-numeric vector components are rejected.
	if _, err := DecodeElement(space, []byte(`{"income_distribution": [0.2, "x", 0.5]}`)); err == nil {
		t.Fatalf("DecodeElement accepted non-numeric vector component")
	}
	// Non-object documents are rejected.
	if _, err := DecodeElement(space, []byte(`[1, 2, 3]`)); err == nil {
		t.Fatalf("DecodeElement accepted a non-object document")
	}
}
