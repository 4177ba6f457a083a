package engine

import (
	"fmt"

	"github.com/viant/featspace/feature"
	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

// Engine computes aggregated distances between elements of one feature
// space. All metric and scaler implementations are resolved once at
// construction; an Engine is read-only afterwards and safe for
// unsynchronized concurrent use. Compute calls are independent and
// stateless with respect to each other.
type Engine struct {
	space    *feature.Space
	bindings []binding
}

// binding is one feature with its resolved metric and scaler closures. Raw
// closures receive values already normalized by checkValue.
type binding struct {
	def          feature.Definition
	raw          metric.Func
	customMetric bool
	scale        func(d float64) (float64, error)
	customScaler bool
}

// New resolves the space's metrics and scalers and returns an Engine. It
// fails if a custom implementation referenced by name has been unregistered
// since the space was built.
func New(space *feature.Space) (*Engine, error) {
	if space == nil {
		return nil, fmt.Errorf("engine: space is nil")
	}
	bindings := make([]binding, 0, space.Len())
	for i := 0; i < space.Len(); i++ {
		def := space.At(i)
		raw, custom, err := resolveMetric(def)
		if err != nil {
			return nil, err
		}
		scale, customScaler, err := resolveScaler(def)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{
			def:          def,
			raw:          raw,
			customMetric: custom,
			scale:        scale,
			customScaler: customScaler,
		})
	}
	return &Engine{space: space, bindings: bindings}, nil
}

// Space returns the feature space the engine was built for.
func (e *Engine) Space() *feature.Space { return e.space }

// Contribution reports one feature's share of an aggregated distance, in
// schema order. Weighted is Weight * Scaled regardless of the norm.
type Contribution struct {
	Name     string
	Weight   float64
	Raw      float64
	Scaled   float64
	Weighted float64
}

// Compute returns the aggregated distance between two elements. It fails
// fast on the first feature whose values are absent or do not match the
// schema; no defaults are substituted.
func (e *Engine) Compute(x, y feature.Element) (float64, error) {
	total, _, err := e.run(x, y, false)
	return total, err
}

// ComputeBreakdown returns the aggregated distance together with the
// per-feature raw, scaled and weighted terms in schema order, for
// diagnostics and reproducible reporting.
func (e *Engine) ComputeBreakdown(x, y feature.Element) (float64, []Contribution, error) {
	return e.run(x, y, true)
}

func (e *Engine) run(x, y feature.Element, breakdown bool) (float64, []Contribution, error) {
	weights := make([]float64, len(e.bindings))
	scaled := make([]float64, len(e.bindings))
	var contribs []Contribution
	if breakdown {
		contribs = make([]Contribution, 0, len(e.bindings))
	}

	for i, b := range e.bindings {
		name := b.def.Name
		xv, ok := x[name]
		if !ok {
			return 0, nil, fmt.Errorf("engine: %q absent from left element: %w", name, feature.ErrMissingFeature)
		}
		yv, ok := y[name]
		if !ok {
			return 0, nil, fmt.Errorf("engine: %q absent from right element: %w", name, feature.ErrMissingFeature)
		}
		xn, err := checkValue(b.def, xv)
		if err != nil {
			return 0, nil, err
		}
		yn, err := checkValue(b.def, yv)
		if err != nil {
			return 0, nil, err
		}

		raw, err := b.raw(xn, yn)
		if err != nil {
			return 0, nil, fmt.Errorf("engine: %q: %w", name, err)
		}
		if b.customMetric {
			if err := metric.CheckOutput(raw); err != nil {
				return 0, nil, fmt.Errorf("engine: %q: %w", name, err)
			}
		}

		d, err := b.scale(raw)
		if err != nil {
			return 0, nil, fmt.Errorf("engine: %q: %w", name, err)
		}
		if b.customScaler {
			if err := scaler.CheckOutput(d); err != nil {
				return 0, nil, fmt.Errorf("engine: %q: %w", name, err)
			}
		}

		weights[i] = b.def.Weight
		scaled[i] = d
		if breakdown {
			contribs = append(contribs, Contribution{
				Name:     name,
				Weight:   b.def.Weight,
				Raw:      raw,
				Scaled:   d,
				Weighted: b.def.Weight * d,
			})
		}
	}

	return Aggregate(e.space.Norm(), weights, scaled), contribs, nil
}
