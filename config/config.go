package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/viant/featspace/feature"
	"github.com/viant/featspace/metric"
	"github.com/viant/featspace/scaler"
)

// FeatureSpace is the declarative form of a feature space: one entry per
// feature plus one schema-level aggregation norm. It decodes from YAML (and
// therefore JSON).
type FeatureSpace struct {
	Features    []Feature   `yaml:"features" json:"features"`
	Aggregation Aggregation `yaml:"aggregation" json:"aggregation"`
}

// Feature is one row of the declarative table: name, value type, metric,
// scaler and weight.
type Feature struct {
	Name      string `yaml:"name" json:"name"`
	ValueType string `yaml:"value_type" json:"value_type"`
	Dimension int    `yaml:"dimension,omitempty" json:"dimension,omitempty"`
	Metric    Metric `yaml:"metric" json:"metric"`
	Scaler    Scaler `yaml:"scaler" json:"scaler"`
	Weight    float64 `yaml:"weight" json:"weight"`
}

// Metric selects a per-feature metric. Name refers to an implementation
// registered via metric.Register and applies to kind "custom" only.
type Metric struct {
	Kind   string `yaml:"kind" json:"kind"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Params Params `yaml:"params,omitempty" json:"params,omitempty"`
}

// Params carries optional metric parameters.
type Params struct {
	// Tolerance configures discrete equality on real scalars and the
	// hellinger distribution-sum check.
	Tolerance float64 `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Scaler selects a per-feature scaler. Name refers to an implementation
// registered via scaler.Register and applies to kind "custom" only.
type Scaler struct {
	Kind  string  `yaml:"kind" json:"kind"`
	Name  string  `yaml:"name,omitempty" json:"name,omitempty"`
	Range float64 `yaml:"range,omitempty" json:"range,omitempty"`
}

// Aggregation selects the schema-level norm, "L1" or "L2".
type Aggregation struct {
	Norm string `yaml:"norm" json:"norm"`
}

// Parse decodes a declarative feature space from YAML or JSON. Unknown
// fields are rejected.
func Parse(data []byte) (*FeatureSpace, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg FeatureSpace
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: empty document")
		}
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &cfg, nil
}

// Build compiles the declarative form into a validated feature.Space. All
// schema-level validation (§ compatibility, ranges, weights) is delegated to
// feature.New.
func (c *FeatureSpace) Build() (*feature.Space, error) {
	defs := make([]feature.Definition, 0, len(c.Features))
	for _, f := range c.Features {
		defs = append(defs, feature.Definition{
			Name:      f.Name,
			Type:      feature.ValueType(f.ValueType),
			Dimension: f.Dimension,
			Metric: feature.MetricRef{
				Kind:      metric.Kind(f.Metric.Kind),
				Name:      f.Metric.Name,
				Tolerance: f.Metric.Params.Tolerance,
			},
			Scaler: feature.ScalerRef{
				Kind:  scaler.Kind(f.Scaler.Kind),
				Name:  f.Scaler.Name,
				Range: f.Scaler.Range,
			},
			Weight: f.Weight,
		})
	}
	return feature.New(defs, feature.Norm(strings.ToUpper(c.Aggregation.Norm)))
}
