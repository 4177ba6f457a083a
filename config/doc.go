// Package config decodes the declarative table form of a feature space
// (feature name, value type, metric, scaler, range, weight, plus one
// aggregation norm) from YAML or JSON and compiles it into a validated
// feature.Space.
package config
