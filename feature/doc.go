// Package feature defines the schema of a multivariate feature space: an
// ordered, immutable list of named features of heterogeneous type, each
// bound to a distance metric, a scaler and a weight, plus the aggregation
// norm combining them. All configuration errors are caught when the Space is
// built, never during distance computation.
package feature
