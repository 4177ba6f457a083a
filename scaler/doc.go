// Package scaler maps raw per-feature distances into [0, 1] so that features
// with incomparable natural scales (ages, dollars, bin counts) contribute
// comparable terms to the aggregated distance. It provides identity, linear
// and exponential mappings plus a registry for user-supplied scalers.
package scaler
