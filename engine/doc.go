// Package engine orchestrates pairwise distance computation over a feature
// space: per-feature shape checks, raw metric evaluation, scaling into a
// bounded range and weighted L1/L2 aggregation. The engine is purely
// computational, fails fast on schema violations and never mutates its
// inputs.
package engine
