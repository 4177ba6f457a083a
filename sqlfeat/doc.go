// Package sqlfeat exposes the feature-space metrics and the aggregated
// distance as deterministic SQL scalar functions for the modernc.org/sqlite
// driver: feat_euclidean, feat_manhattan, feat_chebyshev, feat_cosine and
// feat_hellinger over BLOB-encoded vectors, and feat_distance_<name> over
// JSON-encoded elements of a registered feature space. It also provides a
// driver open helper and the vector BLOB codec.
package sqlfeat
