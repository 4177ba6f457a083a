// Package metric provides the per-feature distance functions of a feature
// space: discrete, absolute, euclidean, manhattan, chebyshev, cosine and
// hellinger, plus a registry for user-supplied custom metrics. Each function
// maps two same-typed values to a scalar; all except CosineSimilarity (a
// similarity in [-1, 1], see its caveat) return a nonnegative distance.
package metric
