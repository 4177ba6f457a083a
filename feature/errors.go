package feature

import "errors"

// Schema construction errors. All are detected by New, never at compute
// time.
var (
	ErrDuplicateFeature    = errors.New("feature: duplicate feature name")
	ErrMissingDimension    = errors.New("feature: vector feature requires a positive dimension")
	ErrUnexpectedDimension = errors.New("feature: dimension set on a non-vector feature")
	ErrIncompatibleMetric  = errors.New("feature: metric incompatible with value type")
	ErrInvalidRange        = errors.New("feature: scaler range must be finite and > 0")
	ErrNegativeWeight      = errors.New("feature: weight must be a finite nonnegative number")
	ErrUnresolvedCustom    = errors.New("feature: custom implementation neither supplied nor registered")
)

// Input errors, raised per compute call when an element does not match the
// schema.
var (
	ErrMissingFeature = errors.New("feature: element is missing a feature value")
	ErrTypeMismatch   = errors.New("feature: element value does not match the declared value type")
)
