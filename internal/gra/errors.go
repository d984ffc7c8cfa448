package gra

import "errors"

var (
	ErrInvalidNumIndices    = errors.New("number of indices out of range")
	ErrInvalidR             = errors.New("r must lie in (0, 1]")
	ErrSampleCountMismatch  = errors.New("data sample count does not match category counts")
	ErrIndexCountMismatch   = errors.New("data column count does not match number of indices")
	ErrWeightLength         = errors.New("weight vector length does not match number of indices")
	ErrInvalidWeights       = errors.New("weights cannot be normalized")
	ErrInvalidCategories    = errors.New("category counts must be non-negative with a positive total")
	ErrDegenerateData       = errors.New("data has zero difference range for some reference")
	ErrNonFiniteValue       = errors.New("value is NaN or infinite")
	ErrDegenerateDifference = errors.New("difference matrix has zero range")
	ErrLengthMismatch       = errors.New("label and target lengths differ")
	ErrEmptySamples         = errors.New("no samples to score")
)
