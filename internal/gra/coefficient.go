package gra

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RelationalCoefficients computes the grey relational coefficient of every
// cell against a single min and max taken over the whole difference matrix.
func RelationalCoefficients(diff *mat.Dense, r float64) (*mat.Dense, error) {
	if !(r > 0 && r <= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidR, r)
	}

	minDiff := mat.Min(diff)
	maxDiff := mat.Max(diff)
	if maxDiff == 0 {
		return nil, ErrDegenerateDifference
	}

	numerator := minDiff + r*maxDiff
	rows, cols := diff.Dims()

	coeff := mat.NewDense(rows, cols, nil)
	coeff.Apply(func(_, _ int, d float64) float64 {
		return numerator / (d + r*maxDiff)
	}, diff)

	return coeff, nil
}
