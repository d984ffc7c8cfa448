package gra

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

func WeightedGrades(coeff *mat.Dense, weights []float64) ([]float64, error) {
	rows, cols := coeff.Dims()
	if len(weights) != cols {
		return nil, fmt.Errorf("%w: got %d weights for %d indices", ErrWeightLength, len(weights), cols)
	}

	grades := mat.NewVecDense(rows, nil)
	grades.MulVec(coeff, mat.NewVecDense(cols, weights))

	return grades.RawVector().Data, nil
}

// RelationalGrades runs difference, coefficient and weighting for one
// reference and returns one grade per sample.
func RelationalGrades(x0 Reference, data *mat.Dense, weights []float64, r float64) ([]float64, error) {
	_, cols := data.Dims()
	if len(x0) != cols {
		return nil, fmt.Errorf("%w: reference has %d entries, data has %d columns", ErrIndexCountMismatch, len(x0), cols)
	}

	diff := AbsDifference(x0.Floats(), data)

	coeff, err := RelationalCoefficients(diff, r)
	if err != nil {
		return nil, err
	}

	return WeightedGrades(coeff, weights)
}
