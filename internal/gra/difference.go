package gra

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func AbsDifference(x0 []float64, data *mat.Dense) *mat.Dense {
	rows, cols := data.Dims()

	diff := mat.NewDense(rows, cols, nil)
	diff.Apply(func(_, j int, v float64) float64 {
		return math.Abs(x0[j] - v)
	}, data)

	return diff
}
