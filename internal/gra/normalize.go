package gra

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// NormalizeWeights returns a copy of weights rescaled to sum to 1. Every
// weight must be finite and non-negative, and at least one must be positive.
func NormalizeWeights(weights []float64) ([]float64, error) {
	for j, w := range weights {
		if !isFinite(w) || w < 0 {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, j, w)
		}
	}

	sum := floats.Sum(weights)
	if sum <= 0 {
		return nil, fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, sum)
	}

	result := make([]float64, len(weights))
	copy(result, weights)
	floats.Scale(1.0/sum, result)

	log.Debug().Float64("sum", sum).Floats64("weights", result).Msg("normalized weights")
	return result, nil
}
