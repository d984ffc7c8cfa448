package gra

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/gratune/internal/utils/logger"
)

type Params struct {
	R               float64 // smoothing constant of the relational coefficient
	ThresholdFactor float64 // std multiple for the tri-level band
	Workers         int
	ProgressEvery   int // candidates between progress log lines, 0 disables
}

type Tuner struct {
	Params Params
}

type TunerOption func(*Tuner)

func WithR(r float64) TunerOption {
	return func(t *Tuner) {
		t.Params.R = r
	}
}

func WithThresholdFactor(factor float64) TunerOption {
	return func(t *Tuner) {
		t.Params.ThresholdFactor = factor
	}
}

func WithWorkers(workers int) TunerOption {
	return func(t *Tuner) {
		t.Params.Workers = workers
	}
}

func WithProgressEvery(every int) TunerOption {
	return func(t *Tuner) {
		t.Params.ProgressEvery = every
	}
}

func NewTuner(opts ...TunerOption) *Tuner {
	t := &Tuner{
		Params: DefaultParams(),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.Params.Workers < 1 {
		t.Params.Workers = 1
	}

	logger.Sugar().Infow("Tuner configured", "params", t.Params)
	return t
}

// Evaluate runs the grade, split and scoring stages for a single reference.
func (t *Tuner) Evaluate(x0 Reference, data *mat.Dense, weights, target []float64) (float64, error) {
	grades, err := RelationalGrades(x0, data, weights, t.Params.R)
	if err != nil {
		return 0, err
	}

	labels, _ := TriLevelSplit(grades, t.Params.ThresholdFactor)

	return Accuracy(labels, target)
}
