package gra

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const searchChunkSize = 256

// Validate checks every precondition of a search so that a run either
// processes all candidates or fails before the first one.
func (t *Tuner) Validate(data *mat.Dense, weights []float64, split CategorySplit, numIndices int) error {
	if numIndices <= 0 || numIndices > MaxNumIndices {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidNumIndices, numIndices, MaxNumIndices)
	}
	if !(t.Params.R > 0 && t.Params.R <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidR, t.Params.R)
	}
	if split.Category1 < 0 || split.Category2 < 0 || split.Total() == 0 {
		return fmt.Errorf("%w: category 1 (%d), category 2 (%d)", ErrInvalidCategories, split.Category1, split.Category2)
	}
	if data == nil || data.IsEmpty() {
		return fmt.Errorf("%w: data sample count (0) != category 1 (%d) + category 2 (%d)",
			ErrSampleCountMismatch, split.Category1, split.Category2)
	}

	rows, cols := data.Dims()
	if rows != split.Total() {
		return fmt.Errorf("%w: data sample count (%d) != category 1 (%d) + category 2 (%d)",
			ErrSampleCountMismatch, rows, split.Category1, split.Category2)
	}
	if cols != numIndices {
		return fmt.Errorf("%w: data has %d columns, num_indices is %d", ErrIndexCountMismatch, cols, numIndices)
	}
	if len(weights) != numIndices {
		return fmt.Errorf("%w: got %d weights for %d indices", ErrWeightLength, len(weights), numIndices)
	}
	if i, j, ok := firstNonFinite(data); ok {
		return fmt.Errorf("%w: data row %d column %d", ErrNonFiniteValue, i, j)
	}
	for j, w := range weights {
		if !isFinite(w) {
			return fmt.Errorf("%w: weight %d", ErrNonFiniteValue, j)
		}
	}
	if hasZeroDifferenceRange(data) {
		return ErrDegenerateData
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func firstNonFinite(data *mat.Dense) (int, int, bool) {
	rows, cols := data.Dims()
	for i := range rows {
		for j := range cols {
			if !isFinite(data.At(i, j)) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// hasZeroDifferenceRange reports whether some binary reference equals every
// row, which happens only when all rows are identical and binary.
func hasZeroDifferenceRange(data *mat.Dense) bool {
	rows, cols := data.Dims()
	first := mat.Row(nil, 0, data)

	for _, v := range first {
		if v != 0 && v != 1 {
			return false
		}
	}

	for i := 1; i < rows; i++ {
		for j := range cols {
			if data.At(i, j) != first[j] {
				return false
			}
		}
	}

	return true
}

// Search scores every candidate reference against data and returns one
// Result per candidate in generation order.
func (t *Tuner) Search(
	ctx context.Context,
	data *mat.Dense,
	weights []float64,
	split CategorySplit,
	numIndices int,
) ([]Result, error) {
	if err := t.Validate(data, weights, split, numIndices); err != nil {
		return nil, err
	}

	refs, err := GenerateReferences(numIndices)
	if err != nil {
		return nil, err
	}

	target := BuildTarget(split)
	results := make([]Result, refs.Len())

	startTime := time.Now()
	log.Info().
		Int("candidates", refs.Len()).
		Int("samples", split.Total()).
		Int("workers", t.Params.Workers).
		Msg("starting reference search")

	if t.Params.Workers > 1 {
		err = t.searchParallel(ctx, refs, data, weights, target, results)
	} else {
		err = t.searchSequential(ctx, refs, data, weights, target, results)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("candidates", len(results)).
		Dur("elapsed", time.Since(startTime)).
		Msg("reference search finished")

	return results, nil
}

func (t *Tuner) searchSequential(
	ctx context.Context,
	refs ReferenceSet,
	data *mat.Dense,
	weights, target []float64,
	results []Result,
) error {
	for k, ref := range refs.All() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("search stopped at candidate %d: %w", k, err)
		}
		if err := t.evaluateInto(k, ref, data, weights, target, results); err != nil {
			return err
		}
		t.logProgress(k+1, len(results))
	}
	return nil
}

func (t *Tuner) searchParallel(
	ctx context.Context,
	refs ReferenceSet,
	data *mat.Dense,
	weights, target []float64,
	results []Result,
) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(t.Params.Workers)

	var done atomic.Int64
	total := refs.Len()

	for start := 0; start < total; start += searchChunkSize {
		end := min(start+searchChunkSize, total)

		eg.Go(func() error {
			for k := start; k < end; k++ {
				if err := egCtx.Err(); err != nil {
					return fmt.Errorf("search stopped at candidate %d: %w", k, err)
				}
				if err := t.evaluateInto(k, refs.At(k), data, weights, target, results); err != nil {
					return err
				}
				t.logProgress(int(done.Add(1)), total)
			}
			return nil
		})
	}

	return eg.Wait()
}

// evaluateInto writes candidate k into its own slot; workers never share one.
func (t *Tuner) evaluateInto(k int, ref Reference, data *mat.Dense, weights, target []float64, results []Result) error {
	acc, err := t.Evaluate(ref, data, weights, target)
	if err != nil {
		return fmt.Errorf("candidate %d %s: %w", k, ref, err)
	}

	results[k] = Result{Index: k, Reference: ref, Accuracy: acc}
	log.Trace().Int("candidate", k).Str("reference", ref.String()).Float64("accuracy", acc).Msg("candidate scored")
	return nil
}

func (t *Tuner) logProgress(done, total int) {
	if t.Params.ProgressEvery <= 0 || done%t.Params.ProgressEvery != 0 {
		return
	}
	log.Debug().Int("done", done).Int("total", total).Msg("search progress")
}

// Best returns the k highest-accuracy results, ties broken by generation order.
func Best(results []Result, k int) []Result {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b Result) int {
		if c := cmp.Compare(b.Accuracy, a.Accuracy); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	if k < 0 || k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}
