package gra

import (
	"gonum.org/v1/gonum/stat"
)

func ComputeThresholds(grades []float64, factor float64) Thresholds {
	mean, std := stat.PopMeanStdDev(grades, nil)

	return Thresholds{
		Mean:   mean,
		StdDev: std,
		Left:   mean - factor*std,
		Right:  mean + factor*std,
	}
}

// TriLevelSplit labels grades below the left threshold 0 and grades above the
// right threshold 2. In-band grades keep their raw value.
func TriLevelSplit(grades []float64, factor float64) ([]float64, Thresholds) {
	th := ComputeThresholds(grades, factor)

	labels := make([]float64, len(grades))
	for i, g := range grades {
		if g < th.Left {
			g = LabelCategory2
		}
		// the low band is relabelled first, so a 0 can still cross a negative right threshold
		if g > th.Right {
			g = LabelCategory1
		}
		labels[i] = g
	}

	return labels, th
}
