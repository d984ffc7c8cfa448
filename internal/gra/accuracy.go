package gra

import "fmt"

func BuildTarget(split CategorySplit) []float64 {
	target := make([]float64, 0, split.Total())
	for range split.Category1 {
		target = append(target, LabelCategory1)
	}
	for range split.Category2 {
		target = append(target, LabelCategory2)
	}
	return target
}

// Score gives full credit to exact matches and half credit to every other
// sample; no outcome earns zero.
func Score(labels, targets []float64) (ScoreBreakdown, error) {
	if len(labels) != len(targets) {
		return ScoreBreakdown{}, fmt.Errorf("%w: %d labels, %d targets", ErrLengthMismatch, len(labels), len(targets))
	}
	if len(labels) == 0 {
		return ScoreBreakdown{}, ErrEmptySamples
	}

	var sb ScoreBreakdown
	for i, label := range labels {
		if label == targets[i] {
			sb.Correct++
		} else {
			sb.Partial++
		}
	}

	sb.Accuracy = (float64(sb.Correct) + 0.5*float64(sb.Partial)) / float64(len(labels))
	return sb, nil
}

func Accuracy(labels, targets []float64) (float64, error) {
	sb, err := Score(labels, targets)
	if err != nil {
		return 0, err
	}
	return sb.Accuracy, nil
}
