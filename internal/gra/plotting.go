package gra

import (
	"fmt"
	"io"
	"strings"
)

// PlotTopResultsTerminal draws results as horizontal bars, best first.
// Callers usually pass the output of Best.
func PlotTopResultsTerminal(w io.Writer, results []Result, title string) {
	if len(results) == 0 {
		fmt.Fprintf(w, "\n%s: no results\n", title)
		return
	}

	// Find min and max for scaling
	minAcc, maxAcc := results[0].Accuracy, results[0].Accuracy
	for _, res := range results[1:] {
		minAcc = min(minAcc, res.Accuracy)
		maxAcc = max(maxAcc, res.Accuracy)
	}

	refWidth := len("Reference")
	for _, res := range results {
		refWidth = max(refWidth, len(res.Reference.String()))
	}

	fmt.Fprintf(w, "\n%s (Terminal Plot - Best First):\n", title)
	fmt.Fprintf(w, "%8s | %-*s | Accuracy | Bar Chart\n", "Index", refWidth, "Reference")
	fmt.Fprintln(w, strings.Repeat("-", 9)+"|"+strings.Repeat("-", refWidth+2)+"|----------|"+strings.Repeat("-", 50))

	maxBarWidth := 50
	for _, res := range results {
		var barWidth int
		if maxAcc != minAcc {
			barWidth = int((res.Accuracy - minAcc) / (maxAcc - minAcc) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%8d | %-*s | %.6f | %s\n", res.Index, refWidth, res.Reference.String(), res.Accuracy, bar)
	}

	fmt.Fprintf(w, "\nScale: Min=%.6f, Max=%.6f\n", minAcc, maxAcc)
	fmt.Fprintf(w, "Bar width represents relative accuracy (0 to %d chars)\n", maxBarWidth)
}
