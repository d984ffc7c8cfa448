package gra

import "strings"

type Reference []uint8 // 1D: binary ideal reference x0, one entry per index

type CategorySplit struct {
	Category1 int // samples labelled 2, placed first in the matrix
	Category2 int // samples labelled 0, placed after Category1
}

func (s CategorySplit) Total() int {
	return s.Category1 + s.Category2
}

type Thresholds struct {
	Mean   float64
	StdDev float64
	Left   float64
	Right  float64
}

type Result struct {
	Index     int       // position in generation order
	Reference Reference // candidate x0
	Accuracy  float64
}

type ScoreBreakdown struct {
	Correct  int
	Partial  int
	Accuracy float64
}

func (r Reference) Floats() []float64 {
	out := make([]float64, len(r))
	for i, v := range r {
		out[i] = float64(v)
	}
	return out
}

// String renders the reference the way the result log expects, e.g. "[0 1 1]".
func (r Reference) String() string {
	var sb strings.Builder
	sb.Grow(2*len(r) + 1)
	sb.WriteByte('[')
	for i, v := range r {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + v)
	}
	sb.WriteByte(']')
	return sb.String()
}
