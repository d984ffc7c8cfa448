// Package resultlog writes the per-candidate accuracy log of a search.
package resultlog

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tensorplex-labs/gratune/internal/gra"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown result log format %q", s)
}

type Metadata struct {
	NumIndices      int
	R               float64
	ThresholdFactor float64
	Category1       int
	Category2       int
}

type jsonResult struct {
	Index     int     `json:"index"`
	Reference []int   `json:"reference"`
	Accuracy  float64 `json:"accuracy"`
}

type jsonDocument struct {
	NumIndices      int          `json:"num_indices"`
	R               float64      `json:"r"`
	ThresholdFactor float64      `json:"threshold_factor"`
	Category1       int          `json:"category_1"`
	Category2       int          `json:"category_2"`
	Results         []jsonResult `json:"results"`
}

func Write(w io.Writer, results []gra.Result, format Format, meta Metadata) error {
	switch format {
	case FormatText:
		return WriteText(w, results)
	case FormatJSON:
		return WriteJSON(w, results, meta)
	}
	return fmt.Errorf("unknown result log format %q", format)
}

// WriteText emits one "<reference>:<accuracy>" line per result.
func WriteText(w io.Writer, results []gra.Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		if _, err := bw.WriteString(FormatLine(res)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func FormatLine(res gra.Result) string {
	return res.Reference.String() + ":" + FormatAccuracy(res.Accuracy) + "\n"
}

// FormatAccuracy prints the shortest decimal that round-trips, keeping a
// ".0" suffix on integral values so 1 prints as "1.0".
func FormatAccuracy(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if v != 0 && math.Abs(v) < 1e-4 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func WriteJSON(w io.Writer, results []gra.Result, meta Metadata) error {
	doc := jsonDocument{
		NumIndices:      meta.NumIndices,
		R:               meta.R,
		ThresholdFactor: meta.ThresholdFactor,
		Category1:       meta.Category1,
		Category2:       meta.Category2,
		Results:         make([]jsonResult, len(results)),
	}

	for i, res := range results {
		ref := make([]int, len(res.Reference))
		for j, v := range res.Reference {
			ref[j] = int(v)
		}
		doc.Results[i] = jsonResult{Index: res.Index, Reference: ref, Accuracy: res.Accuracy}
	}

	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal result log: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
