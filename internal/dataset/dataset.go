// Package dataset loads the sample matrix and the weight vector consumed by
// the tuner.
package dataset

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

const DefaultSheet = "Sheet1"

var (
	ErrNoData          = errors.New("no data rows left after pruning empty rows and columns")
	ErrMissingValue    = errors.New("missing value")
	ErrInvalidValue    = errors.New("invalid numeric value")
	ErrUnsupportedType = errors.New("unsupported data file type")
)

// LoadMatrix reads a sample matrix. The first row is a header and the first
// column holds sample ids; both are discarded. Entirely empty columns and
// then entirely empty rows are dropped.
func LoadMatrix(path, sheet string) (*mat.Dense, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		if sheet == "" {
			sheet = DefaultSheet
		}
		records, err = readWorkbook(path, sheet)
	case ".csv", ".txt":
		records, err = readCSV(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedType, "%s", path)
	}
	if err != nil {
		return nil, err
	}

	m, err := FromRecords(records)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", path)
	}

	rows, cols := m.Dims()
	log.Info().Str("path", path).Int("rows", rows).Int("columns", cols).Msgf("The number of data rows read: %d", rows)
	return m, nil
}

// FromRecords turns raw records, header row and id column included, into a
// dense matrix.
func FromRecords(records [][]string) (*mat.Dense, error) {
	if len(records) <= 1 {
		return nil, ErrNoData
	}

	body := records[1:]
	width := 0
	for _, rec := range body {
		width = max(width, len(rec)-1)
	}

	cells := make([][]string, len(body))
	for i, rec := range body {
		row := make([]string, width)
		if len(rec) > 1 {
			for j, v := range rec[1:] {
				row[j] = strings.TrimSpace(v)
			}
		}
		cells[i] = row
	}

	keepCols := make([]int, 0, width)
	for j := range width {
		for i := range cells {
			if cells[i][j] != "" {
				keepCols = append(keepCols, j)
				break
			}
		}
	}

	data := make([]float64, 0, len(cells)*len(keepCols))
	rows := 0
	for i, row := range cells {
		empty := true
		for _, j := range keepCols {
			if row[j] != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		for _, j := range keepCols {
			if row[j] == "" {
				return nil, errors.Wrapf(ErrMissingValue, "row %d column %d", i+2, j+2)
			}
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidValue, "row %d column %d: %q", i+2, j+2, row[j])
			}
			data = append(data, v)
		}
		rows++
	}

	if rows == 0 || len(keepCols) == 0 {
		return nil, ErrNoData
	}

	return mat.NewDense(rows, len(keepCols), data), nil
}
