package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

func TestFromRecords_DropsHeaderIDAndEmpty(t *testing.T) {
	records := [][]string{
		{"id", "a", "b", "blank", "c"},
		{"s1", "0.1", "0.2", "", "0.3"},
		{"s2", "", "", "", ""},
		{"s3", "1", "0", "", "0.5"},
		{"s4"},
	}

	m, err := FromRecords(records)
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{
		0.1, 0.2, 0.3,
		1, 0, 0.5,
	})
	assert.True(t, mat.Equal(want, m), "got %v", mat.Formatted(m))
}

func TestFromRecords_Errors(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		_, err := FromRecords([][]string{{"id", "a"}})
		assert.True(t, errors.Is(err, ErrNoData))
	})

	t.Run("all empty", func(t *testing.T) {
		_, err := FromRecords([][]string{{"id", "a"}, {"s1", ""}})
		assert.True(t, errors.Is(err, ErrNoData))
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := FromRecords([][]string{{"id", "a", "b"}, {"s1", "1", ""}, {"s2", "1", "2"}})
		assert.True(t, errors.Is(err, ErrMissingValue))
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := FromRecords([][]string{{"id", "a"}, {"s1", "high"}})
		assert.True(t, errors.Is(err, ErrInvalidValue))
	})

	for _, cell := range []string{"inf", "-Inf", "+Infinity", "NaN", "nan"} {
		t.Run("non-finite "+cell, func(t *testing.T) {
			m, err := FromRecords([][]string{{"id", "a", "b"}, {"s1", "0.2", cell}, {"s2", "0.1", "0.4"}})
			assert.True(t, errors.Is(err, ErrInvalidValue), "got %v", err)
			assert.Nil(t, m)
		})
	}
}

func TestLoadMatrix_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "id,x1,x2\ns1,0,1\ns2,0.5,0.25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	m, err := LoadMatrix(path, "")
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.InDelta(t, 0.25, m.At(1, 1), 1e-12)
}

func TestLoadMatrix_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(DefaultSheet, "A1", &[]any{"id", "x1", "x2", "x3"}))
	require.NoError(t, f.SetSheetRow(DefaultSheet, "A2", &[]any{"s1", 0.125, 1, nil}))
	require.NoError(t, f.SetSheetRow(DefaultSheet, "A3", &[]any{"s2", 0, 0.75, nil}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	m, err := LoadMatrix(path, "")
	require.NoError(t, err)

	want := mat.NewDense(2, 2, []float64{0.125, 1, 0, 0.75})
	assert.True(t, mat.Equal(want, m), "got %v", mat.Formatted(m))
}

func TestLoadMatrix_XLSXMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadMatrix(path, "Results")
	require.Error(t, err)
}

func TestLoadMatrix_UnsupportedType(t *testing.T) {
	_, err := LoadMatrix("data.parquet", "")
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestParseWeights(t *testing.T) {
	weights, err := ParseWeights(strings.NewReader("0.1 0.2\n0.3 # trailing comment\n\n# only comment\n0.4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, weights)

	_, err = ParseWeights(strings.NewReader("0.1 abc\n"))
	assert.True(t, errors.Is(err, ErrInvalidValue))

	_, err = ParseWeights(strings.NewReader("\n# nothing\n"))
	assert.True(t, errors.Is(err, ErrNoWeights))

	for _, field := range []string{"NaN", "inf", "-Inf"} {
		weights, err := ParseWeights(strings.NewReader("0.5 " + field + "\n"))
		assert.True(t, errors.Is(err, ErrInvalidValue), "%s: got %v", field, err)
		assert.Nil(t, weights)
	}
}

func TestLoadWeights_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.5\n0.5\n"), 0o600))

	weights, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, weights)

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
