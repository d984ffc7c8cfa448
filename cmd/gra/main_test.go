package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/gratune/internal/config"
	"github.com/tensorplex-labs/gratune/internal/dataset"
	"github.com/tensorplex-labs/gratune/internal/gra"
	"github.com/tensorplex-labs/gratune/internal/resultlog"
)

func defaultConfig() *config.AppConfig {
	return &config.AppConfig{
		TunerEnvConfig: config.TunerEnvConfig{
			NumIndices:      gra.DefaultNumIndices,
			R:               gra.DefaultR,
			ThresholdFactor: gra.DefaultThresholdFactor,
			Workers:         1,
			ProgressEvery:   gra.DefaultProgressEvery,
		},
		OutputEnvConfig: config.OutputEnvConfig{Sheet: "Sheet1", Format: "text"},
	}
}

func TestParseArgs_Interleaved(t *testing.T) {
	args := []string{"data.xlsx", "--Category_1", "78", "out.txt", "weights.txt", "--Category_2=78", "--r", "0.3"}

	opts, err := parseArgs(args, defaultConfig(), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "data.xlsx", opts.DataPath)
	assert.Equal(t, "out.txt", opts.SavePath)
	assert.Equal(t, "weights.txt", opts.WeightPath)
	assert.Equal(t, 78, opts.Category1)
	assert.Equal(t, 78, opts.Category2)
	assert.InDelta(t, 0.3, opts.R, 1e-12)
	assert.Equal(t, 13, opts.NumIndices)
	assert.Equal(t, resultlog.FormatText, opts.Format)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing category 2", []string{"--Category_1", "1", "a", "b", "c"}},
		{"missing positional", []string{"--Category_1", "1", "--Category_2", "1", "a", "b"}},
		{"extra positional", []string{"--Category_1", "1", "--Category_2", "1", "a", "b", "c", "d"}},
		{"bad format", []string{"--Category_1", "1", "--Category_2", "1", "--format", "xml", "a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, defaultConfig(), io.Discard)
			assert.True(t, errors.Is(err, errUsage), "got %v", err)
		})
	}

	_, err := parseArgs([]string{"--num_indices", "x"}, defaultConfig(), io.Discard)
	assert.Error(t, err)
}

func writeInputs(t *testing.T, dir, csv, weights string) (string, string) {
	t.Helper()
	dataPath := filepath.Join(dir, "data.csv")
	weightPath := filepath.Join(dir, "weights.txt")
	require.NoError(t, os.WriteFile(dataPath, []byte(csv), 0o600))
	require.NoError(t, os.WriteFile(weightPath, []byte(weights), 0o600))
	return dataPath, weightPath
}

func TestRun_SingleIndex(t *testing.T) {
	dir := t.TempDir()
	dataPath, weightPath := writeInputs(t, dir, "id,x1\ns1,0\ns2,1\n", "1\n")

	opts := &options{
		DataPath:        dataPath,
		SavePath:        filepath.Join(dir, "result.txt"),
		WeightPath:      weightPath,
		NumIndices:      1,
		R:               0.5,
		ThresholdFactor: gra.DefaultThresholdFactor,
		Category1:       1,
		Category2:       1,
		Workers:         1,
		Format:          resultlog.FormatText,
		Top:             2,
	}

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &stdout))

	got, err := os.ReadFile(opts.SavePath)
	require.NoError(t, err)
	assert.Equal(t, "[0]:1.0\n[1]:0.5\n", string(got))
	assert.Contains(t, stdout.String(), "Best references")
}

func TestRun_ByteIdenticalAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	csv := "id,a,b,c\n" +
		"s1,0.9,0.2,0.7\n" +
		"s2,0.8,0.1,0.6\n" +
		"s3,0.7,0.3,0.9\n" +
		"s4,0.2,0.8,0.1\n" +
		"s5,0.1,0.9,0.3\n"
	dataPath, weightPath := writeInputs(t, dir, csv, "0.5 0.3 0.2\n")

	outputs := make([][]byte, 0, 3)
	for i, workers := range []int{1, 1, 4} {
		opts := &options{
			DataPath:        dataPath,
			SavePath:        filepath.Join(dir, "result"+string(rune('a'+i))+".txt"),
			WeightPath:      weightPath,
			NumIndices:      3,
			R:               0.5,
			ThresholdFactor: gra.DefaultThresholdFactor,
			Category1:       3,
			Category2:       2,
			Workers:         workers,
			Format:          resultlog.FormatText,
		}
		require.NoError(t, run(context.Background(), opts, io.Discard))

		out, err := os.ReadFile(opts.SavePath)
		require.NoError(t, err)
		outputs = append(outputs, out)
	}

	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
	assert.Equal(t, 8, bytes.Count(outputs[0], []byte("\n")))
}

func TestRun_CountMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	dataPath, weightPath := writeInputs(t, dir, "id,x1\ns1,0\ns2,1\ns3,0.5\n", "1\n")
	savePath := filepath.Join(dir, "result.txt")

	opts := &options{
		DataPath:   dataPath,
		SavePath:   savePath,
		WeightPath: weightPath,
		NumIndices: 1,
		R:          0.5,
		Category1:  1,
		Category2:  1,
		Workers:    1,
		Format:     resultlog.FormatText,
	}

	err := run(context.Background(), opts, io.Discard)
	assert.True(t, errors.Is(err, gra.ErrSampleCountMismatch), "got %v", err)

	_, statErr := os.Stat(savePath)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRun_TwoIndexKnownLog(t *testing.T) {
	dir := t.TempDir()
	dataPath, weightPath := writeInputs(t, dir, "id,x1,x2\ns1,0,1\ns2,1,0\n", "1 1\n")

	opts := &options{
		DataPath:        dataPath,
		SavePath:        filepath.Join(dir, "result.txt"),
		WeightPath:      weightPath,
		NumIndices:      2,
		R:               0.5,
		ThresholdFactor: gra.DefaultThresholdFactor,
		Category1:       1,
		Category2:       1,
		Workers:         1,
		NormalizeWeight: true,
		Format:          resultlog.FormatText,
	}
	require.NoError(t, run(context.Background(), opts, io.Discard))

	got, err := os.ReadFile(opts.SavePath)
	require.NoError(t, err)
	assert.Equal(t, "[0 0]:0.5\n[0 1]:1.0\n[1 0]:0.5\n[1 1]:0.5\n", string(got))
}

func TestRun_RejectsBadInputsWritesNothing(t *testing.T) {
	tests := []struct {
		name      string
		csv       string
		weights   string
		normalize bool
		want      error
	}{
		{"infinite cell", "id,x1,x2\ns1,0.2,inf\ns2,0.1,0.4\n", "0.5 0.5\n", false, dataset.ErrInvalidValue},
		{"NaN cell", "id,x1,x2\ns1,0.2,NaN\ns2,0.1,0.4\n", "0.5 0.5\n", false, dataset.ErrInvalidValue},
		{"NaN weight", "id,x1,x2\ns1,0.2,0.3\ns2,0.1,0.4\n", "0.5 NaN\n", false, dataset.ErrInvalidValue},
		{"negative weight normalized", "id,x1,x2\ns1,0.2,0.3\ns2,0.1,0.4\n", "-1 1\n", true, gra.ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			dataPath, weightPath := writeInputs(t, dir, tt.csv, tt.weights)
			savePath := filepath.Join(dir, "result.txt")

			opts := &options{
				DataPath:        dataPath,
				SavePath:        savePath,
				WeightPath:      weightPath,
				NumIndices:      2,
				R:               0.5,
				ThresholdFactor: gra.DefaultThresholdFactor,
				Category1:       1,
				Category2:       1,
				Workers:         1,
				NormalizeWeight: tt.normalize,
				Format:          resultlog.FormatText,
			}

			err := run(context.Background(), opts, io.Discard)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			_, statErr := os.Stat(savePath)
			assert.True(t, errors.Is(statErr, os.ErrNotExist))
		})
	}
}
