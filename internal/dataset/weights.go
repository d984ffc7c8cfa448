package dataset

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNoWeights = errors.New("weight file holds no values")

// LoadWeights reads whitespace or newline separated weights. Text after '#'
// on a line is ignored.
func LoadWeights(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open weights %s", path)
	}
	defer f.Close()

	weights, err := ParseWeights(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "load weights %s", path)
	}

	log.Debug().Str("path", path).Int("count", len(weights)).Floats64("weights", weights).Msg("loaded weights")
	return weights, nil
}

func ParseWeights(r io.Reader) ([]float64, error) {
	var weights []float64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if idx := strings.IndexByte(text, '#'); idx >= 0 {
			text = text[:idx]
		}
		for _, field := range strings.Fields(text) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidValue, "line %d: %q", line, field)
			}
			weights = append(weights, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan weights")
	}

	if len(weights) == 0 {
		return nil, ErrNoWeights
	}
	return weights, nil
}
