package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/gratune/internal/config"
	"github.com/tensorplex-labs/gratune/internal/dataset"
	"github.com/tensorplex-labs/gratune/internal/gra"
	"github.com/tensorplex-labs/gratune/internal/resultlog"
	"github.com/tensorplex-labs/gratune/internal/utils/logger"
)

type options struct {
	DataPath   string
	SavePath   string
	WeightPath string

	NumIndices      int
	R               float64
	ThresholdFactor float64
	Category1       int
	Category2       int
	Workers         int
	ProgressEvery   int
	Sheet           string
	Format          resultlog.Format
	Top             int
	NormalizeWeight bool

	Debug bool
	Trace bool
}

var errUsage = errors.New("usage error")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseArgs(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logger.Init(logger.Options{Environment: cfg.Environment, Debug: opts.Debug, Trace: opts.Trace})
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Error().Stack().Err(err).Msg("grey relational tuning failed")
		stop()
		logger.Sync()
		os.Exit(1)
	}
}

// parseArgs accepts flags before, between and after the three positional paths.
func parseArgs(args []string, cfg *config.AppConfig, output io.Writer) (*options, error) {
	opts := &options{}
	var format string

	fs := flag.NewFlagSet("gra", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Gray Relational Analysis Automation")
		fmt.Fprintln(fs.Output(), "\nusage: gra [flags] data_path save_path weight_path")
		fs.PrintDefaults()
	}

	fs.IntVar(&opts.NumIndices, "num_indices", cfg.NumIndices, "number of indices per reference")
	fs.Float64Var(&opts.R, "r", cfg.R, "smoothing constant r of the relational coefficient")
	fs.Float64Var(&opts.ThresholdFactor, "threshold_factor", cfg.ThresholdFactor, "std multiple of the tri-level band")
	fs.IntVar(&opts.Category1, "Category_1", -1, "number of Category_1 samples (required)")
	fs.IntVar(&opts.Category2, "Category_2", -1, "number of Category_2 samples (required)")
	fs.IntVar(&opts.Workers, "workers", cfg.Workers, "number of concurrent candidate workers")
	fs.IntVar(&opts.ProgressEvery, "progress_every", cfg.ProgressEvery, "candidates between progress logs (0 disables)")
	fs.StringVar(&opts.Sheet, "sheet", cfg.Sheet, "worksheet name for xlsx input")
	fs.StringVar(&format, "format", cfg.Format, "result log format: text or json")
	fs.IntVar(&opts.Top, "top", cfg.Top, "print the best N references (0 disables)")
	fs.BoolVar(&opts.NormalizeWeight, "normalize_weights", cfg.NormalizeWeights, "rescale weights to sum to 1")
	fs.BoolVar(&opts.Debug, "debug", false, "sets log level to debug")
	fs.BoolVar(&opts.Trace, "trace", false, "sets log level to trace")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	if len(positional) != 3 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected data_path save_path weight_path, got %d positional arguments", errUsage, len(positional))
	}
	opts.DataPath, opts.SavePath, opts.WeightPath = positional[0], positional[1], positional[2]

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, name := range []string{"Category_1", "Category_2"} {
		if !set[name] {
			return nil, fmt.Errorf("%w: --%s is required", errUsage, name)
		}
	}

	f, err := resultlog.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	opts.Format = f

	return opts, nil
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	weights, err := dataset.LoadWeights(opts.WeightPath)
	if err != nil {
		return err
	}

	if opts.NormalizeWeight {
		weights, err = gra.NormalizeWeights(weights)
		if err != nil {
			return err
		}
	}

	data, err := dataset.LoadMatrix(opts.DataPath, opts.Sheet)
	if err != nil {
		return err
	}

	split := gra.CategorySplit{Category1: opts.Category1, Category2: opts.Category2}

	tuner := gra.NewTuner(
		gra.WithR(opts.R),
		gra.WithThresholdFactor(opts.ThresholdFactor),
		gra.WithWorkers(opts.Workers),
		gra.WithProgressEvery(opts.ProgressEvery),
	)

	results, err := tuner.Search(ctx, data, weights, split, opts.NumIndices)
	if err != nil {
		return err
	}

	meta := resultlog.Metadata{
		NumIndices:      opts.NumIndices,
		R:               opts.R,
		ThresholdFactor: opts.ThresholdFactor,
		Category1:       opts.Category1,
		Category2:       opts.Category2,
	}
	if err := resultlog.WriteFile(opts.SavePath, results, opts.Format, meta); err != nil {
		return err
	}

	if best := gra.Best(results, 1); len(best) > 0 {
		log.Info().
			Int("index", best[0].Index).
			Str("reference", best[0].Reference.String()).
			Float64("accuracy", best[0].Accuracy).
			Msg("best reference")
	}

	if opts.Top > 0 {
		gra.PlotTopResultsTerminal(stdout, gra.Best(results, opts.Top), "Best references")
	}

	return nil
}
