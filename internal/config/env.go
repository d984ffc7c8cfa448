// Package config defines environment configuration structs and loaders.
package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	TunerEnvConfig
	OutputEnvConfig
	LoggerEnvConfig
}

// LoadConfig reads .env files when present and parses the environment.
func LoadConfig(envFiles ...string) (*AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TunerEnvConfig holds defaults for the reference search.
type TunerEnvConfig struct {
	NumIndices       int     `env:"GRA_NUM_INDICES" envDefault:"13"`
	R                float64 `env:"GRA_R" envDefault:"0.5"`
	ThresholdFactor  float64 `env:"GRA_THRESHOLD_FACTOR" envDefault:"0.5246"`
	Workers          int     `env:"GRA_WORKERS" envDefault:"1"`
	ProgressEvery    int     `env:"GRA_PROGRESS_EVERY" envDefault:"1024"`
	NormalizeWeights bool    `env:"GRA_NORMALIZE_WEIGHTS" envDefault:"false"`
}

// OutputEnvConfig configures input parsing and the result log.
type OutputEnvConfig struct {
	Sheet  string `env:"GRA_SHEET" envDefault:"Sheet1"`
	Format string `env:"GRA_FORMAT" envDefault:"text"`
	Top    int    `env:"GRA_TOP" envDefault:"0"`
}

// LoggerEnvConfig selects the log level profile.
type LoggerEnvConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
}
