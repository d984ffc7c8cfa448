// Package logger provides a global logger for the application
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

type Options struct {
	Environment string // dev, test or prod
	Debug       bool
	Trace       bool
}

// ResolveLevel picks the log level from the environment, letting the
// debug and trace flags override it.
func ResolveLevel(opts Options) zerolog.Level {
	var logLevel zerolog.Level
	switch strings.ToLower(opts.Environment) {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	if opts.Debug {
		logLevel = zerolog.DebugLevel
	} else if opts.Trace {
		logLevel = zerolog.TraceLevel
	}

	return logLevel
}

func initLogger(opts Options) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	environment := strings.ToLower(opts.Environment)
	if environment == "" {
		environment = "prod"
	}

	logLevel := ResolveLevel(Options{Environment: environment, Debug: opts.Debug, Trace: opts.Trace})

	switch environment {
	case "dev", "test":
		log.Info().Str("environment", environment).Msg("Development/Test environment detected - enabling all log levels")
	case "prod":
		log.Info().Str("environment", environment).Msg("Production environment detected - enabling info level and above")
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
	}

	// Apply the log level globally
	zerolog.SetGlobalLevel(logLevel)

	zapCfg := zap.NewProductionConfig()
	if environment != "prod" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel(logLevel))
	if l, err := zapCfg.Build(); err != nil {
		log.Warn().Err(err).Msg("failed to build zap logger, falling back to no-op")
		Logger = zap.NewNop()
	} else {
		Logger = l
	}

	switch logLevel {
	case zerolog.DebugLevel:
		log.Debug().Str("environment", environment).Msg("Debug logging enabled")
	case zerolog.TraceLevel:
		log.Trace().Str("environment", environment).Msg("Trace logging enabled")
	case zerolog.InfoLevel:
		log.Info().Str("environment", environment).Msg("Info logging enabled")
	}
}

func zapLevel(level zerolog.Level) zapcore.Level {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return zapcore.DebugLevel
	case zerolog.WarnLevel:
		return zapcore.WarnLevel
	case zerolog.ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init initializes the logger from the environment and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init(logger.Options{Environment: cfg.Environment, Debug: *debug})
//
// Then, `go run ./cmd/gra --debug ...`
func Init(opts Options) {
	initLogger(opts)
}

// Sugar returns a sugared logger for easier use. Before Init it is a no-op.
func Sugar() *zap.SugaredLogger {
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Sugar()
}

// Sync flushes buffered zap entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
