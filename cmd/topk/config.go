package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "TOPK"

const (
	modeScore = "score"
	modeFreq  = "freq"

	orderAsc  = "asc"
	orderDesc = "desc"
)

// Config validation errors
var (
	ErrInvalidMode      = errors.New("mode must be 'score' or 'freq'")
	ErrInvalidLimit     = errors.New("limit must not be negative")
	ErrInvalidOrder     = errors.New("order must be 'asc' or 'desc'")
	ErrInvalidWidth     = errors.New("width must be positive")
	ErrInvalidDepth     = errors.New("depth must be positive")
	ErrInvalidDecay     = errors.New("decay must be in (0, 1)")
	ErrInvalidLogFormat = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel  = errors.New("log_level must be debug, info, warn, or error")
)

// Config holds the ranking settings, read from TOPK_* environment variables and overridden by flags.
type Config struct {
	Mode  string `envconfig:"MODE" default:"score"`
	Limit int    `envconfig:"LIMIT" default:"10"`
	Order string `envconfig:"ORDER" default:"desc"`

	// HeavyKeeper sketch, freq mode only
	Width    uint32  `envconfig:"WIDTH" default:"4096"`
	Depth    uint32  `envconfig:"DEPTH" default:"5"`
	Decay    float64 `envconfig:"DECAY" default:"0.925"`
	MinCount uint32  `envconfig:"MIN_COUNT" default:"0"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// LoadConfig reads envFile when it exists, then the environment, then the command line args.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}

	fset := flag.NewFlagSet("topk", flag.ContinueOnError)
	fset.StringVar(&cfg.Mode, "mode", cfg.Mode, "ranking mode: score or freq")
	fset.IntVar(&cfg.Limit, "n", cfg.Limit, "number of items to keep")
	fset.StringVar(&cfg.Order, "order", cfg.Order, "score order: desc keeps the highest scores, asc the lowest")
	fset.Float64Var(&cfg.Decay, "decay", cfg.Decay, "HeavyKeeper decay base")
	fset.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fset.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: json or console")
	fset.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this file on exit")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, ValidateConfig(&cfg)
}

// ValidateConfig validates the configuration and returns an error if invalid
func ValidateConfig(cfg *Config) error {
	if cfg.Mode != modeScore && cfg.Mode != modeFreq {
		return ErrInvalidMode
	}
	if cfg.Limit < 0 {
		return ErrInvalidLimit
	}
	if cfg.Order != orderAsc && cfg.Order != orderDesc {
		return ErrInvalidOrder
	}
	if cfg.Mode == modeFreq {
		if cfg.Width == 0 {
			return ErrInvalidWidth
		}
		if cfg.Depth == 0 {
			return ErrInvalidDepth
		}
		if cfg.Decay <= 0 || cfg.Decay >= 1 {
			return ErrInvalidDecay
		}
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" && cfg.LogLevel != "error" {
		return ErrInvalidLogLevel
	}
	return nil
}
