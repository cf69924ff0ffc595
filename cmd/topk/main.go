package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	exitOK = iota
	exitFailure
	exitInvalidConfig
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run ranks stdin into stdout and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := LoadConfig(".env", args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		bootLogger := zerolog.New(stderr)
		bootLogger.Error().Err(err).Msg("invalid configuration")
		return exitInvalidConfig
	}

	logger := newLogger(cfg, stderr)
	m := newMetrics(cfg.Mode)
	r := &ranker{cfg: cfg, logger: logger, metrics: m}

	logger.Info().Str("mode", cfg.Mode).Int("limit", cfg.Limit).Msg("ranking stdin")
	runErr := r.run(stdin, stdout)

	if cfg.MetricsFile != "" {
		if err := m.writeTextfile(cfg.MetricsFile); err != nil {
			logger.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("ranking failed")
		return exitFailure
	}
	return exitOK
}
