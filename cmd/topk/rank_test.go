package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker(cfg Config) *ranker {
	return &ranker{cfg: cfg, logger: zerolog.Nop(), metrics: newMetrics(cfg.Mode)}
}

func TestParseScored(t *testing.T) {
	tests := []struct {
		line string
		want scored
		ok   bool
	}{
		{"0.5\tsrc/heap.go", scored{key: "src/heap.go", score: 0.5}, true},
		{"3 a key with spaces", scored{key: "a key with spaces", score: 3}, true},
		{"  -1e3\tneg ", scored{key: "neg", score: -1000}, true},
		{"nokey", scored{}, false},
		{"abc\tkey", scored{}, false},
		{"1\t ", scored{}, false},
		{"", scored{}, false},
		{"NaN\tn", scored{}, false},
		{"nan n", scored{}, false},
		{"+Inf\tinf", scored{key: "inf", score: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		got, ok := parseScored(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestRanker_Scores(t *testing.T) {
	input := strings.Join([]string{
		"7\tseven",
		"3\tthree",
		"bogus line",
		"9\tnine",
		"1\tone",
		"5\tfive",
		"9\tanother-nine",
	}, "\n")

	cfg := defaultConfig()
	cfg.Limit = 3
	r := newTestRanker(cfg)

	var out bytes.Buffer
	require.NoError(t, r.run(strings.NewReader(input), &out))
	assert.Equal(t, "another-nine\t9\nnine\t9\nseven\t7\n", out.String())

	assert.Equal(t, 7.0, testutil.ToFloat64(r.metrics.lines))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.skipped))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.metrics.kept))
}

func TestRanker_ScoresSkipNaN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limit = 2
	r := newTestRanker(cfg)

	var out bytes.Buffer
	require.NoError(t, r.run(strings.NewReader("1 a\nNaN n\n9 z\n8 y\n7 x\n"), &out))
	assert.Equal(t, "z\t9\ny\t8\n", out.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.skipped))
}

func TestRanker_ScoresAscending(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limit = 2
	cfg.Order = orderAsc
	r := newTestRanker(cfg)

	var out bytes.Buffer
	require.NoError(t, r.run(strings.NewReader("0.3 c\n0.1 a\n0.2 b\n"), &out))
	assert.Equal(t, "a\t0.1\nb\t0.2\n", out.String())
}

func TestRanker_Frequencies(t *testing.T) {
	var input strings.Builder
	for i := 0; i < 5; i++ {
		for j := 0; j <= i*10; j++ {
			fmt.Fprintf(&input, "key-%d\n", i)
		}
	}
	input.WriteString("\n")

	cfg := defaultConfig()
	cfg.Mode = modeFreq
	cfg.Limit = 2
	r := newTestRanker(cfg)

	var out bytes.Buffer
	require.NoError(t, r.run(strings.NewReader(input.String()), &out))
	assert.Equal(t, "key-4\t41\nkey-3\t31\n", out.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.skipped))
}

func TestRanker_ZeroLimit(t *testing.T) {
	cfg := defaultConfig()
	cfg.Limit = 0
	r := newTestRanker(cfg)

	var out bytes.Buffer
	require.NoError(t, r.run(strings.NewReader("1 a\n2 b\n"), &out))
	assert.Empty(t, out.String())
}

func TestRanker_LineTooLong(t *testing.T) {
	r := newTestRanker(defaultConfig())
	line := "1\t" + strings.Repeat("x", maxLineLen+1)

	err := r.run(strings.NewReader(line), &bytes.Buffer{})
	assert.ErrorContains(t, err, "read input at line 1")
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := newMetrics(modeScore)
	m.lines.Add(3)
	m.kept.Set(2)

	path := filepath.Join(t.TempDir(), "topk.prom")
	require.NoError(t, m.writeTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `topk_lines_total{mode="score"} 3`)
	assert.Contains(t, string(data), `topk_items_kept{mode="score"} 2`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := defaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := newLogger(cfg, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"component":"topk"`)
}
