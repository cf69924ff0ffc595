package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Khighness/topkit/heap"
	"github.com/Khighness/topkit/topk"
)

const maxLineLen = 1 << 20

type scored struct {
	key   string
	score float64
}

// ranker turns an input stream into a ranking written to out.
type ranker struct {
	cfg     Config
	logger  zerolog.Logger
	metrics *metrics
}

func (r *ranker) run(in io.Reader, out io.Writer) error {
	switch r.cfg.Mode {
	case modeFreq:
		return r.rankFrequencies(in, out)
	default:
		return r.rankScores(in, out)
	}
}

func (r *ranker) rankScores(in io.Reader, out io.Writer) error {
	order := heap.Descending[float64]
	if r.cfg.Order == orderAsc {
		order = heap.Ascending[float64]
	}
	selector, err := topk.NewSelector[scored](r.cfg.Limit, func(a, b scored) int {
		if c := order(a.score, b.score); c != 0 {
			return c
		}
		return heap.Ascending(a.key, b.key)
	})
	if err != nil {
		return err
	}

	err = r.scan(in, func(lineNo int, line string) {
		item, ok := parseScored(line)
		if !ok {
			r.metrics.skipped.Inc()
			r.logger.Debug().Int("line", lineNo).Str("text", line).Msg("skipping malformed line")
			return
		}
		selector.Offer(item)
	})
	if err != nil {
		return err
	}

	results := selector.Drain()
	r.metrics.kept.Set(float64(len(results)))
	w := bufio.NewWriter(out)
	for _, item := range results {
		fmt.Fprintf(w, "%s\t%s\n", item.key, strconv.FormatFloat(item.score, 'g', -1, 64))
	}
	return w.Flush()
}

func (r *ranker) rankFrequencies(in io.Reader, out io.Writer) error {
	limit := uint32(r.cfg.Limit)
	keeper := topk.NewHeavyKeeper(limit, r.cfg.Width, r.cfg.Depth, r.cfg.Decay, r.cfg.MinCount)

	err := r.scan(in, func(_ int, line string) {
		key := strings.TrimSpace(line)
		if key == "" {
			r.metrics.skipped.Inc()
			return
		}
		keeper.Add(key, 1)
	})
	if err != nil {
		return err
	}

	items := keeper.List()
	r.metrics.kept.Set(float64(len(items)))
	r.logger.Debug().Uint64("total", keeper.Total()).Int("kept", len(items)).Msg("frequencies ranked")

	w := bufio.NewWriter(out)
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%d\n", item.Key, item.Count)
	}
	return w.Flush()
}

func (r *ranker) scan(in io.Reader, fn func(lineNo int, line string)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		r.metrics.lines.Inc()
		fn(lineNo, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input at line %d: %w", lineNo+1, err)
	}
	r.logger.Debug().Int("lines", lineNo).Msg("input consumed")
	return nil
}

// parseScored parses "score<TAB>key", falling back to "score key".
// NaN scores have no order and are rejected.
func parseScored(line string) (scored, bool) {
	raw, key, found := strings.Cut(line, "\t")
	if !found {
		raw, key, found = strings.Cut(strings.TrimSpace(line), " ")
	}
	if !found {
		return scored{}, false
	}

	key = strings.TrimSpace(key)
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(score) || key == "" {
		return scored{}, false
	}
	return scored{key: key, score: score}, true
}
