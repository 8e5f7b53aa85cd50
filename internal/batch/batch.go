// Package batch evaluates many hands concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/wildpoker/poker"
)

// Input is one hand read from a batch file.
type Input struct {
	Line   int // 1-based line number in the source
	Tokens []string
}

// Result is the outcome for one input line. Err is set for hands that
// could not be evaluated; such lines do not stop the run.
type Result struct {
	Line   int
	Input  string
	Result poker.Result
	Err    error
}

// Summary aggregates a run.
type Summary struct {
	Total      int
	Failed     int
	Categories map[poker.HandCategory]int
	Elapsed    time.Duration
}

// ReadInputs reads one hand per line. Blank lines and lines starting with
// '#' are skipped.
func ReadInputs(r io.Reader) ([]Input, error) {
	var inputs []Input
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		inputs = append(inputs, Input{Line: line, Tokens: strings.Fields(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return inputs, nil
}

// Runner evaluates inputs on a bounded pool of workers.
type Runner struct {
	logger  *log.Logger
	clock   quartz.Clock
	workers int
}

// NewRunner creates a runner. Workers below one are treated as one.
func NewRunner(logger *log.Logger, clock quartz.Clock, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		logger:  logger.WithPrefix("batch"),
		clock:   clock,
		workers: workers,
	}
}

// Run evaluates every input. Results are returned in input order. The only
// error returned is the context's.
func (r *Runner) Run(ctx context.Context, inputs []Input) ([]Result, Summary, error) {
	start := r.clock.Now()
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := poker.Evaluate(in.Tokens)
			results[i] = Result{
				Line:   in.Line,
				Input:  strings.Join(in.Tokens, " "),
				Result: res,
				Err:    err,
			}
			if err != nil {
				r.logger.Debug("Hand rejected", "line", in.Line, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, err
	}

	summary := Summarize(results)
	summary.Elapsed = r.clock.Since(start)
	r.logger.Info("Batch complete",
		"hands", summary.Total,
		"failed", summary.Failed,
		"workers", r.workers,
		"elapsed", summary.Elapsed)
	return results, summary, nil
}

// Summarize counts results per category.
func Summarize(results []Result) Summary {
	s := Summary{
		Total:      len(results),
		Categories: make(map[poker.HandCategory]int),
	}
	for _, res := range results {
		if res.Err != nil {
			s.Failed++
			continue
		}
		s.Categories[res.Result.Category()]++
	}
	return s
}
