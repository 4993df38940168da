// Package runner drives the conformance run: it feeds every test case to the
// adapter, compares the outcomes, and collects the per-case results in a
// deterministic order.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/erbsland-dev/elcl-conformance/internal/adapter"
	"github.com/erbsland-dev/elcl-conformance/internal/compare"
	"github.com/erbsland-dev/elcl-conformance/internal/corpus"
	"github.com/erbsland-dev/elcl-conformance/internal/outcome"
)

// Result pairs a test case with its comparison verdict.
type Result struct {
	Case       corpus.Case
	Comparison *compare.Result
}

// Options configures a run.
type Options struct {
	// Jobs is the number of adapter subprocesses running concurrently.
	// Values below two select the sequential driver.
	Jobs int

	// Progress, when set, is called once per completed case. With parallel
	// jobs the callback order follows completion, not case order; the
	// returned results are always in case order regardless.
	Progress func(Result)
}

// Runner executes the case loop against one adapter.
type Runner struct {
	adapter *adapter.Runner
}

// New creates a Runner using the given adapter.
func New(a *adapter.Runner) *Runner {
	return &Runner{adapter: a}
}

// Run processes all cases and returns their results ordered by case.
// Case-level problems (adapter crashes, timeouts, mismatches) become failing
// results and never abort the run. A context cancellation stops the loop
// promptly and returns the results completed so far together with the
// context error. Broken expected-outcome fixtures abort the run.
func (r *Runner) Run(ctx context.Context, cases []corpus.Case, opts Options) ([]Result, error) {
	if opts.Jobs > 1 {
		return r.runParallel(ctx, cases, opts)
	}
	return r.runSequential(ctx, cases, opts)
}

func (r *Runner) runSequential(ctx context.Context, cases []corpus.Case, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := r.runCase(ctx, c)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if opts.Progress != nil {
			opts.Progress(result)
		}
	}
	return results, nil
}

// runParallel executes cases with a bounded worker pool. Each worker writes
// into its own slot indexed by case id, so the final result order stays
// deterministic regardless of completion order.
func (r *Runner) runParallel(ctx context.Context, cases []corpus.Case, opts Options) ([]Result, error) {
	slots := make([]Result, len(cases))
	done := make([]bool, len(cases))
	errs := make([]error, len(cases))

	var progressMu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, opts.Jobs)

	for i, c := range cases {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(i int, c corpus.Case) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}
			result, err := r.runCase(ctx, c)
			if err != nil {
				errs[i] = err
				return
			}
			slots[i] = result
			done[i] = true
			if opts.Progress != nil {
				progressMu.Lock()
				opts.Progress(result)
				progressMu.Unlock()
			}
		}(i, c)
	}
	wg.Wait()

	var results []Result
	for i := range cases {
		if done[i] {
			results = append(results, slots[i])
		}
	}
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return results, err
		}
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// runCase runs the adapter against a single case and compares the outcomes.
func (r *Runner) runCase(ctx context.Context, c corpus.Case) (Result, error) {
	expected, err := outcome.ParseFile(c.OutcomePath)
	if err != nil {
		// A broken fixture is a defect of the suite, not of the adapter.
		return Result{}, fmt.Errorf("invalid outcome file for test case %s: %w", c.Name, err)
	}

	actual, err := r.adapter.Run(ctx, c.Path)
	if err != nil {
		var invErr *adapter.InvocationError
		if errors.As(err, &invErr) {
			return Result{Case: c, Comparison: compare.Failure(invErr.Error())}, nil
		}
		return Result{}, err
	}
	return Result{Case: c, Comparison: compare.Outcomes(actual, expected)}, nil
}
