package conformance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/jsarray/pkg/assert"
	"github.com/nspcc-dev/jsarray/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	// ErrFailed is returned by Runner.Run in KeepGoing mode if any case has
	// failed.
	ErrFailed = errors.New("conformance cases failed")
	// ErrCasePanicked is returned for cases that panicked instead of
	// returning an error.
	ErrCasePanicked = errors.New("case panicked")
)

// Runner executes conformance cases sequentially.
type Runner struct {
	cfg     config.Runner
	cases   []Case
	out     io.Writer
	log     *zap.Logger
	metrics *metrics
}

// NewRunner creates a Runner for cases selected by cfg. Progress lines are
// written to out, metrics are registered on reg if it's not nil.
func NewRunner(cfg config.Runner, out io.Writer, log *zap.Logger, reg prometheus.Registerer) (*Runner, error) {
	cs, err := Filter(cfg.Cases)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		cases:   cs,
		out:     out,
		log:     log,
		metrics: newMetrics(reg),
	}, nil
}

// Run executes cases in their fixed order. By default it stops at the first
// failure and returns it, in KeepGoing mode every case is run and an error
// wrapping ErrFailed is returned if any of them has failed. The Result is
// returned in both cases. Context cancellation is checked between cases.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID: uuid.New(),
		Start: time.Now(),
		Cases: make([]CaseResult, 0, len(r.cases)),
	}
	r.log.Info("starting conformance run",
		zap.Stringer("id", res.RunID),
		zap.Int("cases", len(r.cases)),
		zap.Bool("keep going", r.cfg.KeepGoing))

	for _, c := range r.cases {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(res.Start)
			r.log.Info("conformance run interrupted", zap.Error(err))
			return res, err
		}
		cr := r.runCase(c)
		res.Cases = append(res.Cases, cr)
		if cr.Passed {
			fmt.Fprintf(r.out, "%s passed\n", c.Name)
			continue
		}
		if !r.cfg.KeepGoing {
			res.Duration = time.Since(res.Start)
			return res, fmt.Errorf("%s: %w", c.Name, cr.Error)
		}
		fmt.Fprintf(r.out, "%s failed in %dms [%s]\n", c.Name, cr.Duration.Milliseconds(), cr.Error)
	}
	res.Duration = time.Since(res.Start)

	passed := res.Passed()
	r.log.Info("conformance run finished",
		zap.Stringer("id", res.RunID),
		zap.Int("passed", passed),
		zap.Int("total", len(res.Cases)),
		zap.Duration("took", res.Duration))
	if !r.cfg.KeepGoing {
		fmt.Fprintf(r.out, "\nAll tests passed in %dms\n", res.Duration.Milliseconds())
		return res, nil
	}
	fmt.Fprintf(r.out, "\nAll tests finished in %dms (%d/%d passed)\n", res.Duration.Milliseconds(), passed, len(res.Cases))
	if passed != len(res.Cases) {
		return res, fmt.Errorf("%w: %d of %d", ErrFailed, len(res.Cases)-passed, len(res.Cases))
	}
	return res, nil
}

func (r *Runner) runCase(c Case) CaseResult {
	start := time.Now()
	err := call(c)
	cr := CaseResult{
		Name:     c.Name,
		Passed:   err == nil,
		Duration: time.Since(start),
		Error:    err,
	}

	result := resultPassed
	switch {
	case errors.Is(err, ErrCasePanicked):
		result = resultPanicked
	case err != nil:
		result = resultFailed
	}
	r.metrics.observe(result, cr.Duration.Seconds())
	if ce := r.log.Check(zap.DebugLevel, "case done"); ce != nil {
		fields := []zap.Field{
			zap.String("case", c.Name),
			zap.String("result", result),
			zap.Duration("took", cr.Duration),
			zap.Error(err),
		}
		var f *assert.Failure
		if errors.As(err, &f) {
			fields = append(fields, zap.String("detail", f.Detail()))
		}
		ce.Write(fields...)
	}
	return cr
}

func call(c Case) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrCasePanicked, p)
		}
	}()
	return c.Run()
}
