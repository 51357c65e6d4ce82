// Package simulation turns a cycling request into a solver job, runs it and
// extracts the requested output series.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"battery_cycling/internal/experiment"

	"golang.org/x/sync/semaphore"
)

// Fixed model and protocol settings. Only current, cycles, mode and the SEI
// option are caller-supplied.
const (
	ModelDFN                = "DFN"
	SEIOptionKey            = "SEI"
	ParameterSet            = "Mohtat2020"
	SEIRateConstantKey      = "SEI kinetic rate constant [m.s-1]"
	SEIRateConstant         = 1e-14
	FullChargeStoichiometry = 1.0

	VMax        = 4.2
	VMin        = 3.0
	RestMinutes = 5
)

// Request is one simulation call.
type Request struct {
	// Current is used as both the charge and discharge C-rate.
	Current float64
	Cycles  int
	Mode    string
	// SEIModel selects the SEI sub-model; nil keeps the model default.
	SEIModel  *string
	XVariable string
	YVariable string
}

// Result carries the two extracted series.
type Result struct {
	XVariable string    `json:"x_variable"`
	YVariable string    `json:"y_variable"`
	XData     []float64 `json:"x_data"`
	YData     []float64 `json:"y_data"`
}

// Points is the number of samples in each series.
func (r *Result) Points() int {
	if r == nil {
		return 0
	}
	return len(r.XData)
}

// Runner executes requests against a Solver. It holds no per-request state
// and is safe for concurrent use.
type Runner struct {
	solver  Solver
	timeout time.Duration
	limiter *semaphore.Weighted
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds each solve; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithConcurrencyLimit caps the number of solves in flight; n <= 0 means unlimited.
func WithConcurrencyLimit(n int64) Option {
	return func(r *Runner) {
		if n > 0 {
			r.limiter = semaphore.NewWeighted(n)
		}
	}
}

func NewRunner(solver Solver, opts ...Option) *Runner {
	r := &Runner{solver: solver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates req, solves it and returns the requested series.
// Every error returned is a *Error.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if !IsYVariable(req.YVariable) {
		return nil, &Error{Kind: KindInvalidVariable, Key: req.YVariable}
	}

	job, err := NewJob(req)
	if err != nil {
		return nil, err
	}

	sol, err := r.solve(ctx, job)
	if err != nil {
		return nil, newError(KindSolverFailure, err)
	}

	return extract(sol, req.XVariable, req.YVariable)
}

// NewJob translates req into the solver job without running it.
func NewJob(req Request) (Job, error) {
	if math.IsNaN(req.Current) || math.IsInf(req.Current, 0) || req.Current <= 0 {
		return Job{}, newError(KindInvalidRequest, fmt.Errorf("current must be a positive C-rate, got %v", req.Current))
	}

	steps, err := experiment.Build(experiment.Params{
		ChargeCRate:    req.Current,
		DischargeCRate: req.Current,
		VMax:           VMax,
		VMin:           VMin,
		RestMinutes:    RestMinutes,
		Cycles:         req.Cycles,
		Mode:           req.Mode,
	})
	if err != nil {
		if errors.Is(err, experiment.ErrUnsupportedMode) {
			return Job{}, newError(KindInvalidMode, err)
		}
		return Job{}, newError(KindInvalidRequest, err)
	}

	model := ModelConfig{Type: ModelDFN}
	if req.SEIModel != nil {
		model.Options = map[string]string{SEIOptionKey: *req.SEIModel}
	}

	return Job{
		Model: model,
		Parameters: ParameterConfig{
			Set:                    ParameterSet,
			Overrides:              map[string]float64{SEIRateConstantKey: SEIRateConstant},
			InitialStoichiometries: FullChargeStoichiometry,
		},
		Experiment: experiment.Instructions(steps),
		Variables:  []string{req.XVariable, req.YVariable},
	}, nil
}

func (r *Runner) solve(ctx context.Context, job Job) (sol *Solution, err error) {
	if r.limiter != nil {
		if err := r.limiter.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("wait for solver slot: %w", err)
		}
		defer r.limiter.Release(1)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	defer func() {
		if p := recover(); p != nil {
			sol, err = nil, fmt.Errorf("solver panic: %v", p)
		}
	}()

	sol, err = r.solver.Solve(ctx, job)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && r.timeout > 0 {
		return nil, fmt.Errorf("solve exceeded %s: %w", r.timeout, err)
	}
	return sol, err
}

func extract(sol *Solution, xName, yName string) (*Result, error) {
	x, ok := sol.Series(xName)
	if !ok {
		return nil, &Error{Kind: KindMissingOutputKey, Key: xName}
	}
	y, ok := sol.Series(yName)
	if !ok {
		return nil, &Error{Kind: KindMissingOutputKey, Key: yName}
	}
	if len(x) != len(y) {
		return nil, newError(KindSolverFailure, fmt.Errorf("series length mismatch: %q has %d points, %q has %d", xName, len(x), yName, len(y)))
	}

	return &Result{
		XVariable: xName,
		YVariable: yName,
		XData:     append(make([]float64, 0, len(x)), x...),
		YData:     append(make([]float64, 0, len(y)), y...),
	}, nil
}
