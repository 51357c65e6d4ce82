package simulation

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// stubSolver records jobs and returns a fixed solution.
type stubSolver struct {
	mu    sync.Mutex
	calls int
	jobs  []Job
	sol   *Solution
	err   error
}

func (s *stubSolver) Solve(ctx context.Context, job Job) (*Solution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.jobs = append(s.jobs, job)
	return s.sol, s.err
}

func knownSolution() *Solution {
	return NewSolution(map[string][]float64{
		"Time [s]":    {0, 10, 20, 30},
		"Voltage [V]": {4.2, 4.1, 3.9, 3.6},
		"Current [A]": {0.5, 0.5, 0.5, 0.5},
	})
}

func validRequest() Request {
	return Request{
		Current:   0.5,
		Cycles:    1,
		Mode:      "CC",
		XVariable: "Time [s]",
		YVariable: "Voltage [V]",
	}
}

func strPtr(s string) *string { return &s }

func TestRunner_ValidRequestReturnsStubSeries(t *testing.T) {
	solver := &stubSolver{sol: knownSolution()}
	r := NewRunner(solver)

	res, err := r.Run(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := &Result{
		XVariable: "Time [s]",
		YVariable: "Voltage [V]",
		XData:     []float64{0, 10, 20, 30},
		YData:     []float64{4.2, 4.1, 3.9, 3.6},
	}
	if !reflect.DeepEqual(res, want) {
		t.Fatalf("result mismatch\n got: %+v\nwant: %+v", res, want)
	}
	if res.Points() != 4 {
		t.Fatalf("Points() = %d", res.Points())
	}
	if solver.calls != 1 {
		t.Fatalf("solver calls = %d, want 1", solver.calls)
	}
}

func TestRunner_JobConfiguration(t *testing.T) {
	solver := &stubSolver{sol: knownSolution()}
	r := NewRunner(solver)

	req := validRequest()
	req.Cycles = 2
	if _, err := r.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	job := solver.jobs[0]

	if job.Model.Type != ModelDFN || job.Model.Options != nil {
		t.Fatalf("default model expected, got %+v", job.Model)
	}
	if job.Parameters.Set != ParameterSet {
		t.Fatalf("parameter set = %q", job.Parameters.Set)
	}
	if got := job.Parameters.Overrides[SEIRateConstantKey]; got != 1e-14 {
		t.Fatalf("SEI rate override = %v", got)
	}
	if len(job.Parameters.Overrides) != 1 {
		t.Fatalf("expected exactly one override, got %v", job.Parameters.Overrides)
	}
	if job.Parameters.InitialStoichiometries != 1 {
		t.Fatalf("initial stoichiometry = %v", job.Parameters.InitialStoichiometries)
	}
	if len(job.Experiment) != 8 {
		t.Fatalf("experiment length = %d, want 8", len(job.Experiment))
	}
	if job.Experiment[0] != "Charge at 0.5C until 4.2V" || job.Experiment[1] != "Rest for 5 minutes" ||
		job.Experiment[2] != "Discharge at 0.5C until 3.0V" {
		t.Fatalf("unexpected experiment: %q", job.Experiment)
	}
	if !reflect.DeepEqual(job.Variables, []string{"Time [s]", "Voltage [V]"}) {
		t.Fatalf("variables = %q", job.Variables)
	}
}

func TestRunner_SEIOptionPassedThrough(t *testing.T) {
	solver := &stubSolver{sol: knownSolution()}
	r := NewRunner(solver)

	req := validRequest()
	req.SEIModel = strPtr("solvent-diffusion limited")
	if _, err := r.Run(context.Background(), req); err != nil {
		t.Fatalf("Run: %v", err)
	}
	opts := solver.jobs[0].Model.Options
	if opts[SEIOptionKey] != "solvent-diffusion limited" {
		t.Fatalf("SEI option = %v", opts)
	}
}

func TestRunner_InvalidYVariableSkipsSolver(t *testing.T) {
	solver := &stubSolver{sol: knownSolution()}
	r := NewRunner(solver)

	req := validRequest()
	req.YVariable = "Time [s]"
	_, err := r.Run(context.Background(), req)

	var se *Error
	if !errors.As(err, &se) || se.Kind != KindInvalidVariable {
		t.Fatalf("expected invalid variable, got %v", err)
	}
	if se.Error() != "'Time [s]' is not a valid y-axis variable." {
		t.Fatalf("message = %q", se.Error())
	}
	if solver.calls != 0 {
		t.Fatalf("solver must not be invoked, calls=%d", solver.calls)
	}
}

func TestRunner_InvalidModeSkipsSolver(t *testing.T) {
	solver := &stubSolver{sol: knownSolution()}
	r := NewRunner(solver)

	req := validRequest()
	req.Mode = "PULSE"
	_, err := r.Run(context.Background(), req)
	if KindOf(err) != KindInvalidMode {
		t.Fatalf("expected invalid mode, got %v (%v)", KindOf(err), err)
	}
	if solver.calls != 0 {
		t.Fatalf("solver must not be invoked, calls=%d", solver.calls)
	}
}

func TestRunner_InvalidRequests(t *testing.T) {
	cases := map[string]func(*Request){
		"zero cycles":      func(r *Request) { r.Cycles = 0 },
		"negative current": func(r *Request) { r.Current = -1 },
		"zero current":     func(r *Request) { r.Current = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			solver := &stubSolver{sol: knownSolution()}
			req := validRequest()
			mutate(&req)
			_, err := NewRunner(solver).Run(context.Background(), req)
			if KindOf(err) != KindInvalidRequest {
				t.Fatalf("expected invalid request, got %v", err)
			}
			if solver.calls != 0 {
				t.Fatalf("solver invoked")
			}
		})
	}
}

func TestRunner_MissingOutputKey(t *testing.T) {
	r := NewRunner(&stubSolver{sol: knownSolution()})

	req := validRequest()
	req.XVariable = "Time [h]"
	_, err := r.Run(context.Background(), req)

	var se *Error
	if !errors.As(err, &se) || se.Kind != KindMissingOutputKey || se.Key != "Time [h]" {
		t.Fatalf("expected missing key Time [h], got %v", err)
	}
	if se.Error() != "Variable not found: 'Time [h]'" {
		t.Fatalf("message = %q", se.Error())
	}

	// y lookup fails only after x succeeds
	req = validRequest()
	req.YVariable = "Power [W]"
	_, err = r.Run(context.Background(), req)
	if !errors.As(err, &se) || se.Key != "Power [W]" {
		t.Fatalf("expected missing key Power [W], got %v", err)
	}
}

func TestRunner_SolverFailureKeepsDetail(t *testing.T) {
	boom := errors.New("non-convergence at step 3")
	r := NewRunner(&stubSolver{err: boom})

	_, err := r.Run(context.Background(), validRequest())
	if KindOf(err) != KindSolverFailure {
		t.Fatalf("expected solver failure, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying error lost: %v", err)
	}
	if err.Error() != "Server error: non-convergence at step 3" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRunner_SolverPanicBecomesFailure(t *testing.T) {
	r := NewRunner(SolverFunc(func(ctx context.Context, job Job) (*Solution, error) {
		panic("index out of range")
	}))
	_, err := r.Run(context.Background(), validRequest())
	if KindOf(err) != KindSolverFailure {
		t.Fatalf("expected solver failure, got %v", err)
	}
}

func TestRunner_LengthMismatch(t *testing.T) {
	r := NewRunner(&stubSolver{sol: NewSolution(map[string][]float64{
		"Time [s]":    {0, 1, 2},
		"Voltage [V]": {4.2},
	})})
	_, err := r.Run(context.Background(), validRequest())
	if KindOf(err) != KindSolverFailure {
		t.Fatalf("expected solver failure, got %v", err)
	}
}

func TestRunner_Idempotent(t *testing.T) {
	r := NewRunner(&stubSolver{sol: knownSolution()})

	a, errA := r.Run(context.Background(), validRequest())
	b, errB := r.Run(context.Background(), validRequest())
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical requests produced different results")
	}
	// results do not alias the solver's arrays
	a.XData[0] = 99
	if b.XData[0] == 99 {
		t.Fatalf("results share backing storage")
	}
}

func TestRunner_Timeout(t *testing.T) {
	r := NewRunner(SolverFunc(func(ctx context.Context, job Job) (*Solution, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), WithTimeout(20*time.Millisecond))

	_, err := r.Run(context.Background(), validRequest())
	if KindOf(err) != KindSolverFailure || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected timed-out solver failure, got %v", err)
	}
}

func TestRunner_ConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	release := make(chan struct{})
	solver := SolverFunc(func(ctx context.Context, job Job) (*Solution, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&inFlight, -1)
		return knownSolution(), nil
	})
	r := NewRunner(solver, WithConcurrencyLimit(2))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Run(context.Background(), validRequest())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if peak > 2 {
		t.Fatalf("peak concurrency %d exceeds limit 2", peak)
	}
}

func TestRunner_LimiterRespectsContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	r := NewRunner(SolverFunc(func(ctx context.Context, job Job) (*Solution, error) {
		<-block
		return knownSolution(), nil
	}), WithConcurrencyLimit(1))

	go func() { _, _ = r.Run(context.Background(), validRequest()) }()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := r.Run(ctx, validRequest())
	if KindOf(err) != KindSolverFailure {
		t.Fatalf("expected solver failure while waiting for slot, got %v", err)
	}
}

func TestKindOf_Unknown(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("plain errors should have unknown kind")
	}
	if KindOf(nil) != KindUnknown {
		t.Fatalf("nil should have unknown kind")
	}
}
