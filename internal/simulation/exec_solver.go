package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrSolverNotConfigured is returned when no bridge command is set.
var ErrSolverNotConfigured = errors.New("solver command is not configured")

// ErrNonFiniteSample is returned when the bridge reports a NaN or infinite sample.
var ErrNonFiniteSample = errors.New("non-finite value in solver output")

const stderrTailBytes = 2 << 10

// ExecConfig describes how to start the solver bridge process.
type ExecConfig struct {
	Command string
	Args    []string
	// Env entries (KEY=VALUE) are appended to the current environment.
	Env []string
}

// ExecSolver runs each job in a fresh bridge process. The job is written to
// stdin as JSON and the reply is read from stdout.
type ExecSolver struct {
	cfg ExecConfig
}

var _ Solver = (*ExecSolver)(nil)

func NewExecSolver(cfg ExecConfig) *ExecSolver {
	return &ExecSolver{cfg: cfg}
}

// bridgeReply is the bridge's stdout document. Samples decode as pointers
// so a null (a non-finite value on the Python side) is not read as 0.
type bridgeReply struct {
	Variables map[string][]*float64 `json:"variables"`
	Error     string                `json:"error,omitempty"`
}

// series converts the reply, rejecting any null sample.
func (r bridgeReply) series() (map[string][]float64, error) {
	out := make(map[string][]float64, len(r.Variables))
	for name, samples := range r.Variables {
		vals := make([]float64, len(samples))
		for i, v := range samples {
			if v == nil {
				return nil, fmt.Errorf("%w: '%s' at sample %d", ErrNonFiniteSample, name, i)
			}
			vals[i] = *v
		}
		out[name] = vals
	}
	return out, nil
}

// Solve starts the bridge and blocks until it exits or ctx is done, in which
// case the process is killed.
func (s *ExecSolver) Solve(ctx context.Context, job Job) (*Solution, error) {
	if s.cfg.Command == "" {
		return nil, ErrSolverNotConfigured
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode solver job: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.cfg.Command, s.cfg.Args...)
	cmd.Env = append(os.Environ(), s.cfg.Env...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("solver interrupted: %w", ctxErr)
	}

	var reply bridgeReply
	decodeErr := json.Unmarshal(stdout.Bytes(), &reply)
	if decodeErr == nil && reply.Error != "" {
		return nil, errors.New(reply.Error)
	}
	if runErr != nil {
		if msg := tail(stderr.String()); msg != "" {
			return nil, fmt.Errorf("solver process: %w: %s", runErr, msg)
		}
		return nil, fmt.Errorf("solver process: %w", runErr)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode solver output: %w", decodeErr)
	}
	vars, err := reply.series()
	if err != nil {
		return nil, err
	}
	return NewSolution(vars), nil
}

// tail keeps the last stderrTailBytes of s, trimmed.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTailBytes {
		s = s[len(s)-stderrTailBytes:]
	}
	return s
}
