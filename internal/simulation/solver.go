package simulation

import "context"

// Solver runs a prepared job through the external electrochemical library.
type Solver interface {
	Solve(ctx context.Context, job Job) (*Solution, error)
}

// SolverFunc adapts a function to Solver.
type SolverFunc func(ctx context.Context, job Job) (*Solution, error)

func (f SolverFunc) Solve(ctx context.Context, job Job) (*Solution, error) { return f(ctx, job) }

// Job is everything the external library needs for one solve.
type Job struct {
	Model      ModelConfig     `json:"model"`
	Parameters ParameterConfig `json:"parameters"`
	Experiment []string        `json:"experiment"`
	// Variables lists the output series to extract from the solution.
	Variables []string `json:"variables"`
}

// ModelConfig selects the model class and its options.
type ModelConfig struct {
	Type    string            `json:"type"`
	Options map[string]string `json:"options,omitempty"`
}

// ParameterConfig selects a named parameter set with overrides.
type ParameterConfig struct {
	Set                    string             `json:"set"`
	Overrides              map[string]float64 `json:"overrides,omitempty"`
	InitialStoichiometries float64            `json:"initial_stoichiometries"`
}

// Solution holds the output series returned by a solve, keyed by variable name.
type Solution struct {
	series map[string][]float64
}

// NewSolution wraps series; the map is not copied.
func NewSolution(series map[string][]float64) *Solution {
	return &Solution{series: series}
}

// Series looks up a variable by name.
func (s *Solution) Series(name string) ([]float64, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.series[name]
	return v, ok
}

// Len is the number of variables present in the solution.
func (s *Solution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.series)
}
