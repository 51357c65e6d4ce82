package models

import "time"

// Run outcomes.
const (
	RunStatusOK    = "ok"
	RunStatusError = "error"
)

// SimulationRun is the audit record of one simulation request.
type SimulationRun struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	DurationMs   int64     `json:"duration_ms"`
	Current      float64   `json:"current"`
	Cycles       int       `json:"cycles"`
	Mode         string    `json:"mode"`
	SEIModel     *string   `json:"sei_model,omitempty"`
	XVariable    string    `json:"x_variable"`
	YVariable    string    `json:"y_variable"`
	Status       string    `json:"status"`               // ok | error
	ErrorKind    string    `json:"error_kind,omitempty"` // e.g. invalid_variable
	ErrorMessage string    `json:"error_message,omitempty"`
	Points       int       `json:"points"`
}
