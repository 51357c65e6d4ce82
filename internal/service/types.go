package service

import (
	"time"

	"battery_cycling/internal/simulation"
)

// SimulationReport pairs a result with the id of its run record. Result is
// nil when the run failed.
type SimulationReport struct {
	RunID  string
	Result *simulation.Result
}

// RunFilter supports history filtering by time range and status.
type RunFilter struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Status string    // "", "ok", "error"
	Limit  int       // 0 means no limit
}

// PreviewParams is a caller-defined cycling protocol.
type PreviewParams struct {
	ChargeCRate    float64
	DischargeCRate float64
	VMax           float64
	VMin           float64
	RestMinutes    int
	Cycles         int
	Mode           string
}
