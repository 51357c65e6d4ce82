package service

import (
	"battery_cycling/internal/experiment"
	"battery_cycling/internal/simulation"
)

type ExperimentService struct{}

func NewExperimentService() *ExperimentService { return &ExperimentService{} }

// Preview builds the step sequence for p without solving it.
func (s *ExperimentService) Preview(p PreviewParams) ([]experiment.Step, error) {
	return experiment.Build(experiment.Params{
		ChargeCRate:    p.ChargeCRate,
		DischargeCRate: p.DischargeCRate,
		VMax:           p.VMax,
		VMin:           p.VMin,
		RestMinutes:    p.RestMinutes,
		Cycles:         p.Cycles,
		Mode:           p.Mode,
	})
}

// Variables returns the y-axis catalog.
func (s *ExperimentService) Variables() []string {
	return simulation.YVariables()
}
