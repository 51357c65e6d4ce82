package service

import (
	"context"

	"battery_cycling/internal/experiment"
	"battery_cycling/internal/logger"
	"battery_cycling/internal/models"
	"battery_cycling/internal/repository"
	"battery_cycling/internal/simulation"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulation runs one cycling simulation per call and records it in the run log.
type Simulation interface {
	Simulate(ctx context.Context, req simulation.Request) (*SimulationReport, error)
}

// Experiment exposes protocol previews and the output catalog without solving.
type Experiment interface {
	Preview(p PreviewParams) ([]experiment.Step, error)
	Variables() []string
}

// RunLog exposes the simulation history.
type RunLog interface {
	List(ctx context.Context, f RunFilter) ([]models.SimulationRun, error)
	Get(ctx context.Context, id string) (models.SimulationRun, error)
}

// Service aggregates all sub-services.
type Service struct {
	Simulation
	Experiment
	RunLog
	Authorization
}

// Deps carries what NewService needs beyond the repositories.
type Deps struct {
	Runner *simulation.Runner
	Auth   AuthConfig
	Log    *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	return &Service{
		Simulation:    NewSimulationService(deps.Runner, repos.RunRepo, deps.Log),
		Experiment:    NewExperimentService(),
		RunLog:        NewRunLogService(repos.RunRepo),
		Authorization: NewAuthService(repos.Auth, deps.Auth),
	}
}
