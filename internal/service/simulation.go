package service

import (
	"context"
	"time"

	"battery_cycling/internal/logger"
	"battery_cycling/internal/models"
	"battery_cycling/internal/repository"
	"battery_cycling/internal/simulation"

	"github.com/google/uuid"
)

// runner is the part of *simulation.Runner the service depends on.
type runner interface {
	Run(ctx context.Context, req simulation.Request) (*simulation.Result, error)
}

type SimulationService struct {
	runner  runner
	runRepo repository.RunRepo
	log     *logger.Logger
	now     func() time.Time
}

func NewSimulationService(r runner, runRepo repository.RunRepo, log *logger.Logger) *SimulationService {
	return &SimulationService{
		runner:  r,
		runRepo: runRepo,
		log:     log,
		now:     time.Now,
	}
}

// Simulate solves req from scratch and appends a run record. The report is
// returned even on failure so callers can reference the run id. Recording is
// best-effort: a failed append is logged and does not fail the request.
func (s *SimulationService) Simulate(ctx context.Context, req simulation.Request) (*SimulationReport, error) {
	started := s.now().UTC()
	runID := uuid.NewString()

	res, err := s.runner.Run(ctx, req)

	run := models.SimulationRun{
		ID:         runID,
		StartedAt:  started,
		DurationMs: s.now().Sub(started).Milliseconds(),
		Current:    req.Current,
		Cycles:     req.Cycles,
		Mode:       req.Mode,
		SEIModel:   req.SEIModel,
		XVariable:  req.XVariable,
		YVariable:  req.YVariable,
		Status:     models.RunStatusOK,
		Points:     res.Points(),
	}
	if err != nil {
		run.Status = models.RunStatusError
		run.ErrorKind = simulation.KindOf(err).String()
		run.ErrorMessage = err.Error()
	}
	s.record(ctx, run)

	return &SimulationReport{RunID: runID, Result: res}, err
}

func (s *SimulationService) record(ctx context.Context, run models.SimulationRun) {
	if s.runRepo == nil {
		return
	}
	// the request context may already be canceled by a client disconnect
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.runRepo.Append(recCtx, run); err != nil && s.log != nil {
		s.log.Warnw("run_record_failed", "run_id", run.ID, "err", err)
	}
}
