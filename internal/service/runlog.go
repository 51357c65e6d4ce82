package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"battery_cycling/internal/models"
	"battery_cycling/internal/repository"
)

type RunLogService struct {
	runRepo repository.RunRepo
}

func NewRunLogService(runRepo repository.RunRepo) *RunLogService {
	return &RunLogService{runRepo: runRepo}
}

// ErrInvalidFilter wraps every RunFilter validation failure.
var ErrInvalidFilter = errors.New("invalid run filter")

var (
	errInvalidTimeRange = fmt.Errorf("%w: From must be <= To", ErrInvalidFilter)
	errInvalidStatus    = fmt.Errorf("%w: status must be ok or error", ErrInvalidFilter)
	errInvalidLimit     = fmt.Errorf("%w: limit must be >= 0", ErrInvalidFilter)
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeStatus trims spaces and lowercases the status filter.
func normalizeStatus(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f RunFilter) (repository.RunQuery, error) {
	q := repository.RunQuery{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Status: normalizeStatus(f.Status),
		Limit:  f.Limit,
	}

	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.RunQuery{}, errInvalidTimeRange
	}
	switch q.Status {
	case "", models.RunStatusOK, models.RunStatusError:
	default:
		return repository.RunQuery{}, errInvalidStatus
	}
	if q.Limit < 0 {
		return repository.RunQuery{}, errInvalidLimit
	}
	return q, nil
}

func (s *RunLogService) List(ctx context.Context, f RunFilter) ([]models.SimulationRun, error) {
	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runRepo.List(ctx, q)
}

func (s *RunLogService) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	return s.runRepo.Get(ctx, strings.TrimSpace(id))
}
