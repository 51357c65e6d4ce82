package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"battery_cycling/internal/models"
)

// ErrRunNotFound is returned by RunRepo.Get for an unknown id.
var ErrRunNotFound = errors.New("simulation run not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RunQuery filters the run history. Zero values mean no constraint.
type RunQuery struct {
	From   time.Time
	To     time.Time
	Status string
	Limit  int
}

type RunRepo interface {
	Append(ctx context.Context, run models.SimulationRun) error
	List(ctx context.Context, q RunQuery) ([]models.SimulationRun, error)
	Get(ctx context.Context, id string) (models.SimulationRun, error)
}

type Repository struct {
	RunRepo RunRepo
	Auth    Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		RunRepo: NewRunSQLite(db),
		Auth:    NewUserRepository(db),
	}
}
