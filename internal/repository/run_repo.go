package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"battery_cycling/internal/models"

	"github.com/google/uuid"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	runColumns = `id, started_at, duration_ms, current, cycles, mode, sei_model, x_variable, y_variable, status, error_kind, error_message, points`

	insertRunSQL = `INSERT INTO simulation_runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRunsSQL = `SELECT ` + runColumns + ` FROM simulation_runs`

	selectRunByIDSQL = selectRunsSQL + ` WHERE id = ?`

	sqliteTimestampLayout = "2006-01-02 15:04:05"
)

// Append inserts a run. Missing id and start time are filled in.
func (r *RunSQLite) Append(ctx context.Context, run models.SimulationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	var sei sql.NullString
	if run.SEIModel != nil {
		sei = sql.NullString{String: *run.SEIModel, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.StartedAt.UTC().Format(sqliteTimestampLayout),
		run.DurationMs,
		run.Current,
		run.Cycles,
		run.Mode,
		sei,
		run.XVariable,
		run.YVariable,
		strings.ToLower(strings.TrimSpace(run.Status)),
		run.ErrorKind,
		run.ErrorMessage,
		run.Points,
	)
	if err != nil {
		return fmt.Errorf("insert simulation run %s: %w", run.ID, err)
	}
	return nil
}

// List returns runs filtered by [From, To] and status, newest first.
func (r *RunSQLite) List(ctx context.Context, q RunQuery) ([]models.SimulationRun, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimestampLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimestampLayout))
	}
	if status := strings.ToLower(strings.TrimSpace(q.Status)); status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}

	query := selectRunsSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY started_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query simulation runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.SimulationRun, 0, 32)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one run by id.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SimulationRun{}, ErrRunNotFound
		}
		return models.SimulationRun{}, err
	}
	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.SimulationRun, error) {
	var (
		run models.SimulationRun
		sei sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&run.StartedAt,
		&run.DurationMs,
		&run.Current,
		&run.Cycles,
		&run.Mode,
		&sei,
		&run.XVariable,
		&run.YVariable,
		&run.Status,
		&run.ErrorKind,
		&run.ErrorMessage,
		&run.Points,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SimulationRun{}, err
		}
		return models.SimulationRun{}, fmt.Errorf("scan simulation run: %w", err)
	}
	if sei.Valid {
		s := sei.String
		run.SEIModel = &s
	}
	run.StartedAt = run.StartedAt.UTC()
	return run, nil
}
