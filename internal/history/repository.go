package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded pipeline pass.
type Run struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	Status      string        `json:"status"`
	CacheFilled bool          `json:"cache_filled"`
	Loaded      int           `json:"loaded"`
	Failed      int           `json:"failed"`
	Outcomes    []Outcome     `json:"outcomes,omitempty"`
}

// Outcome is one component's result within a Run.
type Outcome struct {
	Component string   `json:"component"`
	Kind      string   `json:"kind"`
	Module    string   `json:"module,omitempty"`
	Type      string   `json:"type,omitempty"`
	DataFile  string   `json:"data_file,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Filter controls which runs List returns.
type Filter struct {
	Status    string // optional: ok, partial, failed, empty
	Component string // optional: runs that saw this component
	Limit     int    // default 20, max 200
	Offset    int
}

// ListResult is a page of runs, newest first. Outcomes are not populated.
type ListResult struct {
	Runs   []Run `json:"runs"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Repository defines the load history operations.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, filter Filter) (*ListResult, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

const (
	defaultLimit = 20
	maxLimit     = 200

	// timeFormat is fixed-width so that started_at sorts chronologically as text.
	timeFormat = "2006-01-02T15:04:05.000000Z07:00"
)

// SQLiteRepository stores runs in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a history repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a run and its outcomes in one transaction.
// ID and StartedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = "run-" + uuid.NewString()[:8]
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO load_runs (id, started_at, duration_ms, status, cache_filled, loaded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeFormat), run.Duration.Milliseconds(),
		run.Status, boolToInt(run.CacheFilled), run.Loaded, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting load run: %w", err)
	}

	for _, o := range run.Outcomes {
		var fields any
		if len(o.Fields) > 0 {
			b, err := json.Marshal(o.Fields)
			if err != nil {
				return fmt.Errorf("marshalling outcome fields: %w", err)
			}
			fields = string(b)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO load_outcomes (run_id, component, kind, module, type_name, data_file, fields, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, o.Component, o.Kind,
			nullableString(o.Module), nullableString(o.Type), nullableString(o.DataFile),
			fields, nullableString(o.Error),
		)
		if err != nil {
			return fmt.Errorf("inserting outcome for %s: %w", o.Component, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load run: %w", err)
	}
	return nil
}

// Get returns a run with its outcomes.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, started_at, duration_ms, status, cache_filled, loaded, failed
		 FROM load_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT component, kind, module, type_name, data_file, fields, error
		 FROM load_outcomes WHERE run_id = ? ORDER BY component`, id)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o Outcome
		var module, typeName, dataFile, fields, errMsg sql.NullString
		if err := rows.Scan(&o.Component, &o.Kind, &module, &typeName, &dataFile, &fields, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Module = module.String
		o.Type = typeName.String
		o.DataFile = dataFile.String
		o.Error = errMsg.String
		if fields.Valid && fields.String != "" {
			if err := json.Unmarshal([]byte(fields.String), &o.Fields); err != nil {
				return nil, fmt.Errorf("decoding fields for %s: %w", o.Component, err)
			}
		}
		run.Outcomes = append(run.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}

	return run, nil
}

// List returns runs matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Component != "" {
		conditions = append(conditions, "id IN (SELECT run_id FROM load_outcomes WHERE component = ?)")
		args = append(args, filter.Component)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM load_runs " + where //nolint:gosec // WHERE built from parameterised conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting load runs: %w", err)
	}

	query := "SELECT id, started_at, duration_ms, status, cache_filled, loaded, failed FROM load_runs " + //nolint:gosec // WHERE built from parameterised conditions
		where + " ORDER BY started_at DESC, id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying load runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating load runs: %w", err)
	}

	return &ListResult{Runs: runs, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (r *SQLiteRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM load_runs WHERE id NOT IN (
			SELECT id FROM load_runs ORDER BY started_at DESC, id LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning load runs: %w", err)
	}
	return res.RowsAffected()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var startedAt string
	var durationMS int64
	var cacheFilled int

	if err := s.Scan(&run.ID, &startedAt, &durationMS, &run.Status, &cacheFilled, &run.Loaded, &run.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning load run: %w", err)
	}

	t, err := time.Parse(timeFormat, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing load run timestamp %q: %w", startedAt, err)
	}
	run.StartedAt = t
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CacheFilled = cacheFilled != 0
	return &run, nil
}

// nullableString maps "" to NULL for nullable TEXT columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
