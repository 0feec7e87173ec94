package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
)

type RunRepository interface {
	CreateRun(ctx context.Context, run *Run) (int64, error)
	UpdateRun(ctx context.Context, run *Run) error
}

type PostgresRunRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRunRepo(db *pgxpool.Pool) *PostgresRunRepo {
	return &PostgresRunRepo{db: db}
}

func (r *PostgresRunRepo) CreateRun(ctx context.Context, run *Run) (int64, error) {
	const sql = `
		INSERT INTO import_runs (started_at, status, source)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, sql, run.StartedAt, run.Status, run.Source).Scan(&id); err != nil {
		return 0, fmt.Errorf("create import run: %w", err)
	}
	return id, nil
}

func (r *PostgresRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE import_runs SET
			finished_at = $1,
			status = $2,
			rows_read = $3,
			rows_imported = $4,
			error = $5
		WHERE id = $6`

	if _, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.RowsRead, run.RowsImported, run.Error, run.ID); err != nil {
		return fmt.Errorf("update import run %d: %w", run.ID, err)
	}
	return nil
}

type runModel struct {
	bun.BaseModel `bun:"table:import_runs,alias:ir"`

	ID           int64     `bun:",pk,autoincrement"`
	StartedAt    time.Time `bun:",notnull"`
	FinishedAt   time.Time `bun:",nullzero"`
	Status       string    `bun:",notnull"`
	Source       string    `bun:",notnull"`
	RowsRead     int       `bun:",notnull"`
	RowsImported int       `bun:",notnull"`
	Error        string    `bun:",notnull"`
}

// BunRunRepo records import runs through bun, for the SQLite mode.
type BunRunRepo struct {
	db *bun.DB
}

func NewBunRunRepo(db *bun.DB) *BunRunRepo {
	return &BunRunRepo{db: db}
}

// CreateSchema creates the import_runs table if it does not exist.
func (r *BunRunRepo) CreateSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().Model((*runModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create import_runs table: %w", err)
	}
	return nil
}

func (r *BunRunRepo) CreateRun(ctx context.Context, run *Run) (int64, error) {
	m := toRunModel(run)
	if _, err := r.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return 0, fmt.Errorf("create import run: %w", err)
	}
	return m.ID, nil
}

func (r *BunRunRepo) UpdateRun(ctx context.Context, run *Run) error {
	if _, err := r.db.NewUpdate().Model(toRunModel(run)).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update import run %d: %w", run.ID, err)
	}
	return nil
}

// GetRun loads a recorded run.
func (r *BunRunRepo) GetRun(ctx context.Context, id int64) (*Run, error) {
	m := new(runModel)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("get import run %d: %w", id, err)
	}
	run := &Run{
		ID:           m.ID,
		StartedAt:    m.StartedAt,
		Status:       m.Status,
		Source:       m.Source,
		RowsRead:     m.RowsRead,
		RowsImported: m.RowsImported,
		Error:        m.Error,
	}
	if !m.FinishedAt.IsZero() {
		finished := m.FinishedAt
		run.FinishedAt = &finished
	}
	return run, nil
}

func toRunModel(run *Run) *runModel {
	m := &runModel{
		ID:           run.ID,
		StartedAt:    run.StartedAt,
		Status:       run.Status,
		Source:       run.Source,
		RowsRead:     run.RowsRead,
		RowsImported: run.RowsImported,
		Error:        run.Error,
	}
	if run.FinishedAt != nil {
		m.FinishedAt = *run.FinishedAt
	}
	return m
}
