package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rajlabs/route-sitemap/internal/models"
)

// Runs written in the same second keep insertion order through seq.
const listRunsQuery = `
        SELECT id, router_file, hostname, output_path, url_count, routes, created_at
        FROM runs
        ORDER BY created_at DESC, seq DESC
        LIMIT $1 OFFSET $2
    `

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id UUID PRIMARY KEY,
            seq BIGSERIAL,
            router_file TEXT NOT NULL,
            hostname VARCHAR(2048) NOT NULL,
            output_path TEXT NOT NULL,
            url_count INTEGER NOT NULL,
            routes TEXT[],
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_hostname ON runs(hostname)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, router_file, hostname, output_path, url_count, routes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.RouterFile,
		run.Hostname,
		run.OutputPath,
		run.URLCount,
		pq.Array(run.Routes),
		run.CreatedAt,
	)

	return err
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id, router_file, hostname, output_path, url_count, routes, created_at
        FROM runs
        WHERE id = $1
    `

	run := &models.Run{}
	var routes []string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.RouterFile,
		&run.Hostname,
		&run.OutputPath,
		&run.URLCount,
		pq.Array(&routes),
		&run.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	run.Routes = routes
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx, listRunsQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var routes []string

		err := rows.Scan(
			&run.ID,
			&run.RouterFile,
			&run.Hostname,
			&run.OutputPath,
			&run.URLCount,
			pq.Array(&routes),
			&run.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		run.Routes = routes
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
