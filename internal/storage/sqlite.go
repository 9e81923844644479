package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rajlabs/route-sitemap/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id TEXT PRIMARY KEY,
            router_file TEXT NOT NULL,
            hostname TEXT NOT NULL,
            output_path TEXT NOT NULL,
            url_count INTEGER NOT NULL,
            routes TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}

	return nil
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
        INSERT INTO runs (id, router_file, hostname, output_path, url_count, routes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	routesJSON, err := json.Marshal(run.Routes)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		run.ID.String(),
		run.RouterFile,
		run.Hostname,
		run.OutputPath,
		run.URLCount,
		string(routesJSON),
		run.CreatedAt,
	)

	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query := `
        SELECT id, router_file, hostname, output_path, url_count, routes, created_at
        FROM runs
        WHERE id = ?
    `

	runs, err := s.queryRuns(ctx, query, id.String())
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}

	return runs[0], nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error) {
	query := `
        SELECT id, router_file, hostname, output_path, url_count, routes, created_at
        FROM runs
        ORDER BY created_at DESC, rowid DESC
        LIMIT ? OFFSET ?
    `

	return s.queryRuns(ctx, query, limit, offset)
}

func (s *SQLiteStore) queryRuns(ctx context.Context, query string, args ...interface{}) ([]*models.Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run := &models.Run{}
		var idStr string
		var routesJSON sql.NullString

		err := rows.Scan(
			&idStr,
			&run.RouterFile,
			&run.Hostname,
			&run.OutputPath,
			&run.URLCount,
			&routesJSON,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		run.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid run id %q: %w", idStr, err)
		}
		if routesJSON.Valid {
			if err := json.Unmarshal([]byte(routesJSON.String), &run.Routes); err != nil {
				return nil, fmt.Errorf("invalid routes for run %s: %w", idStr, err)
			}
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
