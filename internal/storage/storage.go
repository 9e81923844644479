package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rajlabs/route-sitemap/internal/models"
)

type Store interface {
	Initialize() error
	Close() error

	// Run history operations
	CreateRun(ctx context.Context, run *models.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.Run, error)
	ListRuns(ctx context.Context, limit, offset int) ([]*models.Run, error)
}

// Open picks a Store implementation from the database URL. postgres:// and
// postgresql:// URLs use Postgres; anything else is a SQLite file path.
// The returned store is already initialized.
func Open(databaseURL string) (Store, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is empty")
	}

	var (
		store Store
		err   error
	)

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		store, err = NewPostgresStore(databaseURL)
	} else {
		store, err = NewSQLiteStore(databaseURL)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
