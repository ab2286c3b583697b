package repository

import (
	"context"
	"errors"
	"fmt"

	"spotguide/internal/storage/postgresql"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolation = "23505"

type Repository struct {
	db    *pgxpool.Pool
	Photo PhotoRepository
	Spot  SpotRepository
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	db, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewRepositoryFromPool(db), nil
}

func NewRepositoryFromPool(db *pgxpool.Pool) *Repository {
	return &Repository{
		db:    db,
		Photo: NewPhotoRepository(db),
		Spot:  NewSpotRepository(db),
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	return postgresql.Migrate(ctx, r.db)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Close() {
	r.db.Close()
}

// uniqueConstraint returns the violated constraint name when err is a
// unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
