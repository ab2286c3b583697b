package postgresql

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v4/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}

// Migrate applies every embedded migration in file name order. Migrations are
// written to be re-runnable, so there is no version table.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	const op = "storage.postgresql.Migrate"

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sort.Strings(files)

	for _, name := range files {
		body, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("%s: read %s: %w", op, name, err)
		}

		if _, err := db.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("%s: apply %s: %w", op, name, err)
		}
	}

	return nil
}
