package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spotguide/internal/domain/models"
	"spotguide/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const photosTable = "photos"

var photoColumns = []string{
	"id",
	"file_path",
	"file_hash",
	"public_url",
	"caption",
	"temporary_spot_id",
	"created_at",
}

type PhotoRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PhotoRepo) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "repository.photo_repository.CreatePhoto"

	query, args, err := r.sb.Insert(photosTable).
		Columns(photoColumns...).
		Values(
			photo.ID,
			photo.FilePath,
			photo.FileHash,
			photo.PublicURL,
			photo.Caption,
			photo.TemporarySpotID,
			photo.CreatedAt,
		).
		Suffix(returning(photoColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPhotoError(err))
	}

	return created, nil
}

func (r *PhotoRepo) GetPhotoByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "repository.photo_repository.GetPhotoByID"

	query, args, err := r.sb.Select(photoColumns...).
		From(photosTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	photo, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPhotoError(err))
	}

	return photo, nil
}

func (r *PhotoRepo) ExistsByHash(ctx context.Context, fileHash string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "file_hash", fileHash, excludeID)
}

func (r *PhotoRepo) ExistsByPath(ctx context.Context, filePath string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "file_path", filePath, excludeID)
}

func (r *PhotoRepo) exists(ctx context.Context, column, value string, excludeID uuid.UUID) (bool, error) {
	const op = "repository.photo_repository.exists"

	where := sq.And{sq.Eq{column: value}}
	if excludeID != uuid.Nil {
		where = append(where, sq.NotEq{"id": excludeID})
	}

	sub, args, err := r.sb.Select("1").From(photosTable).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *PhotoRepo) UpdatePhoto(ctx context.Context, id uuid.UUID, patch models.PhotoPatch) (*models.Photo, error) {
	const op = "repository.photo_repository.UpdatePhoto"

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNoFieldsUpdate)
	}

	ub := r.sb.Update(photosTable)
	if patch.FilePath != nil {
		ub = ub.Set("file_path", *patch.FilePath)
	}
	if patch.FileHash != nil {
		ub = ub.Set("file_hash", *patch.FileHash)
	}
	if patch.PublicURL != nil {
		ub = ub.Set("public_url", *patch.PublicURL)
	}
	if patch.Caption != nil {
		ub = ub.Set("caption", *patch.Caption)
	}
	if patch.TemporarySpotID != nil {
		if *patch.TemporarySpotID == "" {
			ub = ub.Set("temporary_spot_id", nil)
		} else {
			ub = ub.Set("temporary_spot_id", *patch.TemporarySpotID)
		}
	}

	query, args, err := ub.Where(sq.Eq{"id": id}).
		Suffix(returning(photoColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	updated, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPhotoError(err))
	}

	return updated, nil
}

// DeletePhoto removes the row and returns it. The blob stays in the object store.
func (r *PhotoRepo) DeletePhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "repository.photo_repository.DeletePhoto"

	query, args, err := r.sb.Delete(photosTable).
		Where(sq.Eq{"id": id}).
		Suffix(returning(photoColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	deleted, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapPhotoError(err))
	}

	return deleted, nil
}

func (r *PhotoRepo) ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error) {
	const op = "repository.photo_repository.ListPhotos"

	qb := r.sb.Select(photoColumns...).
		From(photosTable).
		OrderBy("created_at DESC", "id")

	if filter.TemporarySpotID != "" {
		qb = qb.Where(sq.Eq{"temporary_spot_id": filter.TemporarySpotID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		photos = append(photos, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return photos, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(row rowScanner) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(
		&p.ID,
		&p.FilePath,
		&p.FileHash,
		&p.PublicURL,
		&p.Caption,
		&p.TemporarySpotID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func mapPhotoError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrPhotoNotFound
	}

	if constraint, ok := uniqueConstraint(err); ok {
		switch constraint {
		case "photos_file_hash_key":
			return fmt.Errorf("%w: %v", storage.ErrPhotoHashExists, err)
		case "photos_file_path_key":
			return fmt.Errorf("%w: %v", storage.ErrPhotoPathExists, err)
		}
	}

	return err
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}
