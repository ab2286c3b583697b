package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotguide/internal/domain/models"
	"spotguide/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const spotsTable = "temporary_spots"

var spotColumns = []string{
	"id",
	"title",
	"slug",
	"starts_at",
	"ends_at",
	"status",
	"description",
	"category_id",
	"latitude",
	"longitude",
	"created_at",
	"updated_at",
}

type SpotRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSpotRepository(db *pgxpool.Pool) *SpotRepo {
	return &SpotRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SpotRepo) SaveSpot(ctx context.Context, spot models.TemporarySpot) (uuid.UUID, error) {
	const op = "repository.spot_repository.SaveSpot"

	query, args, err := r.sb.Insert(spotsTable).
		Columns(
			"title",
			"slug",
			"starts_at",
			"ends_at",
			"status",
			"description",
			"category_id",
			"latitude",
			"longitude",
		).
		Values(
			spot.Title,
			spot.Slug,
			spot.StartsAt,
			spot.EndsAt,
			string(spot.Status),
			spot.Description,
			spot.CategoryID,
			spot.Latitude,
			spot.Longitude,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, mapSpotError(err))
	}

	return id, nil
}

func (r *SpotRepo) GetSpotByID(ctx context.Context, id uuid.UUID) (*models.TemporarySpot, error) {
	const op = "repository.spot_repository.GetSpotByID"

	return r.getSpot(ctx, op, sq.Eq{"id": id})
}

func (r *SpotRepo) GetSpotBySlug(ctx context.Context, slug string) (*models.TemporarySpot, error) {
	const op = "repository.spot_repository.GetSpotBySlug"

	return r.getSpot(ctx, op, sq.Eq{"slug": slug})
}

func (r *SpotRepo) getSpot(ctx context.Context, op string, where sq.Sqlizer) (*models.TemporarySpot, error) {
	query, args, err := r.sb.Select(spotColumns...).
		From(spotsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build SQL query: %w", op, err)
	}

	spot, err := scanSpot(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapSpotError(err))
	}

	return spot, nil
}

func (r *SpotRepo) UpdateSpotFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.spot_repository.UpdateSpotFields"

	allowedFields := map[string]bool{
		"title":       true,
		"slug":        true,
		"starts_at":   true,
		"ends_at":     true,
		"status":      true,
		"description": true,
		"category_id": true,
		"latitude":    true,
		"longitude":   true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNoFieldsUpdate)
	}

	ub := r.sb.Update(spotsTable).
		Set("updated_at", time.Now().UTC())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		ub = ub.Set(field, value)
	}

	query, args, err := ub.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapSpotError(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSpotNotFound)
	}

	return nil
}

// DeleteSpot removes the row. Photos keep their temporary_spot_id value.
func (r *SpotRepo) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	const op = "repository.spot_repository.DeleteSpot"

	query, args, err := r.sb.Delete(spotsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSpotNotFound)
	}

	return nil
}

// GetSpots returns one page of spots and the total count. An empty status
// filter lists everything except deleted spots.
func (r *SpotRepo) GetSpots(ctx context.Context, statusFilter string, page, perPage int) ([]models.TemporarySpot, int, error) {
	const op = "repository.spot_repository.GetSpots"

	var where sq.Sqlizer = sq.NotEq{"status": string(models.SpotStatusDeleted)}
	if statusFilter != "" {
		where = sq.Eq{"status": statusFilter}
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From(spotsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	query, args, err := r.sb.Select(spotColumns...).
		From(spotsTable).
		Where(where).
		OrderBy("starts_at DESC", "id").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	spots := make([]models.TemporarySpot, 0, perPage)
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		spots = append(spots, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return spots, total, nil
}

func scanSpot(row rowScanner) (*models.TemporarySpot, error) {
	var s models.TemporarySpot
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Slug,
		&s.StartsAt,
		&s.EndsAt,
		&s.Status,
		&s.Description,
		&s.CategoryID,
		&s.Latitude,
		&s.Longitude,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func mapSpotError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrSpotNotFound
	}

	if constraint, ok := uniqueConstraint(err); ok && constraint == "temporary_spots_slug_key" {
		return fmt.Errorf("%w: %v", storage.ErrSpotSlugExists, err)
	}

	return err
}
