package repository

import (
	"context"

	"spotguide/internal/domain/models"

	"github.com/google/uuid"
)

type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	GetPhotoByID(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	// ExistsByHash and ExistsByPath ignore the row with excludeID; pass uuid.Nil to check every row.
	ExistsByHash(ctx context.Context, fileHash string, excludeID uuid.UUID) (bool, error)
	ExistsByPath(ctx context.Context, filePath string, excludeID uuid.UUID) (bool, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, patch models.PhotoPatch) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error)
}

type SpotRepository interface {
	SaveSpot(ctx context.Context, spot models.TemporarySpot) (uuid.UUID, error)
	GetSpotByID(ctx context.Context, id uuid.UUID) (*models.TemporarySpot, error)
	GetSpotBySlug(ctx context.Context, slug string) (*models.TemporarySpot, error)
	UpdateSpotFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteSpot(ctx context.Context, id uuid.UUID) error
	GetSpots(ctx context.Context, statusFilter string, page, perPage int) ([]models.TemporarySpot, int, error)
}
