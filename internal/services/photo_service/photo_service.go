package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/metrics"
	"spotguide/internal/repository"
	"spotguide/internal/storage"
	filestorage "spotguide/internal/storage/filestorage"
	"spotguide/internal/transport/http/dto"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	variantMultipart = "multipart"
	variantJSON      = "json"
)

// Locker reserves hash and path values for the duration of a create.
type Locker interface {
	Acquire(ctx context.Context, keys ...string) (release func(context.Context), err error)
}

type Option func(*PhotoService)

// WithLocker serialises concurrent creates of the same hash or path.
func WithLocker(l Locker) Option {
	return func(s *PhotoService) {
		s.locker = l
	}
}

// WithStrictJSONCreate makes the JSON create reject a missing file_path or
// file_hash instead of storing placeholders.
func WithStrictJSONCreate(strict bool) Option {
	return func(s *PhotoService) {
		s.strictJSON = strict
	}
}

// WithCompensationBackOff sets the retry policy for deleting an orphaned
// blob after a failed insert.
func WithCompensationBackOff(factory func() backoff.BackOff) Option {
	return func(s *PhotoService) {
		s.buildBackOff = factory
	}
}

type PhotoService struct {
	log          *slog.Logger
	repo         repository.PhotoRepository
	fileStorage  filestorage.FileStorage
	locker       Locker
	strictJSON   bool
	buildBackOff func() backoff.BackOff
}

func NewPhotoService(log *slog.Logger, repo repository.PhotoRepository, fileStorage filestorage.FileStorage, opts ...Option) *PhotoService {
	s := &PhotoService{
		log:          log,
		repo:         repo,
		fileStorage:  fileStorage,
		buildBackOff: compensationBackOff,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreatePhoto uploads the file under input.Name and records it. The blob is
// reserved first and the row committed second; if the commit fails the blob
// is deleted again.
func (s *PhotoService) CreatePhoto(ctx context.Context, input dto.PhotoUploadInput) (*models.Photo, error) {
	const op = "photo_service.CreatePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("file_path", input.Name),
		slog.String("file_hash", input.FileHash),
	)

	if err := validateUpload(input); err != nil {
		log.Warn("invalid upload request", sl.Err(err))
		s.count(variantMultipart, err)
		return nil, err
	}

	spotID := input.TemporarySpotID
	if spotID == "" {
		spotID = models.PlaceholderSpotID
	}

	release, err := s.acquire(ctx, input.FileHash, input.Name)
	if err != nil {
		log.Warn("reservation refused", sl.Err(err))
		s.count(variantMultipart, err)
		return nil, err
	}
	defer release(context.WithoutCancel(ctx))

	if err := s.checkUnique(ctx, input.FileHash, input.Name, uuid.Nil); err != nil {
		log.Warn("uniqueness check failed", sl.Err(err))
		s.count(variantMultipart, err)
		return nil, err
	}

	if err := s.reserve(ctx, input); err != nil {
		log.Error("failed to upload file", sl.Err(err))
		s.count(variantMultipart, err)
		return nil, err
	}

	photo := models.NewPhoto(input.Name, input.FileHash, s.fileStorage.PublicURL(input.Name), &spotID)
	if input.Caption != "" {
		photo.Caption = &input.Caption
	}

	created, err := s.commit(ctx, photo)
	if err != nil {
		log.Error("failed to save photo to database", sl.Err(err))
		s.compensate(ctx, log, input.Name)
		s.count(variantMultipart, err)
		return nil, err
	}

	log.Info("photo created", slog.String("photo_id", created.ID.String()))
	s.count(variantMultipart, nil)

	return created, nil
}

// CreatePhotoFromURL records a photo whose blob already lives elsewhere.
// Without strict mode missing fields are filled with placeholders.
func (s *PhotoService) CreatePhotoFromURL(ctx context.Context, fields models.PhotoPatch) (*models.Photo, error) {
	const op = "photo_service.CreatePhotoFromURL"

	log := s.log.With(slog.String("op", op))

	if s.strictJSON {
		var missing []string
		if isBlank(fields.FilePath) {
			missing = append(missing, "file_path")
		}
		if isBlank(fields.FileHash) {
			missing = append(missing, "file_hash")
		}
		if len(missing) > 0 {
			err := models.NewValidationError("Missing required fields: %s.", strings.Join(missing, ", "))
			log.Warn("invalid create request", sl.Err(err))
			s.count(variantJSON, err)
			return nil, err
		}
	}

	filePath := valueOr(fields.FilePath, models.PlaceholderFilePath)
	fileHash := valueOr(fields.FileHash, models.PlaceholderFileHash)
	spotID := valueOr(fields.TemporarySpotID, models.PlaceholderSpotID)

	publicURL := valueOr(fields.PublicURL, "")
	if publicURL == "" && !isBlank(fields.FilePath) {
		publicURL = s.fileStorage.PublicURL(filePath)
	}

	log = log.With(slog.String("file_path", filePath), slog.String("file_hash", fileHash))

	if err := s.checkUnique(ctx, fileHash, filePath, uuid.Nil); err != nil {
		log.Warn("uniqueness check failed", sl.Err(err))
		s.count(variantJSON, err)
		return nil, err
	}

	photo := models.NewPhoto(filePath, fileHash, publicURL, &spotID)
	photo.Caption = fields.Caption

	created, err := s.commit(ctx, photo)
	if err != nil {
		log.Error("failed to save photo to database", sl.Err(err))
		s.count(variantJSON, err)
		return nil, err
	}

	log.Info("photo registered", slog.String("photo_id", created.ID.String()))
	s.count(variantJSON, nil)

	return created, nil
}

// UpdatePhoto applies patch to the photo with id. A new hash or path must
// not belong to any other photo; the photo's own values are allowed.
func (s *PhotoService) UpdatePhoto(ctx context.Context, id uuid.UUID, patch models.PhotoPatch) (*models.Photo, error) {
	const op = "photo_service.UpdatePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	if patch.IsEmpty() {
		return nil, models.NewValidationError("No fields to update.")
	}

	if _, err := s.repo.GetPhotoByID(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrPhotoNotFound) {
			log.Error("failed to load photo", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, classify(err, id, ""))
	}

	if patch.FileHash != nil {
		exists, err := s.repo.ExistsByHash(ctx, *patch.FileHash, id)
		if err != nil {
			log.Error("failed to check file hash", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, models.NewPersistenceError(err))
		}
		if exists {
			return nil, hashConflict(nil)
		}
	}

	if patch.FilePath != nil {
		exists, err := s.repo.ExistsByPath(ctx, *patch.FilePath, id)
		if err != nil {
			log.Error("failed to check file path", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, models.NewPersistenceError(err))
		}
		if exists {
			return nil, pathConflict(*patch.FilePath, nil)
		}
	}

	updated, err := s.repo.UpdatePhoto(ctx, id, patch)
	if err != nil {
		log.Error("failed to update photo", sl.Err(err))
		return nil, classify(err, id, valueOr(patch.FilePath, ""))
	}

	log.Info("photo updated")

	return updated, nil
}

// AssignPhotoToSpot links an uploaded photo to a temporary spot.
func (s *PhotoService) AssignPhotoToSpot(ctx context.Context, id uuid.UUID, spotID string) (*models.Photo, error) {
	if strings.TrimSpace(spotID) == "" {
		return nil, models.NewValidationError("Missing 'temporary_spot_id'.")
	}

	return s.UpdatePhoto(ctx, id, models.PhotoPatch{TemporarySpotID: &spotID})
}

// DeletePhoto removes the metadata row only. The blob is kept.
func (s *PhotoService) DeletePhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "photo_service.DeletePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	deleted, err := s.repo.DeletePhoto(ctx, id)
	if err != nil {
		log.Error("failed to delete photo", sl.Err(err))
		return nil, classify(err, id, "")
	}

	log.Info("photo deleted", slog.String("file_path", deleted.FilePath))

	return deleted, nil
}

func (s *PhotoService) ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error) {
	const op = "photo_service.ListPhotos"

	photos, err := s.repo.ListPhotos(ctx, filter)
	if err != nil {
		s.log.Error("failed to list photos", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, models.NewPersistenceError(err))
	}

	return photos, nil
}

func compensationBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 3 * time.Second
	return b
}

// reserve puts the blob in the object store. The store refuses to overwrite.
func (s *PhotoService) reserve(ctx context.Context, input dto.PhotoUploadInput) error {
	if _, err := s.fileStorage.Upload(ctx, input.Name, input.File); err != nil {
		return models.NewUploadError(err)
	}
	return nil
}

// commit inserts the metadata row. Unique violations from the database are
// reported as conflicts.
func (s *PhotoService) commit(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	created, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		return nil, classify(err, photo.ID, photo.FilePath)
	}
	return created, nil
}

// compensate deletes a blob whose row could not be written. Its own failure
// is only logged so the caller still sees the insert error.
func (s *PhotoService) compensate(ctx context.Context, log *slog.Logger, key string) {
	ctx = context.WithoutCancel(ctx)

	err := backoff.Retry(func() error {
		err := s.fileStorage.Delete(ctx, key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(s.buildBackOff(), ctx))
	if errors.Is(err, storage.ErrObjectNotFound) {
		log.Warn("uploaded file already gone", slog.String("key", key))
		metrics.PhotoCompensationsTotal.WithLabelValues("missing").Inc()
		return
	}
	if err != nil {
		log.Error("failed to delete uploaded file after insert failure", slog.String("key", key), sl.Err(err))
		metrics.PhotoCompensationsTotal.WithLabelValues("failed").Inc()
		return
	}

	log.Info("uploaded file rolled back", slog.String("key", key))
	metrics.PhotoCompensationsTotal.WithLabelValues("deleted").Inc()
}

func (s *PhotoService) checkUnique(ctx context.Context, fileHash, filePath string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByHash(ctx, fileHash, excludeID)
	if err != nil {
		return models.NewPersistenceError(err)
	}
	if exists {
		return hashConflict(nil)
	}

	exists, err = s.repo.ExistsByPath(ctx, filePath, excludeID)
	if err != nil {
		return models.NewPersistenceError(err)
	}
	if exists {
		return pathConflict(filePath, nil)
	}

	return nil
}

func (s *PhotoService) acquire(ctx context.Context, fileHash, filePath string) (func(context.Context), error) {
	if s.locker == nil {
		return func(context.Context) {}, nil
	}

	release, err := s.locker.Acquire(ctx, "hash:"+fileHash, "path:"+filePath)
	if err != nil {
		if errors.Is(err, storage.ErrLockNotHeld) {
			return nil, models.NewConflictError("An upload with the same file_hash or file path is already in progress.", err)
		}
		// the database constraints still hold without the lock
		s.log.Warn("reservation lock unavailable, continuing without it", sl.Err(err))
		return func(context.Context) {}, nil
	}

	return release, nil
}

func (s *PhotoService) count(variant string, err error) {
	result := "created"
	if err != nil {
		result = string(models.KindOf(err))
		if result == "" {
			result = "error"
		}
	}
	metrics.PhotoCreatesTotal.WithLabelValues(variant, result).Inc()
}

func validateUpload(input dto.PhotoUploadInput) error {
	var missing []string
	if input.File == nil {
		missing = append(missing, "file")
	}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.FileHash) == "" {
		missing = append(missing, "file_hash")
	}

	if len(missing) > 0 {
		return models.NewValidationError("Missing required fields: %s.", strings.Join(missing, ", "))
	}

	return nil
}

// classify turns a repository error into the kind the transport layer maps to a status.
func classify(err error, id uuid.UUID, filePath string) error {
	switch {
	case errors.Is(err, storage.ErrPhotoHashExists):
		return hashConflict(err)
	case errors.Is(err, storage.ErrPhotoPathExists):
		return pathConflict(filePath, err)
	case errors.Is(err, storage.ErrPhotoNotFound):
		return models.NewNotFoundError(fmt.Sprintf("Photo '%s' not found.", id), err)
	case errors.Is(err, storage.ErrNoFieldsUpdate):
		return &models.DomainError{Kind: models.KindValidation, Message: "No fields to update.", Err: err}
	default:
		return models.NewPersistenceError(err)
	}
}

func hashConflict(err error) error {
	return models.NewConflictError("A photo with the same file_hash already exists.", err)
}

func pathConflict(filePath string, err error) error {
	return models.NewConflictError(fmt.Sprintf("File path '%s' already exists.", filePath), err)
}

func valueOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func isBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}
