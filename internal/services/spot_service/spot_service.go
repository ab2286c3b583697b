package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/repository"
	"spotguide/internal/storage"
	"spotguide/internal/transport/http/dto"

	"github.com/google/uuid"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

type SpotService struct {
	log    *slog.Logger
	repo   repository.SpotRepository
	photos repository.PhotoRepository
	now    func() time.Time
}

func NewSpotService(log *slog.Logger, repo repository.SpotRepository, photos repository.PhotoRepository) *SpotService {
	return &SpotService{
		log:    log,
		repo:   repo,
		photos: photos,
		now:    time.Now,
	}
}

// CreateSpot stores a new spot. The slug is derived from the title when
// empty, and a taken slug is retried once with a unique suffix.
func (s *SpotService) CreateSpot(ctx context.Context, req dto.CreateSpotRequest) (*dto.SpotResponse, error) {
	const op = "spot_service.CreateSpot"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	spot := models.TemporarySpot{
		Title:       strings.TrimSpace(req.Title),
		Slug:        req.Slug,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      models.SpotStatus(req.Status),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if spot.Slug == "" {
		spot.Slug = generateSlug(spot.Title)
		log.Debug("generated slug", slog.String("slug", spot.Slug))
	}

	if spot.Status == "" {
		spot.Status = models.SpotStatusDraft
	}

	if err := spot.Validate(); err != nil {
		log.Warn("invalid spot", sl.Err(err))
		return nil, err
	}

	id, err := s.repo.SaveSpot(ctx, spot)
	if errors.Is(err, storage.ErrSpotSlugExists) {
		log.Warn("slug conflict detected, generating unique slug", slog.String("slug", spot.Slug))
		spot.Slug = generateUniqueSlug(spot.Slug)
		id, err = s.repo.SaveSpot(ctx, spot)
	}
	if err != nil {
		log.Error("failed to create spot", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, classifySpotError(err, spot.Slug))
	}

	log.Info("spot created", slog.String("spot_id", id.String()))

	return s.toSpotResponse(ctx, id)
}

// UpdateSpot applies the non-nil fields of req. The merged spot is validated
// before anything is written.
func (s *SpotService) UpdateSpot(ctx context.Context, id uuid.UUID, req dto.UpdateSpotRequest) (*dto.SpotResponse, error) {
	const op = "spot_service.UpdateSpot"

	log := s.log.With(
		slog.String("op", op),
		slog.String("spot_id", id.String()),
	)

	existing, err := s.repo.GetSpotByID(ctx, id)
	if err != nil {
		log.Error("failed to get spot", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, classifySpotError(err, ""))
	}

	merged := *existing
	updates := make(map[string]interface{})

	if req.Title != nil {
		merged.Title = strings.TrimSpace(*req.Title)
		updates["title"] = merged.Title
	}
	if req.Slug != nil {
		merged.Slug = *req.Slug
		if merged.Slug == "" {
			merged.Slug = generateSlug(merged.Title)
			log.Debug("generated new slug", slog.String("slug", merged.Slug))
		}
		updates["slug"] = merged.Slug
	}
	if req.StartsAt != nil {
		merged.StartsAt = *req.StartsAt
		updates["starts_at"] = merged.StartsAt
	}
	if req.EndsAt != nil {
		merged.EndsAt = *req.EndsAt
		updates["ends_at"] = merged.EndsAt
	}
	if req.Status != nil {
		merged.Status = models.SpotStatus(*req.Status)
		updates["status"] = string(merged.Status)
	}
	if req.Description != nil {
		merged.Description = *req.Description
		updates["description"] = merged.Description
	}
	if req.CategoryID != nil {
		merged.CategoryID = req.CategoryID
		updates["category_id"] = *req.CategoryID
	}
	if req.Latitude != nil {
		merged.Latitude = req.Latitude
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		merged.Longitude = req.Longitude
		updates["longitude"] = *req.Longitude
	}

	if len(updates) == 0 {
		return nil, models.NewValidationError("No fields to update.")
	}

	if err := merged.Validate(); err != nil {
		log.Warn("invalid spot update", sl.Err(err))
		return nil, err
	}

	if err := s.repo.UpdateSpotFields(ctx, id, updates); err != nil {
		log.Error("failed to update spot", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, classifySpotError(err, merged.Slug))
	}

	log.Info("spot updated")

	return s.toSpotResponse(ctx, id)
}

// SetStatus moves a spot between draft, published and deleted. Deleted is a
// soft delete: the row stays and is hidden from default listings.
func (s *SpotService) SetStatus(ctx context.Context, id uuid.UUID, status models.SpotStatus) (*dto.SpotResponse, error) {
	const op = "spot_service.SetStatus"

	log := s.log.With(
		slog.String("op", op),
		slog.String("spot_id", id.String()),
		slog.String("status", string(status)),
	)

	if !status.Valid() {
		return nil, models.NewValidationError("invalid status '%s', must be one of: draft, published, deleted", status)
	}

	if err := s.repo.UpdateSpotFields(ctx, id, map[string]interface{}{"status": string(status)}); err != nil {
		log.Error("failed to set spot status", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, classifySpotError(err, ""))
	}

	log.Info("spot status changed")

	return s.toSpotResponse(ctx, id)
}

func (s *SpotService) GetSpotByID(ctx context.Context, id uuid.UUID) (*dto.SpotResponse, error) {
	const op = "spot_service.GetSpotByID"

	resp, err := s.toSpotResponse(ctx, id)
	if err != nil {
		s.log.Error("failed to get spot", slog.String("op", op), slog.String("spot_id", id.String()), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

// GetPublishedBySlug is the public view of a spot. Drafts and deleted spots
// are reported as not found. Linked photos are included.
func (s *SpotService) GetPublishedBySlug(ctx context.Context, slug string) (*dto.SpotResponse, error) {
	const op = "spot_service.GetPublishedBySlug"

	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	spot, err := s.repo.GetSpotBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, storage.ErrSpotNotFound) {
			log.Error("failed to get spot", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, classifySpotError(err, slug))
	}

	if spot.Status != models.SpotStatusPublished {
		return nil, models.NewNotFoundError(fmt.Sprintf("Spot '%s' not found.", slug), storage.ErrSpotNotFound)
	}

	photos, err := s.photos.ListPhotos(ctx, models.PhotoFilter{TemporarySpotID: spot.ID.String()})
	if err != nil {
		log.Error("failed to list spot photos", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, models.NewPersistenceError(err))
	}
	spot.Photos = photos

	return s.mapToSpotResponse(spot), nil
}

// ListSpots returns one page of spots. Out-of-range paging values fall back
// to the defaults.
func (s *SpotService) ListSpots(ctx context.Context, statusFilter string, page, perPage int) (*dto.SpotListResponse, error) {
	const op = "spot_service.ListSpots"

	log := s.log.With(
		slog.String("op", op),
		slog.String("status_filter", statusFilter),
		slog.Int("page", page),
		slog.Int("per_page", perPage),
	)

	if statusFilter != "" && !models.SpotStatus(statusFilter).Valid() {
		return nil, models.NewValidationError("invalid status filter '%s'", statusFilter)
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	spots, total, err := s.repo.GetSpots(ctx, statusFilter, page, perPage)
	if err != nil {
		log.Error("failed to list spots", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, models.NewPersistenceError(err))
	}

	response := &dto.SpotListResponse{
		Spots:      make([]dto.SpotResponse, 0, len(spots)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}

	for i := range spots {
		response.Spots = append(response.Spots, *s.mapToSpotResponse(&spots[i]))
	}

	log.Debug("spots listed", slog.Int("count", len(spots)))

	return response, nil
}

// DeleteSpot removes the spot row. Photos linked to it are left untouched.
func (s *SpotService) DeleteSpot(ctx context.Context, id uuid.UUID) error {
	const op = "spot_service.DeleteSpot"

	log := s.log.With(
		slog.String("op", op),
		slog.String("spot_id", id.String()),
	)

	if err := s.repo.DeleteSpot(ctx, id); err != nil {
		log.Error("failed to delete spot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, classifySpotError(err, ""))
	}

	log.Info("spot deleted")

	return nil
}

var nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// generateSlug keeps letters and digits of any script. A title with none
// gets a random slug.
func generateSlug(title string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return "spot-" + uuid.NewString()[:8]
	}
	return slug
}

func generateUniqueSlug(base string) string {
	return fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
}

func classifySpotError(err error, slug string) error {
	switch {
	case errors.Is(err, storage.ErrSpotNotFound):
		return models.NewNotFoundError("Spot not found.", err)
	case errors.Is(err, storage.ErrSpotSlugExists):
		return models.NewConflictError(fmt.Sprintf("Slug '%s' already exists.", slug), err)
	case errors.Is(err, storage.ErrNoFieldsUpdate):
		return &models.DomainError{Kind: models.KindValidation, Message: "No fields to update.", Err: err}
	default:
		return models.NewPersistenceError(err)
	}
}

func (s *SpotService) toSpotResponse(ctx context.Context, id uuid.UUID) (*dto.SpotResponse, error) {
	spot, err := s.repo.GetSpotByID(ctx, id)
	if err != nil {
		return nil, classifySpotError(err, "")
	}
	return s.mapToSpotResponse(spot), nil
}

func (s *SpotService) mapToSpotResponse(spot *models.TemporarySpot) *dto.SpotResponse {
	return &dto.SpotResponse{
		ID:          spot.ID,
		Title:       spot.Title,
		Slug:        spot.Slug,
		StartsAt:    spot.StartsAt,
		EndsAt:      spot.EndsAt,
		Status:      string(spot.Status),
		Description: spot.Description,
		CategoryID:  spot.CategoryID,
		Latitude:    spot.Latitude,
		Longitude:   spot.Longitude,
		Active:      spot.IsActive(s.now()),
		CreatedAt:   spot.CreatedAt,
		UpdatedAt:   spot.UpdatedAt,
		Photos:      spot.Photos,
	}
}
