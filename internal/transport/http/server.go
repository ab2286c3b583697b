package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/transport/http/dto"
	"spotguide/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "spotguide/docs"
)

type PhotoService interface {
	CreatePhoto(ctx context.Context, input dto.PhotoUploadInput) (*models.Photo, error)
	CreatePhotoFromURL(ctx context.Context, fields models.PhotoPatch) (*models.Photo, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, patch models.PhotoPatch) (*models.Photo, error)
	AssignPhotoToSpot(ctx context.Context, id uuid.UUID, spotID string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, error)
}

type SpotService interface {
	CreateSpot(ctx context.Context, req dto.CreateSpotRequest) (*dto.SpotResponse, error)
	UpdateSpot(ctx context.Context, id uuid.UUID, req dto.UpdateSpotRequest) (*dto.SpotResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.SpotStatus) (*dto.SpotResponse, error)
	GetSpotByID(ctx context.Context, id uuid.UUID) (*dto.SpotResponse, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*dto.SpotResponse, error)
	ListSpots(ctx context.Context, statusFilter string, page, perPage int) (*dto.SpotListResponse, error)
	DeleteSpot(ctx context.Context, id uuid.UUID) error
}

type GeocodeService interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.Address, error)
}

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type Routers struct {
	log            *slog.Logger
	PhotoService   PhotoService
	SpotService    SpotService
	GeocodeService GeocodeService
	checks         map[string]Pinger
}

func NewRouter(log *slog.Logger, photoService PhotoService, spotService SpotService, geocodeService GeocodeService) *Routers {
	return &Routers{
		log:            log,
		PhotoService:   photoService,
		SpotService:    spotService,
		GeocodeService: geocodeService,
		checks:         make(map[string]Pinger),
	}
}

// AddHealthCheck registers a dependency reported by the /health endpoint.
func (r *Routers) AddHealthCheck(name string, p Pinger) {
	r.checks[name] = p
}

// Health godoc
// @Summary Service health
// @Description Pings the database and, when configured, Redis.
// @Tags system
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 503 {object} response.Response{data=map[string]string}
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	const op = "http.routers.Health"

	status := http.StatusOK
	result := make(map[string]string, len(r.checks))

	for name, check := range r.checks {
		if err := check.Ping(c.Request().Context()); err != nil {
			r.log.Warn("health check failed", slog.String("op", op), slog.String("dependency", name), sl.Err(err))
			result[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		result[name] = "up"
	}

	resp := response.SuccessResponse(result)
	if status != http.StatusOK {
		resp.Status = "error"
	}

	return c.JSON(status, resp)
}

// statusFor maps a service error to an HTTP status. Conflicts use the
// status the calling endpoint documents.
func statusFor(err error, conflictStatus int) int {
	switch models.KindOf(err) {
	case models.KindValidation, models.KindUpload, models.KindPersistence:
		return http.StatusBadRequest
	case models.KindConflict:
		return conflictStatus
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as the standard error body. Only domain errors
// expose their message.
func writeError(c echo.Context, err error, conflictStatus int) error {
	status := statusFor(err, conflictStatus)

	var de *models.DomainError
	if !errors.As(err, &de) {
		return c.JSON(status, response.ErrInternal)
	}

	return c.JSON(status, response.Error(de.Error()))
}

func parseID(raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
