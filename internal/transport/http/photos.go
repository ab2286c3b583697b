package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/transport/http/dto"
	"spotguide/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListPhotos godoc
// @Summary List photos
// @Description Returns every photo record, newest first. Listing is read-only and repeatable.
// @Tags photos
// @Produce json
// @Param temporary_spot_id query string false "Only photos linked to this spot"
// @Success 200 {array} models.Photo
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos [get]
func (r *Routers) ListPhotos(c echo.Context) error {
	const op = "http.routers.ListPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	photos, err := r.PhotoService.ListPhotos(c.Request().Context(), models.PhotoFilter{
		TemporarySpotID: c.QueryParam("temporary_spot_id"),
	})
	if err != nil {
		log.Error("failed to list photos", sl.Err(err))
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, photos)
}

// CreatePhoto godoc
// @Summary Upload or register a photo
// @Description multipart/form-data uploads the file under `name` and records it.
// @Description A JSON body registers an already hosted photo; missing file_path, file_hash and temporary_spot_id
// @Description get placeholder values unless strict mode is enabled. Legacy `name` and `url` keys are accepted.
// @Tags photos
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Image file (multipart only)"
// @Param name formData string false "Storage key, becomes file_path (multipart only)"
// @Param file_hash formData string false "Content hash (multipart only)"
// @Param temporary_spot_id formData string false "Spot to link, defaults to temp_spot_id"
// @Param caption formData string false "Caption"
// @Param request body dto.CreatePhotoRequest false "JSON variant"
// @Success 201 {object} models.Photo
// @Failure 400 {object} response.ErrorResponse "Validation, upload or database error; conflicts on the JSON variant"
// @Failure 409 {object} response.ErrorResponse "Duplicate file_hash or file path (multipart)"
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos [post]
func (r *Routers) CreatePhoto(c echo.Context) error {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return r.createPhotoMultipart(c)
	}
	return r.createPhotoJSON(c)
}

func (r *Routers) createPhotoMultipart(c echo.Context) error {
	const op = "http.routers.createPhotoMultipart"

	log := r.log.With(
		slog.String("op", op),
	)

	input := dto.PhotoUploadInput{
		Name:            c.FormValue("name"),
		FileHash:        c.FormValue("file_hash"),
		TemporarySpotID: c.FormValue("temporary_spot_id"),
		Caption:         c.FormValue("caption"),
	}

	file, err := c.FormFile("file")
	switch {
	case err == nil:
		input.File = file
	case errors.Is(err, http.ErrMissingFile):
		// reported by the service together with the other missing fields
	default:
		log.Warn("failed to read multipart form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	photo, err := r.PhotoService.CreatePhoto(c.Request().Context(), input)
	if err != nil {
		log.Warn("photo upload failed", slog.String("name", input.Name), sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	log.Info("photo uploaded", slog.String("photo_id", photo.ID.String()))

	return c.JSON(http.StatusCreated, photo)
}

func (r *Routers) createPhotoJSON(c echo.Context) error {
	const op = "http.routers.createPhotoJSON"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePhotoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Invalid request format.", err.Error()))
	}

	photo, err := r.PhotoService.CreatePhotoFromURL(c.Request().Context(), req.ToPatch())
	if err != nil {
		log.Warn("photo registration failed", sl.Err(err))
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusCreated, photo)
}

// UpdatePhoto godoc
// @Summary Update a photo
// @Description Partially updates a photo identified by `id` in the body. Legacy `name` and `url` keys are accepted.
// @Tags photos
// @Accept json
// @Produce json
// @Param request body dto.UpdatePhotoRequest true "Fields to change"
// @Success 200 {object} models.Photo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos [patch]
func (r *Routers) UpdatePhoto(c echo.Context) error {
	const op = "http.routers.UpdatePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UpdatePhotoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if strings.TrimSpace(req.ID) == "" {
		return c.JSON(http.StatusBadRequest, response.ErrMissingUpdateID)
	}

	id, ok := parseID(req.ID)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Invalid request format.", err.Error()))
	}

	photo, err := r.PhotoService.UpdatePhoto(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		log.Warn("photo update failed", slog.String("photo_id", id.String()), sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, photo)
}

// DeletePhoto godoc
// @Summary Delete a photo record
// @Description Removes the metadata row and returns it. The stored file is kept.
// @Tags photos
// @Produce json
// @Param id query string true "Photo UUID" format(uuid)
// @Success 200 {object} models.Photo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	raw := c.QueryParam("id")
	if strings.TrimSpace(raw) == "" {
		return c.JSON(http.StatusBadRequest, response.ErrMissingDeleteID)
	}

	id, ok := parseID(raw)
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	photo, err := r.PhotoService.DeletePhoto(c.Request().Context(), id)
	if err != nil {
		log.Warn("photo delete failed", slog.String("photo_id", id.String()), sl.Err(err))
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, photo)
}

// AssignPhoto godoc
// @Summary Link a photo to a temporary spot
// @Tags photos
// @Accept json
// @Produce json
// @Param id path string true "Photo UUID" format(uuid)
// @Param request body dto.AssignPhotoRequest true "Target spot"
// @Success 200 {object} models.Photo
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/photos/{id}/assign [post]
func (r *Routers) AssignPhoto(c echo.Context) error {
	const op = "http.routers.AssignPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.AssignPhotoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Missing 'temporary_spot_id'.", err.Error()))
	}

	photo, err := r.PhotoService.AssignPhotoToSpot(c.Request().Context(), id, req.TemporarySpotID)
	if err != nil {
		log.Warn("photo assignment failed", slog.String("photo_id", id.String()), sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, photo)
}
