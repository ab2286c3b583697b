package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"spotguide/internal/domain/models"
	"spotguide/internal/lib/logger/sl"
	"spotguide/internal/transport/http/dto"
	"spotguide/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// CreateSpot godoc
// @Summary Create a temporary spot
// @Description Creates a spot. The slug is generated from the title when omitted, status defaults to draft.
// @Tags temporary-spots
// @Accept json
// @Produce json
// @Param request body dto.CreateSpotRequest true "Spot data"
// @Success 201 {object} dto.SpotResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots [post]
func (r *Routers) CreateSpot(c echo.Context) error {
	const op = "http.routers.CreateSpot"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateSpotRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Invalid request format.", err.Error()))
	}

	spot, err := r.SpotService.CreateSpot(c.Request().Context(), req)
	if err != nil {
		log.Warn("spot creation failed", sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusCreated, spot)
}

// GetSpot godoc
// @Summary Get a temporary spot
// @Tags temporary-spots
// @Produce json
// @Param id path string true "Spot UUID" format(uuid)
// @Success 200 {object} dto.SpotResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots/{id} [get]
func (r *Routers) GetSpot(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	spot, err := r.SpotService.GetSpotByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spot)
}

// ListSpots godoc
// @Summary List temporary spots
// @Description Pages through spots. Without a status filter deleted spots are hidden.
// @Tags temporary-spots
// @Produce json
// @Param status query string false "draft, published or deleted"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} dto.SpotListResponse
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots [get]
func (r *Routers) ListSpots(c echo.Context) error {
	const op = "http.routers.ListSpots"

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	spots, err := r.SpotService.ListSpots(c.Request().Context(), c.QueryParam("status"), page, perPage)
	if err != nil {
		r.log.Warn("failed to list spots", slog.String("op", op), sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spots)
}

// UpdateSpot godoc
// @Summary Update a temporary spot
// @Tags temporary-spots
// @Accept json
// @Produce json
// @Param id path string true "Spot UUID" format(uuid)
// @Param request body dto.UpdateSpotRequest true "Fields to change"
// @Success 200 {object} dto.SpotResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots/{id} [patch]
func (r *Routers) UpdateSpot(c echo.Context) error {
	const op = "http.routers.UpdateSpot"

	log := r.log.With(
		slog.String("op", op),
	)

	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.UpdateSpotRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Invalid request format.", err.Error()))
	}

	spot, err := r.SpotService.UpdateSpot(c.Request().Context(), id, req)
	if err != nil {
		log.Warn("spot update failed", slog.String("spot_id", id.String()), sl.Err(err))
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spot)
}

// SetSpotStatus godoc
// @Summary Change the status of a temporary spot
// @Description Setting `deleted` hides the spot without removing it.
// @Tags temporary-spots
// @Accept json
// @Produce json
// @Param id path string true "Spot UUID" format(uuid)
// @Param request body dto.SetSpotStatusRequest true "New status"
// @Success 200 {object} dto.SpotResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots/{id}/status [post]
func (r *Routers) SetSpotStatus(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req dto.SetSpotStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("Invalid request format.", err.Error()))
	}

	spot, err := r.SpotService.SetStatus(c.Request().Context(), id, models.SpotStatus(req.Status))
	if err != nil {
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spot)
}

// DeleteSpot godoc
// @Summary Delete a temporary spot
// @Description Removes the row. Linked photos keep their temporary_spot_id.
// @Tags temporary-spots
// @Param id path string true "Spot UUID" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/admin/temporary-spots/{id} [delete]
func (r *Routers) DeleteSpot(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := r.SpotService.DeleteSpot(c.Request().Context(), id); err != nil {
		return writeError(c, err, http.StatusConflict)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPublishedSpot godoc
// @Summary Public spot page data
// @Description Returns a published spot with its photos.
// @Tags public
// @Produce json
// @Param slug path string true "Spot slug"
// @Success 200 {object} dto.SpotResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/temporary-spots/{slug} [get]
func (r *Routers) GetPublishedSpot(c echo.Context) error {
	spot, err := r.SpotService.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spot)
}

// ListPublishedSpots godoc
// @Summary Public list of published spots
// @Tags public
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} dto.SpotListResponse
// @Router /api/v1/temporary-spots [get]
func (r *Routers) ListPublishedSpots(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	spots, err := r.SpotService.ListSpots(c.Request().Context(), string(models.SpotStatusPublished), page, perPage)
	if err != nil {
		return writeError(c, err, http.StatusConflict)
	}

	return c.JSON(http.StatusOK, spots)
}
