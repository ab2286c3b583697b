package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"spotguide/internal/lib/logger/sl"
	geocode "spotguide/internal/services/geocode_service"
	"spotguide/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ReverseGeocode godoc
// @Summary Reverse geocoding
// @Description Resolves coordinates to an address through the configured upstream. Answers are cached.
// @Tags geocode
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} models.Address
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/geocode/reverse [get]
func (r *Routers) ReverseGeocode(c echo.Context) error {
	const op = "http.routers.ReverseGeocode"

	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if errLat != nil || errLon != nil {
		return c.JSON(http.StatusBadRequest, response.Error("Query parameters 'lat' and 'lon' must be numbers."))
	}

	addr, err := r.GeocodeService.Reverse(c.Request().Context(), lat, lon)
	if err != nil {
		if errors.Is(err, geocode.ErrUpstream) {
			r.log.Error("geocoding upstream failed", slog.String("op", op), sl.Err(err))
			return c.JSON(http.StatusBadGateway, response.Error("Geocoding service unavailable."))
		}
		return writeError(c, err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, addr)
}
