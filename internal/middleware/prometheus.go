package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"spotguide/internal/metrics"

	"github.com/labstack/echo/v4"
)

// PrometheusMetrics records request counts and latency per route template.
func PrometheusMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		duration := time.Since(start).Seconds()

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request().Method,
			path,
			strconv.Itoa(statusOf(c, err)),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request().Method,
			path,
		).Observe(duration)

		return err
	}
}

// statusOf returns the status the error handler will write for err, since
// the response has not been committed yet when a handler returns an error.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}

	return http.StatusInternalServerError
}
