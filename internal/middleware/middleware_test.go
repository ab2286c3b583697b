package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name   string
		token  *jwt.Token
		status int
	}{
		{
			name:   "no token",
			status: http.StatusUnauthorized,
		},
		{
			name:   "role claim",
			token:  &jwt.Token{Valid: true, Claims: jwt.MapClaims{"role": "admin"}},
			status: http.StatusOK,
		},
		{
			name:   "roles list",
			token:  &jwt.Token{Valid: true, Claims: jwt.MapClaims{"roles": []interface{}{"editor", "admin"}}},
			status: http.StatusOK,
		},
		{
			name:   "wrong role",
			token:  &jwt.Token{Valid: true, Claims: jwt.MapClaims{"role": "editor"}},
			status: http.StatusForbidden,
		},
		{
			name:   "invalid token",
			token:  &jwt.Token{Valid: false, Claims: jwt.MapClaims{"role": "admin"}},
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if tt.token != nil {
				c.Set(ContextKeyUser, tt.token)
			}

			err := RequireRole("admin")(okHandler)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestStatusOf(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusNotFound, statusOf(c, echo.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusOf(c, errors.New("boom")))

	require.NoError(t, c.NoContent(http.StatusCreated))
	assert.Equal(t, http.StatusCreated, statusOf(c, nil))
}
