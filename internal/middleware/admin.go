package middleware

import (
	"net/http"

	"spotguide/internal/transport/http/dto/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ContextKeyUser is where echo-jwt stores the parsed token.
const ContextKeyUser = "user"

// RequireRole lets the request through only if the JWT parsed by echo-jwt
// carries role, either as a "role" string or inside a "roles" list.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(ContextKeyUser).(*jwt.Token)
			if !ok || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("authentication required", ""))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !hasRole(claims, role) {
				return c.JSON(http.StatusForbidden, response.ErrorResponseWithDetails("admin access required", ""))
			}

			return next(c)
		}
	}
}

func hasRole(claims jwt.MapClaims, role string) bool {
	if r, ok := claims["role"].(string); ok && r == role {
		return true
	}

	roles, ok := claims["roles"].([]interface{})
	if !ok {
		return false
	}

	for _, r := range roles {
		if s, ok := r.(string); ok && s == role {
			return true
		}
	}

	return false
}
