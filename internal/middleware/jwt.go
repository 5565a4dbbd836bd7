package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rapsplay/console-rental/internal/utils"
)

// JWTAuth validates a Bearer access token and injects the caller's
// identity into the request context. Handlers behind it read the
// authenticated account via c.Get("user_id") (uint64) and
// c.Get("is_admin") (bool).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("is_admin", claims.IsAdmin)
			return next(c)
		}
	}
}

// OptionalJWTAuth injects the caller's identity when a valid Bearer
// token is present and lets the request through anonymously otherwise.
// For endpoints that serve both guests and signed-in users.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw := strings.TrimPrefix(auth, "Bearer ")
				if claims, err := utils.VerifyAccessToken(secret, raw); err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("is_admin", claims.IsAdmin)
				}
			}
			return next(c)
		}
	}
}
