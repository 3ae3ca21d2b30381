package middleware

import (
	"strings"

	"journal/internal/auth"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

type AuthMiddlewareConfig struct {
	// JWTSecret verifies session token signatures. Validation is purely
	// computational; there is no user lookup on the hot path.
	JWTSecret []byte
}

// NewAuthMiddleware gates protected routes behind a Bearer token. On success
// the decoded identity is attached to the request context; wrapped handlers
// trust the context and never re-verify the token.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				return c.JSON(apierror.AuthRequiredError.Code(), apierror.AuthRequiredError)
			}

			tokenData, err := auth.ParseToken(strings.TrimPrefix(header, bearerPrefix), cfg.JWTSecret)
			if err != nil {
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			c.Set(utils.ContextUserKey, tokenData)
			return next(c)
		}
	}
}
