package utils

import (
	"journal/internal/auth"
	"journal/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// ContextUserKey is where the auth middleware stores the decoded identity.
const ContextUserKey = "user"

func GetUserFromContext(c echo.Context) (*auth.TokenData, apierror.ErrorResponse) {
	val := c.Get(ContextUserKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil user from context", c.Request().URL)
		return nil, apierror.AuthRequiredError
	}

	user, ok := val.(*auth.TokenData)
	if !ok {
		log.Warnf("expected token data at '%s' context key, got %v", ContextUserKey, val)
		return nil, apierror.InternalServerError
	}
	return user, nil
}
