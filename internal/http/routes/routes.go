package routes

import (
	"errors"
	"net/http"

	"journal/internal/http/handler"
	"journal/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// Route is a declarative route definition. The auth requirement travels
// with the definition instead of being applied per call site.
type Route struct {
	Method    string
	Path      string
	Handler   echo.HandlerFunc
	Protected bool
}

// Table builds the full route table of the API.
func Table(authRoutes *handler.DefaultAuthRoute, entryRoutes *handler.DefaultEntryRoute, tagRoutes *handler.DefaultTagRoute) []Route {
	return []Route{
		// Account flows (public)
		{Method: http.MethodPost, Path: "/auth/register", Handler: authRoutes.Register},
		{Method: http.MethodPost, Path: "/auth/verify", Handler: authRoutes.VerifyEmail},
		{Method: http.MethodPost, Path: "/auth/resend-verification", Handler: authRoutes.ResendVerification},
		{Method: http.MethodPost, Path: "/auth/login", Handler: authRoutes.Login},

		// Entries
		{Method: http.MethodGet, Path: "/entries", Handler: entryRoutes.GetEntries, Protected: true},
		{Method: http.MethodPost, Path: "/entries", Handler: entryRoutes.CreateEntry, Protected: true},
		{Method: http.MethodGet, Path: "/entries/search", Handler: entryRoutes.SearchEntries, Protected: true},
		{Method: http.MethodGet, Path: "/entries/:id", Handler: entryRoutes.GetEntry, Protected: true},
		{Method: http.MethodPut, Path: "/entries/:id", Handler: entryRoutes.UpdateEntry, Protected: true},
		{Method: http.MethodDelete, Path: "/entries/:id", Handler: entryRoutes.DeleteEntry, Protected: true},

		// Tags
		{Method: http.MethodGet, Path: "/tags", Handler: tagRoutes.GetTags, Protected: true},
		{Method: http.MethodPost, Path: "/tags", Handler: tagRoutes.CreateTag, Protected: true},
		{Method: http.MethodPut, Path: "/tags/:id", Handler: tagRoutes.UpdateTag, Protected: true},
		{Method: http.MethodDelete, Path: "/tags/:id", Handler: tagRoutes.DeleteTag, Protected: true},

		// Docker Compose healthcheck
		{Method: http.MethodGet, Path: "/health", Handler: healthCheckRoute},
	}
}

// Register applies the table onto the echo instance, wrapping protected
// routes with the auth middleware.
func Register(e *echo.Echo, table []Route, authMiddleware echo.MiddlewareFunc) {
	for _, r := range table {
		if r.Protected {
			e.Add(r.Method, r.Path, r.Handler, authMiddleware)
		} else {
			e.Add(r.Method, r.Path, r.Handler)
		}
	}
}

// ErrorHandler is the single translator for everything that escapes a
// handler, including unmatched routes and unknown methods. Clients always
// get the uniform envelope and never any internal detail.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := apierror.InternalServerError

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			resp = apierror.NotFoundError
		case http.StatusRequestEntityTooLarge:
			resp = apierror.NewSimple(http.StatusRequestEntityTooLarge, "Request body too large")
		}
	}

	if resp == apierror.InternalServerError {
		log.Errorf("unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resp.Code())
		return
	}
	_ = c.JSON(resp.Code(), resp)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
