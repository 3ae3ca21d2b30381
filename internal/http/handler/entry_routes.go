package handler

import (
	"net/http"
	"strings"

	"journal/internal/auth"
	"journal/internal/service"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type EntryService interface {
	GetEntries(actor *auth.TokenData, filter *service.ListEntriesFilter) ([]*service.EntryResponse, apierror.ErrorResponse)
	GetEntry(actor *auth.TokenData, entryID string) (*service.EntryResponse, apierror.ErrorResponse)
	CreateEntry(actor *auth.TokenData, req *service.CreateEntryRequest) (*service.EntryResponse, apierror.ErrorResponse)
	UpdateEntry(actor *auth.TokenData, entryID string, req *service.UpdateEntryRequest) apierror.ErrorResponse
	DeleteEntry(actor *auth.TokenData, entryID string) apierror.ErrorResponse
	SearchEntries(actor *auth.TokenData, query string) ([]*service.EntrySearchResult, apierror.ErrorResponse)
}

type DefaultEntryRoute struct {
	EntryService EntryService
}

func NewEntryDefault(entryService EntryService) *DefaultEntryRoute {
	return &DefaultEntryRoute{EntryService: entryService}
}

func (e *DefaultEntryRoute) GetEntries(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	filter := &service.ListEntriesFilter{
		TagID:        strings.TrimSpace(c.QueryParam("tag")),
		FavoriteOnly: c.QueryParam("favorite") == "true",
	}

	entries, apierr := e.EntryService.GetEntries(user, filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entries": entries}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEntryRoute) GetEntry(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	entry, apierr := e.EntryService.GetEntry(user, c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entry": entry}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEntryRoute) CreateEntry(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req service.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	entry, apierr := e.EntryService.CreateEntry(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entry": entry}
	return c.JSON(http.StatusCreated, &resp)
}

func (e *DefaultEntryRoute) UpdateEntry(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req service.UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := e.EntryService.UpdateEntry(user, c.Param("id"), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Entry updated"}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEntryRoute) DeleteEntry(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := e.EntryService.DeleteEntry(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Entry deleted"}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEntryRoute) SearchEntries(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	results, apierr := e.EntryService.SearchEntries(user, c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entries": results}
	return c.JSON(http.StatusOK, &resp)
}
