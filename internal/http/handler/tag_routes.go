package handler

import (
	"net/http"

	"journal/internal/auth"
	"journal/internal/service"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type TagService interface {
	GetTags(actor *auth.TokenData) ([]*service.TagResponse, apierror.ErrorResponse)
	CreateTag(actor *auth.TokenData, req *service.CreateTagRequest) (*service.TagResponse, apierror.ErrorResponse)
	UpdateTag(actor *auth.TokenData, tagID string, req *service.UpdateTagRequest) apierror.ErrorResponse
	DeleteTag(actor *auth.TokenData, tagID string) apierror.ErrorResponse
}

type DefaultTagRoute struct {
	TagService TagService
}

func NewTagDefault(tagService TagService) *DefaultTagRoute {
	return &DefaultTagRoute{TagService: tagService}
}

func (t *DefaultTagRoute) GetTags(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	tags, apierr := t.TagService.GetTags(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tags": tags}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTagRoute) CreateTag(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req service.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	tag, apierr := t.TagService.CreateTag(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"tag": tag}
	return c.JSON(http.StatusCreated, &resp)
}

func (t *DefaultTagRoute) UpdateTag(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req service.UpdateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	if apierr := t.TagService.UpdateTag(user, c.Param("id"), &req); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Tag updated"}
	return c.JSON(http.StatusOK, &resp)
}

func (t *DefaultTagRoute) DeleteTag(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if apierr := t.TagService.DeleteTag(user, c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Tag deleted"}
	return c.JSON(http.StatusOK, &resp)
}
