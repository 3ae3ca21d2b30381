package service

import (
	"net/http"

	"journal/internal/auth"
	"journal/internal/domain/entity"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type TagRepository interface {
	FindAllByUser(userID string) ([]*entity.Tag, error)
	FindByIDAndUser(id, userID string) (*entity.Tag, error)
	FindByUserAndName(userID, name string) (*entity.Tag, error)
	Insert(tag *entity.Tag) error
	Save(tag *entity.Tag) error
	Delete(tag *entity.Tag) error
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type TagResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

type TagService struct {
	TagRepo   TagRepository
	EntryRepo EntryRepository
	Validate  *validator.Validate
}

func NewTagService(tagRepo TagRepository, entryRepo EntryRepository, validate *validator.Validate) *TagService {
	return &TagService{
		TagRepo:   tagRepo,
		EntryRepo: entryRepo,
		Validate:  validate,
	}
}

// GetTags lists the caller's tags, name ascending.
func (s *TagService) GetTags(actor *auth.TokenData) ([]*TagResponse, apierror.ErrorResponse) {
	tags, err := s.TagRepo.FindAllByUser(actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch tags for user %s: %v", actor.UserID, err)
		return nil, apierror.FetchTagsError
	}

	resp := make([]*TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = toTagResponse(tag)
	}
	return resp, nil
}

// CreateTag enforces per-user, case-insensitive name uniqueness and applies
// the default color when none is given.
func (s *TagService) CreateTag(actor *auth.TokenData, req *CreateTagRequest) (*TagResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	existing, err := s.TagRepo.FindByUserAndName(actor.UserID, req.Name)
	if err != nil {
		log.Errorf("failed to check tag uniqueness for user %s: %v", actor.UserID, err)
		return nil, apierror.CreateTagFailedError
	}
	if existing != nil {
		return nil, apierror.TagExistsError
	}

	color := req.Color
	if color == "" {
		color = entity.DefaultTagColor
	}

	tag := &entity.Tag{
		UserID:    actor.UserID,
		Name:      req.Name,
		Color:     color,
		CreatedAt: utils.NowUTC(),
	}

	if err = s.TagRepo.Insert(tag); err != nil {
		log.Errorf("failed to create tag for user %s: %v", actor.UserID, err)
		return nil, apierror.CreateTagFailedError
	}
	return toTagResponse(tag), nil
}

// UpdateTag patches name and/or color. A patch with no fields supplied is
// still a success.
func (s *TagService) UpdateTag(actor *auth.TokenData, tagID string, req *UpdateTagRequest) apierror.ErrorResponse {
	utils.Sanitize(req)

	tag, err := s.TagRepo.FindByIDAndUser(tagID, actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch tag %s: %v", tagID, err)
		return apierror.UpdateTagFailedError
	}

	if tag == nil {
		return apierror.TagNotFoundError
	}

	dirty := false
	if req.Name != nil {
		if *req.Name == "" {
			return apierror.NewSimple(http.StatusBadRequest, "Tag name is required")
		}
		tag.Name = *req.Name
		dirty = true
	}
	if req.Color != nil {
		tag.Color = *req.Color
		dirty = true
	}

	if dirty {
		if err = s.TagRepo.Save(tag); err != nil {
			log.Errorf("failed to update tag %s: %v", tagID, err)
			return apierror.UpdateTagFailedError
		}
	}
	return nil
}

// DeleteTag removes the tag and pulls its id from every entry of the same
// user that references it. The detachment is a required side effect.
func (s *TagService) DeleteTag(actor *auth.TokenData, tagID string) apierror.ErrorResponse {
	tag, err := s.TagRepo.FindByIDAndUser(tagID, actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch tag %s: %v", tagID, err)
		return apierror.DeleteTagFailedError
	}

	if tag == nil {
		return apierror.TagNotFoundError
	}

	if err = s.TagRepo.Delete(tag); err != nil {
		log.Errorf("failed to delete tag %s: %v", tagID, err)
		return apierror.DeleteTagFailedError
	}

	if err = s.EntryRepo.RemoveTagFromEntries(actor.UserID, tag.ID); err != nil {
		log.Errorf("failed to detach tag %s from entries: %v", tagID, err)
		return apierror.DeleteTagFailedError
	}
	return nil
}

func toTagResponse(tag *entity.Tag) *TagResponse {
	return &TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		CreatedAt: utils.FormatEpoch(tag.CreatedAt),
	}
}
