package service

import (
	"journal/internal/auth"
	"journal/internal/domain/entity"
	"journal/internal/utils"
	"journal/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	searchResultLimit     = 20
	searchPreviewMaxRunes = 200
)

type EntryRepository interface {
	FindAllByUser(userID, tagID string, favoriteOnly bool) ([]*entity.Entry, error)
	FindByIDAndUser(id, userID string) (*entity.Entry, error)
	Insert(entry *entity.Entry) error
	Save(entry *entity.Entry) error
	Delete(entry *entity.Entry) error
	Search(userID, query string, limit int) ([]*entity.Entry, error)
	RemoveTagFromEntries(userID, tagID string) error
}

type ListEntriesFilter struct {
	TagID        string
	FavoriteOnly bool
}

type CreateEntryRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	Tags       []string `json:"tags" validate:"omitempty,nodupes"`
	IsFavorite bool     `json:"is_favorite"`
}

// UpdateEntryRequest is a partial patch: nil means "leave untouched",
// a present zero value is an explicit assignment.
type UpdateEntryRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags" validate:"omitempty,nodupes"`
	IsFavorite *bool     `json:"is_favorite"`
}

type SearchRequest struct {
	Query string `validate:"required,min=2"`
}

type EntryResponse struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"is_favorite"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

// EntrySearchResult is a preview: content is truncated, the full text
// requires a single-entry fetch.
type EntrySearchResult struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type EntryService struct {
	EntryRepo EntryRepository
	Validate  *validator.Validate
}

func NewEntryService(entryRepo EntryRepository, validate *validator.Validate) *EntryService {
	return &EntryService{EntryRepo: entryRepo, Validate: validate}
}

// GetEntries lists the caller's entries newest-created first.
func (s *EntryService) GetEntries(actor *auth.TokenData, filter *ListEntriesFilter) ([]*EntryResponse, apierror.ErrorResponse) {
	entries, err := s.EntryRepo.FindAllByUser(actor.UserID, filter.TagID, filter.FavoriteOnly)
	if err != nil {
		log.Errorf("failed to fetch entries for user %s: %v", actor.UserID, err)
		return nil, apierror.FetchEntriesError
	}

	resp := make([]*EntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toEntryResponse(entry)
	}
	return resp, nil
}

func (s *EntryService) GetEntry(actor *auth.TokenData, entryID string) (*EntryResponse, apierror.ErrorResponse) {
	entry, err := s.EntryRepo.FindByIDAndUser(entryID, actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch entry %s: %v", entryID, err)
		return nil, apierror.FetchEntryError
	}

	if entry == nil {
		return nil, apierror.EntryNotFoundError
	}
	return toEntryResponse(entry), nil
}

func (s *EntryService) CreateEntry(actor *auth.TokenData, req *CreateEntryRequest) (*EntryResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	now := utils.NowUTC()
	entry := &entity.Entry{
		UserID:     actor.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       entity.StringList(req.Tags),
		IsFavorite: req.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if entry.Tags == nil {
		entry.Tags = entity.StringList{}
	}

	if err := s.EntryRepo.Insert(entry); err != nil {
		log.Errorf("failed to create entry for user %s: %v", actor.UserID, err)
		return nil, apierror.CreateEntryFailedError
	}
	return toEntryResponse(entry), nil
}

// UpdateEntry applies a partial patch. Omitted fields stay untouched;
// updated_at is refreshed regardless of which fields changed.
func (s *EntryService) UpdateEntry(actor *auth.TokenData, entryID string, req *UpdateEntryRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	entry, err := s.EntryRepo.FindByIDAndUser(entryID, actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch entry %s: %v", entryID, err)
		return apierror.UpdateEntryFailedError
	}

	if entry == nil {
		return apierror.EntryNotFoundError
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	if req.Tags != nil {
		entry.Tags = entity.StringList(*req.Tags)
		if entry.Tags == nil {
			entry.Tags = entity.StringList{}
		}
	}
	if req.IsFavorite != nil {
		entry.IsFavorite = *req.IsFavorite
	}
	entry.UpdatedAt = utils.NowUTC()

	if err = s.EntryRepo.Save(entry); err != nil {
		log.Errorf("failed to update entry %s: %v", entryID, err)
		return apierror.UpdateEntryFailedError
	}
	return nil
}

func (s *EntryService) DeleteEntry(actor *auth.TokenData, entryID string) apierror.ErrorResponse {
	entry, err := s.EntryRepo.FindByIDAndUser(entryID, actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch entry %s: %v", entryID, err)
		return apierror.DeleteEntryFailedError
	}

	if entry == nil {
		return apierror.EntryNotFoundError
	}

	if err = s.EntryRepo.Delete(entry); err != nil {
		log.Errorf("failed to delete entry %s: %v", entryID, err)
		return apierror.DeleteEntryFailedError
	}
	return nil
}

// SearchEntries runs a text search over the caller's titles and contents.
func (s *EntryService) SearchEntries(actor *auth.TokenData, query string) ([]*EntrySearchResult, apierror.ErrorResponse) {
	req := &SearchRequest{Query: query}
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	entries, err := s.EntryRepo.Search(actor.UserID, req.Query, searchResultLimit)
	if err != nil {
		log.Errorf("search failed for user %s: %v", actor.UserID, err)
		return nil, apierror.SearchFailedError
	}

	results := make([]*EntrySearchResult, len(entries))
	for i, entry := range entries {
		results[i] = &EntrySearchResult{
			ID:        entry.ID,
			Title:     entry.Title,
			Content:   truncateRunes(entry.Content, searchPreviewMaxRunes),
			CreatedAt: utils.FormatEpoch(entry.CreatedAt),
		}
	}
	return results, nil
}

func toEntryResponse(entry *entity.Entry) *EntryResponse {
	tags := entry.Tags
	if tags == nil {
		tags = entity.StringList{}
	}

	return &EntryResponse{
		ID:         entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Tags:       tags,
		IsFavorite: entry.IsFavorite,
		CreatedAt:  utils.FormatEpoch(entry.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(entry.UpdatedAt),
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
