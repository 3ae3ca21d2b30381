package repository

import (
	"errors"
	"strings"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultEntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *DefaultEntryRepository {
	return &DefaultEntryRepository{db: db}
}

// FindAllByUser returns the user's entries newest-created first,
// optionally filtered by tag membership and favorite flag.
func (d *DefaultEntryRepository) FindAllByUser(userID, tagID string, favoriteOnly bool) ([]*entity.Entry, error) {
	q := d.db.Where("user_id = ?", userID)
	if tagID != "" {
		// Tag ids are JSON-encoded strings, so the quoted form is exact.
		q = q.Where("tags LIKE ?", `%"`+tagID+`"%`)
	}
	if favoriteOnly {
		q = q.Where("is_favorite = ?", true)
	}

	var entries []*entity.Entry
	err := q.Order("created_at DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByIDAndUser scopes the lookup by owner: a foreign id yields nil,
// indistinguishable from a nonexistent one.
func (d *DefaultEntryRepository) FindByIDAndUser(id, userID string) (*entity.Entry, error) {
	var entry entity.Entry
	err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *DefaultEntryRepository) Insert(entry *entity.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return d.db.Create(entry).Error
}

func (d *DefaultEntryRepository) Save(entry *entity.Entry) error {
	return d.db.Save(entry).Error
}

func (d *DefaultEntryRepository) Delete(entry *entity.Entry) error {
	return d.db.Delete(entry).Error
}

// Search runs the store-native text search over title and content,
// scoped to the user and capped at limit results.
func (d *DefaultEntryRepository) Search(userID, query string, limit int) ([]*entity.Entry, error) {
	pattern := "%" + escapeLike(query) + "%"

	var entries []*entity.Entry
	err := d.db.
		Where("user_id = ? AND (title LIKE ? ESCAPE '\\' OR content LIKE ? ESCAPE '\\')",
			userID, pattern, pattern).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveTagFromEntries pulls the tag id out of the tag set of every entry
// the user owns that references it.
func (d *DefaultEntryRepository) RemoveTagFromEntries(userID, tagID string) error {
	var entries []*entity.Entry
	err := d.db.
		Where("user_id = ? AND tags LIKE ?", userID, `%"`+tagID+`"%`).
		Find(&entries).Error
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.Tags.Contains(tagID) {
			continue
		}
		entry.Tags = entry.Tags.Without(tagID)
		if err := d.Save(entry); err != nil {
			return err
		}
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
