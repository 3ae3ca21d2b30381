package repository

import (
	"errors"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultTagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *DefaultTagRepository {
	return &DefaultTagRepository{db: db}
}

func (d *DefaultTagRepository) FindAllByUser(userID string) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	err := d.db.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (d *DefaultTagRepository) FindByIDAndUser(id, userID string) (*entity.Tag, error) {
	var tag entity.Tag
	err := d.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByUserAndName matches the name case-insensitively; name uniqueness
// is scoped to (user_id, lowercase(name)).
func (d *DefaultTagRepository) FindByUserAndName(userID, name string) (*entity.Tag, error) {
	var tag entity.Tag
	err := d.db.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (d *DefaultTagRepository) Insert(tag *entity.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	return d.db.Create(tag).Error
}

func (d *DefaultTagRepository) Save(tag *entity.Tag) error {
	return d.db.Save(tag).Error
}

func (d *DefaultTagRepository) Delete(tag *entity.Tag) error {
	return d.db.Delete(tag).Error
}
