package repository

import (
	"errors"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{db: db}
}

// FindByUsername matches case-sensitively, exactly as stored.
func (u *DefaultUserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail expects the caller to have lower-cased the email already.
func (u *DefaultUserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := u.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert assigns the store id and persists the new user.
func (u *DefaultUserRepository) Insert(user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return u.db.Create(user).Error
}

// Save writes back every field, including cleared verification state.
func (u *DefaultUserRepository) Save(user *entity.User) error {
	return u.db.Save(user).Error
}
