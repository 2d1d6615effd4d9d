package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new user and returns the stored record
func (s *UsersStore) CreateUser(user model.User) (*model.User, error) {
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns the user with the given email, or nil when absent
func (s *UsersStore) FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByID returns the user with the given id, or nil when absent
func (s *UsersStore) FindUserByID(id int64) (*model.User, error) {
	var user model.User
	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUserPassword replaces a user's stored credential hash
func (s *UsersStore) UpdateUserPassword(id int64, passwordHash string) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}
