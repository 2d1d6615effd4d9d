package store

import "github.com/hearthhq/hearth/pkg/model"

// UsersStore abstracts account and credential storage operations.
type UsersStore interface {
	// CreateUser inserts a new user and returns the stored record.
	CreateUser(user model.User) (*model.User, error)

	// FindUserByEmail returns the user with the given email, or nil when absent.
	FindUserByEmail(email string) (*model.User, error)

	// FindUserByID returns the user with the given id, or nil when absent.
	FindUserByID(id int64) (*model.User, error)

	// UpdateUserPassword replaces a user's stored credential hash.
	UpdateUserPassword(id int64, passwordHash string) error
}
