package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// Ensure RolesStore implements store.RolesStore
var _ store.RolesStore = (*RolesStore)(nil)

// RolesStore implements store.RolesStore using GORM
type RolesStore struct {
	db *gorm.DB
}

// NewRolesStore creates a new RolesStore
func NewRolesStore(db *gorm.DB) *RolesStore {
	return &RolesStore{db: db}
}

// CreateRole inserts a new role and returns the stored record
func (s *RolesStore) CreateRole(role model.Role) (*model.Role, error) {
	if err := s.db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindRoleByName returns the role with the given name, or nil when absent
func (s *RolesStore) FindRoleByName(name string) (*model.Role, error) {
	var role model.Role
	err := s.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// RoleExists checks if a role exists
func (s *RolesStore) RoleExists(id int64) (bool, error) {
	var exists bool
	err := s.db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE id = ?)`, id).Scan(&exists).Error
	return exists, err
}

// ListRoles returns all roles ordered by name
func (s *RolesStore) ListRoles() ([]model.Role, error) {
	var roles []model.Role
	err := s.db.Order("name").Find(&roles).Error
	return roles, err
}
