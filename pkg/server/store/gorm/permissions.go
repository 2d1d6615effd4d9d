package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

// CreatePermission inserts a new permission and returns the stored record
func (s *PermissionsStore) CreatePermission(permission model.Permission) (*model.Permission, error) {
	if err := s.db.Create(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// FindPermissionByName returns the permission with the given name, or nil when absent
func (s *PermissionsStore) FindPermissionByName(name string) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.Where("name = ?", name).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// FindPermissionByResourceAndAction returns the permission for the
// (resource, action) pair, or nil when absent
func (s *PermissionsStore) FindPermissionByResourceAndAction(resource, action string) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.Where("resource = ? AND action = ?", resource, action).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// ListPermissions returns all permissions ordered by name
func (s *PermissionsStore) ListPermissions() ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.Order("name").Find(&permissions).Error
	return permissions, err
}
