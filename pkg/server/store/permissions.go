package store

import "github.com/hearthhq/hearth/pkg/model"

// PermissionsStore abstracts permission storage operations.
type PermissionsStore interface {
	// CreatePermission inserts a new permission and returns the stored record.
	CreatePermission(permission model.Permission) (*model.Permission, error)

	// FindPermissionByName returns the permission with the given name, or nil
	// when absent.
	FindPermissionByName(name string) (*model.Permission, error)

	// FindPermissionByResourceAndAction returns the permission for the
	// (resource, action) pair, or nil when absent.
	FindPermissionByResourceAndAction(resource, action string) (*model.Permission, error)

	// ListPermissions returns all permissions ordered by name.
	ListPermissions() ([]model.Permission, error)
}
