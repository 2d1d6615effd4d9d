package store

import "github.com/hearthhq/hearth/pkg/model"

// RolesStore abstracts role storage operations.
type RolesStore interface {
	// CreateRole inserts a new role and returns the stored record.
	CreateRole(role model.Role) (*model.Role, error)

	// FindRoleByName returns the role with the given name, or nil when absent.
	FindRoleByName(name string) (*model.Role, error)

	// RoleExists checks if a role exists.
	RoleExists(id int64) (bool, error)

	// ListRoles returns all roles ordered by name.
	ListRoles() ([]model.Role, error)
}
