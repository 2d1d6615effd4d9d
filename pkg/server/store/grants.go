package store

import "github.com/hearthhq/hearth/pkg/model"

// GrantsStore abstracts the two many-to-many join relations of the
// authorization graph: user↔role and role↔permission.
type GrantsStore interface {
	// RolePermissionExists checks if a (role, permission) join row exists.
	RolePermissionExists(roleID, permissionID int64) (bool, error)

	// AddRolePermission inserts a (role, permission) join row.
	AddRolePermission(roleID, permissionID int64) (*model.RolePermission, error)

	// DeleteRolePermission removes a (role, permission) join row if present.
	DeleteRolePermission(roleID, permissionID int64) error

	// UserRoleExists checks if a (user, role) join row exists.
	UserRoleExists(userID, roleID int64) (bool, error)

	// AddUserRole inserts a (user, role) join row.
	AddUserRole(userID, roleID int64) (*model.UserRole, error)

	// DeleteUserRole removes a (user, role) join row if present.
	DeleteUserRole(userID, roleID int64) error

	// UserRoles returns the roles granted to a user, ordered by role name.
	UserRoles(userID int64) ([]model.Role, error)

	// RolePermissions returns the permissions granted to a role, ordered by
	// permission name.
	RolePermissions(roleID int64) ([]model.Permission, error)

	// UserPermissions returns the de-duplicated permissions reachable through
	// the user's roles, ordered by permission name.
	UserPermissions(userID int64) ([]model.Permission, error)
}
