package gorm

import (
	"gorm.io/gorm"

	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// Ensure GrantsStore implements store.GrantsStore
var _ store.GrantsStore = (*GrantsStore)(nil)

// GrantsStore implements store.GrantsStore using GORM
type GrantsStore struct {
	db *gorm.DB
}

// NewGrantsStore creates a new GrantsStore
func NewGrantsStore(db *gorm.DB) *GrantsStore {
	return &GrantsStore{db: db}
}

// RolePermissionExists checks if a (role, permission) join row exists
func (s *GrantsStore) RolePermissionExists(roleID, permissionID int64) (bool, error) {
	var exists bool
	err := s.db.Raw(
		`SELECT EXISTS(SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?)`,
		roleID, permissionID,
	).Scan(&exists).Error
	return exists, err
}

// AddRolePermission inserts a (role, permission) join row
func (s *GrantsStore) AddRolePermission(roleID, permissionID int64) (*model.RolePermission, error) {
	grant := model.RolePermission{RoleID: roleID, PermissionID: permissionID}
	if err := s.db.Create(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// DeleteRolePermission removes a (role, permission) join row if present
func (s *GrantsStore) DeleteRolePermission(roleID, permissionID int64) error {
	return s.db.
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&model.RolePermission{}).Error
}

// UserRoleExists checks if a (user, role) join row exists
func (s *GrantsStore) UserRoleExists(userID, roleID int64) (bool, error) {
	var exists bool
	err := s.db.Raw(
		`SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?)`,
		userID, roleID,
	).Scan(&exists).Error
	return exists, err
}

// AddUserRole inserts a (user, role) join row
func (s *GrantsStore) AddUserRole(userID, roleID int64) (*model.UserRole, error) {
	membership := model.UserRole{UserID: userID, RoleID: roleID}
	if err := s.db.Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// DeleteUserRole removes a (user, role) join row if present
func (s *GrantsStore) DeleteUserRole(userID, roleID int64) error {
	return s.db.
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRole{}).Error
}

// UserRoles returns the roles granted to a user, ordered by role name
func (s *GrantsStore) UserRoles(userID int64) ([]model.Role, error) {
	var roles []model.Role
	err := s.db.Raw(`
		SELECT r.* FROM roles r
		INNER JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY r.name
	`, userID).Scan(&roles).Error
	return roles, err
}

// RolePermissions returns the permissions granted to a role, ordered by
// permission name
func (s *GrantsStore) RolePermissions(roleID int64) ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.Raw(`
		SELECT p.* FROM permissions p
		INNER JOIN role_permissions rp ON p.id = rp.permission_id
		WHERE rp.role_id = ?
		ORDER BY p.name
	`, roleID).Scan(&permissions).Error
	return permissions, err
}

// UserPermissions returns the de-duplicated permissions reachable through the
// user's roles, ordered by permission name
func (s *GrantsStore) UserPermissions(userID int64) ([]model.Permission, error) {
	var permissions []model.Permission
	err := s.db.Raw(`
		SELECT DISTINCT p.* FROM permissions p
		INNER JOIN role_permissions rp ON p.id = rp.permission_id
		INNER JOIN user_roles ur ON rp.role_id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY p.name
	`, userID).Scan(&permissions).Error
	return permissions, err
}
