package authz

// TODO: push the per-user permission checks down into dedicated EXISTS
// queries instead of materializing the whole permission set per call.

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hearthhq/hearth/pkg/errs"
	"github.com/hearthhq/hearth/pkg/model"
	"github.com/hearthhq/hearth/pkg/server/store"
)

// Service implements the RBAC operations over the authorization graph.
type Service struct {
	roles       store.RolesStore
	permissions store.PermissionsStore
	grants      store.GrantsStore
	log         *logrus.Logger
}

// NewService constructs an authorization Service.
func NewService(
	roles store.RolesStore,
	permissions store.PermissionsStore,
	grants store.GrantsStore,
	log *logrus.Logger,
) *Service {
	return &Service{roles: roles, permissions: permissions, grants: grants, log: log}
}

// CreateRole creates a role. It fails with errs.ErrAlreadyExists when the
// name is taken.
func (s *Service) CreateRole(name string, description *string) (*model.Role, error) {
	existing, err := s.roles.FindRoleByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("role %q: %w", name, errs.ErrAlreadyExists)
	}

	role, err := s.roles.CreateRole(model.Role{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	s.log.WithField("role", name).Info("Role created")
	return role, nil
}

// CreatePermission creates a permission. It fails with errs.ErrAlreadyExists
// on a name collision, and on a (resource, action) collision when resource
// is set.
func (s *Service) CreatePermission(name string, resource *string, action string) (*model.Permission, error) {
	existing, err := s.permissions.FindPermissionByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up permission: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("permission %q: %w", name, errs.ErrAlreadyExists)
	}

	if resource != nil {
		existing, err := s.permissions.FindPermissionByResourceAndAction(*resource, action)
		if err != nil {
			return nil, fmt.Errorf("failed to look up permission: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("permission for %s/%s: %w", *resource, action, errs.ErrAlreadyExists)
		}
	}

	permission, err := s.permissions.CreatePermission(model.Permission{
		Name:     name,
		Resource: resource,
		Action:   action,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}

	s.log.WithField("permission", name).Info("Permission created")
	return permission, nil
}

// GrantPermissionsToRole associates permissions with a role. Pairs that
// already exist are skipped silently; only newly created associations are
// returned. It fails with errs.ErrNotFound when the role is unknown.
func (s *Service) GrantPermissionsToRole(roleID int64, permissionIDs []int64) ([]model.RolePermission, error) {
	exists, err := s.roles.RoleExists(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("role %d: %w", roleID, errs.ErrNotFound)
	}

	created := make([]model.RolePermission, 0, len(permissionIDs))
	for _, permissionID := range permissionIDs {
		exists, err := s.grants.RolePermissionExists(roleID, permissionID)
		if err != nil {
			return nil, fmt.Errorf("failed to check grant: %w", err)
		}
		if exists {
			continue
		}

		grant, err := s.grants.AddRolePermission(roleID, permissionID)
		if err != nil {
			return nil, fmt.Errorf("failed to grant permission %d to role %d: %w", permissionID, roleID, err)
		}
		created = append(created, *grant)
	}

	return created, nil
}

// RevokePermissionsFromRole removes permission associations from a role.
// Absent pairs are ignored. It fails with errs.ErrNotFound when the role is
// unknown.
func (s *Service) RevokePermissionsFromRole(roleID int64, permissionIDs []int64) error {
	exists, err := s.roles.RoleExists(roleID)
	if err != nil {
		return fmt.Errorf("failed to look up role: %w", err)
	}
	if !exists {
		return fmt.Errorf("role %d: %w", roleID, errs.ErrNotFound)
	}

	for _, permissionID := range permissionIDs {
		if err := s.grants.DeleteRolePermission(roleID, permissionID); err != nil {
			return fmt.Errorf("failed to revoke permission %d from role %d: %w", permissionID, roleID, err)
		}
	}

	return nil
}

// GrantRolesToUser associates roles with a user with the same idempotent
// semantics as GrantPermissionsToRole.
//
// Note that the user's existence is not verified here; the role-permission
// path checks its owner but this path never has. The user_roles foreign key
// surfaces inserts for missing users as storage errors.
func (s *Service) GrantRolesToUser(userID int64, roleIDs []int64) ([]model.UserRole, error) {
	created := make([]model.UserRole, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		exists, err := s.grants.UserRoleExists(userID, roleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if exists {
			continue
		}

		membership, err := s.grants.AddUserRole(userID, roleID)
		if err != nil {
			return nil, fmt.Errorf("failed to grant role %d to user %d: %w", roleID, userID, err)
		}
		created = append(created, *membership)
	}

	return created, nil
}

// RevokeRolesFromUser removes role memberships from a user. Absent pairs are
// ignored.
func (s *Service) RevokeRolesFromUser(userID int64, roleIDs []int64) error {
	for _, roleID := range roleIDs {
		if err := s.grants.DeleteUserRole(userID, roleID); err != nil {
			return fmt.Errorf("failed to revoke role %d from user %d: %w", roleID, userID, err)
		}
	}
	return nil
}

// UserRoles returns the roles granted to a user.
func (s *Service) UserRoles(userID int64) ([]model.Role, error) {
	roles, err := s.grants.UserRoles(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user roles: %w", err)
	}
	return roles, nil
}

// RolePermissions returns the permissions granted to a role. It fails with
// errs.ErrNotFound when the role is unknown.
func (s *Service) RolePermissions(roleID int64) ([]model.Permission, error) {
	exists, err := s.roles.RoleExists(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("role %d: %w", roleID, errs.ErrNotFound)
	}

	permissions, err := s.grants.RolePermissions(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role permissions: %w", err)
	}
	return permissions, nil
}

// UserPermissions returns the de-duplicated union of permissions reachable
// through the user's roles, ordered by permission name.
func (s *Service) UserPermissions(userID int64) ([]model.Permission, error) {
	permissions, err := s.grants.UserPermissions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user permissions: %w", err)
	}
	return permissions, nil
}

// UserHasPermission reports whether the user holds a permission by name.
// Recomputed on every call.
func (s *Service) UserHasPermission(userID int64, name string) (bool, error) {
	permissions, err := s.UserPermissions(userID)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// UserHasResourcePermission reports whether the user holds a permission for
// the (resource, action) pair. Recomputed on every call.
func (s *Service) UserHasResourcePermission(userID int64, resource, action string) (bool, error) {
	permissions, err := s.UserPermissions(userID)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p.Resource != nil && *p.Resource == resource && p.Action == action {
			return true, nil
		}
	}
	return false, nil
}
