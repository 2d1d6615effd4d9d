package authz

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthhq/hearth/pkg/errs"
	"github.com/hearthhq/hearth/pkg/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func strptr(s string) *string { return &s }

func newTestService() (*Service, *MockRolesStore, *MockPermissionsStore, *MockGrantsStore) {
	roles := NewMockRolesStore()
	permissions := NewMockPermissionsStore()
	grants := NewMockGrantsStore()
	return NewService(roles, permissions, grants, quietLogger()), roles, permissions, grants
}

func TestService_CreateRole(t *testing.T) {
	t.Run("creates a role when the name is free", func(t *testing.T) {
		service, roles, _, _ := newTestService()

		roles.On("FindRoleByName", "editor").Return(nil, nil)
		roles.On("CreateRole", model.Role{Name: "editor"}).
			Return(&model.Role{ID: 1, Name: "editor"}, nil)

		role, err := service.CreateRole("editor", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), role.ID)
		roles.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, roles, _, _ := newTestService()

		roles.On("FindRoleByName", "editor").Return(&model.Role{ID: 1, Name: "editor"}, nil)

		role, err := service.CreateRole("editor", nil)
		assert.Nil(t, role)
		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
		roles.AssertNotCalled(t, "CreateRole")
	})
}

func TestService_CreatePermission(t *testing.T) {
	t.Run("creates a permission", func(t *testing.T) {
		service, _, permissions, _ := newTestService()

		permissions.On("FindPermissionByName", "publish-article").Return(nil, nil)
		permissions.On("FindPermissionByResourceAndAction", "article", "publish").Return(nil, nil)
		permissions.On("CreatePermission", model.Permission{
			Name:     "publish-article",
			Resource: strptr("article"),
			Action:   "publish",
		}).Return(&model.Permission{ID: 7, Name: "publish-article", Resource: strptr("article"), Action: "publish"}, nil)

		permission, err := service.CreatePermission("publish-article", strptr("article"), "publish")
		require.NoError(t, err)
		assert.Equal(t, int64(7), permission.ID)
		permissions.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, _, permissions, _ := newTestService()

		permissions.On("FindPermissionByName", "publish-article").
			Return(&model.Permission{ID: 7, Name: "publish-article"}, nil)

		permission, err := service.CreatePermission("publish-article", nil, "publish")
		assert.Nil(t, permission)
		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	})

	t.Run("rejects a duplicate resource and action pair", func(t *testing.T) {
		service, _, permissions, _ := newTestService()

		permissions.On("FindPermissionByName", "publish-articles").Return(nil, nil)
		permissions.On("FindPermissionByResourceAndAction", "article", "publish").
			Return(&model.Permission{ID: 7, Name: "publish-article"}, nil)

		permission, err := service.CreatePermission("publish-articles", strptr("article"), "publish")
		assert.Nil(t, permission)
		assert.ErrorIs(t, err, errs.ErrAlreadyExists)
		permissions.AssertNotCalled(t, "CreatePermission")
	})
}

func TestService_GrantPermissionsToRole(t *testing.T) {
	t.Run("returns only newly created grants", func(t *testing.T) {
		service, roles, _, grants := newTestService()

		roles.On("RoleExists", int64(1)).Return(true, nil)
		grants.On("RolePermissionExists", int64(1), int64(7)).Return(true, nil)
		grants.On("RolePermissionExists", int64(1), int64(8)).Return(false, nil)
		grants.On("AddRolePermission", int64(1), int64(8)).
			Return(&model.RolePermission{ID: 3, RoleID: 1, PermissionID: 8}, nil)

		created, err := service.GrantPermissionsToRole(1, []int64{7, 8})
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, int64(8), created[0].PermissionID)
		grants.AssertNotCalled(t, "AddRolePermission", int64(1), int64(7))
	})

	t.Run("granting an already held permission leaves storage untouched", func(t *testing.T) {
		service, roles, _, grants := newTestService()

		roles.On("RoleExists", int64(1)).Return(true, nil)
		grants.On("RolePermissionExists", int64(1), int64(7)).Return(true, nil)

		created, err := service.GrantPermissionsToRole(1, []int64{7})
		require.NoError(t, err)
		assert.Empty(t, created)
		grants.AssertNotCalled(t, "AddRolePermission")
	})

	t.Run("fails for an unknown role", func(t *testing.T) {
		service, roles, _, grants := newTestService()

		roles.On("RoleExists", int64(99)).Return(false, nil)

		created, err := service.GrantPermissionsToRole(99, []int64{7})
		assert.Nil(t, created)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		grants.AssertNotCalled(t, "RolePermissionExists")
	})
}

func TestService_RevokePermissionsFromRole(t *testing.T) {
	t.Run("revoking a never granted pair succeeds", func(t *testing.T) {
		service, roles, _, grants := newTestService()

		roles.On("RoleExists", int64(1)).Return(true, nil)
		grants.On("DeleteRolePermission", int64(1), int64(7)).Return(nil)

		err := service.RevokePermissionsFromRole(1, []int64{7})
		assert.NoError(t, err)
	})

	t.Run("fails for an unknown role", func(t *testing.T) {
		service, roles, _, _ := newTestService()

		roles.On("RoleExists", int64(99)).Return(false, nil)

		err := service.RevokePermissionsFromRole(99, []int64{7})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_GrantRolesToUser(t *testing.T) {
	t.Run("skips memberships the user already holds", func(t *testing.T) {
		service, _, _, grants := newTestService()

		grants.On("UserRoleExists", int64(42), int64(1)).Return(true, nil)
		grants.On("UserRoleExists", int64(42), int64(2)).Return(false, nil)
		grants.On("AddUserRole", int64(42), int64(2)).
			Return(&model.UserRole{ID: 5, UserID: 42, RoleID: 2}, nil)

		created, err := service.GrantRolesToUser(42, []int64{1, 2})
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, int64(2), created[0].RoleID)
	})

	t.Run("surfaces storage errors from the membership insert", func(t *testing.T) {
		service, _, _, grants := newTestService()

		grants.On("UserRoleExists", int64(42), int64(1)).Return(false, nil)
		grants.On("AddUserRole", int64(42), int64(1)).
			Return(nil, errors.New("pq: insert or update on table \"user_roles\" violates foreign key constraint"))

		created, err := service.GrantRolesToUser(42, []int64{1})
		assert.Nil(t, created)
		assert.Error(t, err)
	})
}

func TestService_RevokeRolesFromUser(t *testing.T) {
	service, _, _, grants := newTestService()

	grants.On("DeleteUserRole", int64(42), int64(1)).Return(nil)

	err := service.RevokeRolesFromUser(42, []int64{1})
	assert.NoError(t, err)
}

func TestService_RolePermissions(t *testing.T) {
	t.Run("lists the role's permissions", func(t *testing.T) {
		service, roles, _, grants := newTestService()

		roles.On("RoleExists", int64(1)).Return(true, nil)
		grants.On("RolePermissions", int64(1)).Return([]model.Permission{
			{ID: 7, Name: "publish-article"},
		}, nil)

		permissions, err := service.RolePermissions(1)
		require.NoError(t, err)
		require.Len(t, permissions, 1)
		assert.Equal(t, "publish-article", permissions[0].Name)
	})

	t.Run("fails for an unknown role", func(t *testing.T) {
		service, roles, _, _ := newTestService()

		roles.On("RoleExists", int64(99)).Return(false, nil)

		permissions, err := service.RolePermissions(99)
		assert.Nil(t, permissions)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestService_UserHasPermission(t *testing.T) {
	service, _, _, grants := newTestService()

	grants.On("UserPermissions", int64(42)).Return([]model.Permission{
		{ID: 7, Name: "publish-article", Resource: strptr("article"), Action: "publish"},
	}, nil)

	held, err := service.UserHasPermission(42, "publish-article")
	require.NoError(t, err)
	assert.True(t, held)

	held, err = service.UserHasPermission(42, "delete-article")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestService_UserHasResourcePermission(t *testing.T) {
	t.Run("matches on the resource and action pair", func(t *testing.T) {
		service, _, _, grants := newTestService()

		grants.On("UserPermissions", int64(42)).Return([]model.Permission{
			{ID: 7, Name: "publish-article", Resource: strptr("article"), Action: "publish"},
		}, nil)

		held, err := service.UserHasResourcePermission(42, "article", "publish")
		require.NoError(t, err)
		assert.True(t, held)

		held, err = service.UserHasResourcePermission(42, "article", "delete")
		require.NoError(t, err)
		assert.False(t, held)
	})

	t.Run("ignores permissions without a resource", func(t *testing.T) {
		service, _, _, grants := newTestService()

		grants.On("UserPermissions", int64(42)).Return([]model.Permission{
			{ID: 9, Name: "admin", Action: "manage"},
		}, nil)

		held, err := service.UserHasResourcePermission(42, "", "manage")
		require.NoError(t, err)
		assert.False(t, held)
	})
}
