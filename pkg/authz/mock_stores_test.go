package authz

import (
	"github.com/stretchr/testify/mock"

	"github.com/hearthhq/hearth/pkg/model"
)

// MockRolesStore implements store.RolesStore for testing using testify/mock
type MockRolesStore struct {
	mock.Mock
}

func NewMockRolesStore() *MockRolesStore {
	return &MockRolesStore{}
}

func (m *MockRolesStore) CreateRole(role model.Role) (*model.Role, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) FindRoleByName(name string) (*model.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRolesStore) RoleExists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRolesStore) ListRoles() ([]model.Role, error) {
	args := m.Called()
	return args.Get(0).([]model.Role), args.Error(1)
}

// MockPermissionsStore implements store.PermissionsStore for testing using testify/mock
type MockPermissionsStore struct {
	mock.Mock
}

func NewMockPermissionsStore() *MockPermissionsStore {
	return &MockPermissionsStore{}
}

func (m *MockPermissionsStore) CreatePermission(permission model.Permission) (*model.Permission, error) {
	args := m.Called(permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) FindPermissionByName(name string) (*model.Permission, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) FindPermissionByResourceAndAction(resource, action string) (*model.Permission, error) {
	args := m.Called(resource, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockPermissionsStore) ListPermissions() ([]model.Permission, error) {
	args := m.Called()
	return args.Get(0).([]model.Permission), args.Error(1)
}

// MockGrantsStore implements store.GrantsStore for testing using testify/mock
type MockGrantsStore struct {
	mock.Mock
}

func NewMockGrantsStore() *MockGrantsStore {
	return &MockGrantsStore{}
}

func (m *MockGrantsStore) RolePermissionExists(roleID, permissionID int64) (bool, error) {
	args := m.Called(roleID, permissionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGrantsStore) AddRolePermission(roleID, permissionID int64) (*model.RolePermission, error) {
	args := m.Called(roleID, permissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockGrantsStore) DeleteRolePermission(roleID, permissionID int64) error {
	args := m.Called(roleID, permissionID)
	return args.Error(0)
}

func (m *MockGrantsStore) UserRoleExists(userID, roleID int64) (bool, error) {
	args := m.Called(userID, roleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGrantsStore) AddUserRole(userID, roleID int64) (*model.UserRole, error) {
	args := m.Called(userID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserRole), args.Error(1)
}

func (m *MockGrantsStore) DeleteUserRole(userID, roleID int64) error {
	args := m.Called(userID, roleID)
	return args.Error(0)
}

func (m *MockGrantsStore) UserRoles(userID int64) ([]model.Role, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockGrantsStore) RolePermissions(roleID int64) ([]model.Permission, error) {
	args := m.Called(roleID)
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockGrantsStore) UserPermissions(userID int64) ([]model.Permission, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Permission), args.Error(1)
}
