package gorm

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func permissionRows(names ...string) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "resource", "action", "created_at"})
	for i, name := range names {
		rows.AddRow(int64(i+1), name, nil, "read", now)
	}
	return rows
}

func TestUserPermissionsJoinsThroughRoles(t *testing.T) {
	db, mock := newMockDB(t)
	grants := NewGrantsStore(db)

	mock.ExpectQuery(`SELECT DISTINCT p\.\* FROM permissions p`).
		WithArgs(int64(42)).
		WillReturnRows(permissionRows("articles.publish", "articles.read"))

	permissions, err := grants.UserPermissions(42)
	require.NoError(t, err)

	require.Len(t, permissions, 2)
	assert.Equal(t, "articles.publish", permissions[0].Name)
	assert.Equal(t, "articles.read", permissions[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPermissionsEmptyForUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	grants := NewGrantsStore(db)

	mock.ExpectQuery(`SELECT DISTINCT p\.\* FROM permissions p`).
		WithArgs(int64(99)).
		WillReturnRows(permissionRows())

	permissions, err := grants.UserPermissions(99)
	require.NoError(t, err)
	assert.Empty(t, permissions)
}

func TestRolePermissionExists(t *testing.T) {
	db, mock := newMockDB(t)
	grants := NewGrantsStore(db)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM role_permissions`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := grants.RolePermissionExists(1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteRolePermissionIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	grants := NewGrantsStore(db)

	// Deleting a pair that was never granted still succeeds.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "role_permissions"`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, grants.DeleteRolePermission(1, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddUserRole(t *testing.T) {
	db, mock := newMockDB(t)
	grants := NewGrantsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user_roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	membership, err := grants.AddUserRole(3, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(7), membership.ID)
	assert.Equal(t, int64(3), membership.UserID)
	assert.Equal(t, int64(4), membership.RoleID)
}
