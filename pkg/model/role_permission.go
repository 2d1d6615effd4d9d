package model

import "time"

// RolePermission is a role↔permission grant join row, unique per
// (role, permission) pair.
type RolePermission struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	RoleID       int64     `gorm:"column:role_id" json:"role_id"`
	PermissionID int64     `gorm:"column:permission_id" json:"permission_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
