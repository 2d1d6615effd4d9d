package model

import "time"

// UserRole is a user↔role membership join row, unique per (user, role) pair.
type UserRole struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	RoleID    int64     `gorm:"column:role_id" json:"role_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
