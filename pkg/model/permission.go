package model

import "time"

// Permission represents a named capability. Resource is optional; when set,
// the (resource, action) pair is unique across permissions.
type Permission struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;uniqueIndex" json:"name"`
	Resource  *string   `gorm:"column:resource" json:"resource,omitempty"`
	Action    string    `gorm:"column:action" json:"action"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Permission) TableName() string {
	return "permissions"
}
