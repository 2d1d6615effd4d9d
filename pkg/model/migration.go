package model

import "time"

// Migration records a schema evolution step that has been applied.
type Migration struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	Name      string     `gorm:"column:name"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	AppliedAt *time.Time `gorm:"column:applied_at"`
}

func (Migration) TableName() string {
	return "migrations"
}
