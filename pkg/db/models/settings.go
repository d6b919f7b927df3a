package models

import (
	"time"

	"github.com/google/uuid"
)

type SalesChannel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code     string    `gorm:"column:code;not null;uniqueIndex"`
	Name     string    `gorm:"column:name;not null"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SystemSetting stores semi-structured configuration (tier thresholds and
// the like) as JSON text with lenient decode at the read path.
type SystemSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// GridPreference persists per-user grid column layouts. A nil UserID row is
// the admin-maintained default for that grid.
type GridPreference struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex:idx_grid_pref_user_key"`
	GridKey string     `gorm:"column:grid_key;not null;uniqueIndex:idx_grid_pref_user_key"`
	Columns string     `gorm:"column:columns;not null"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
