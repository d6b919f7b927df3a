package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// AdminUser is a back-office account. TokenVersion is bumped whenever the
// role or permission set changes so outstanding JWTs stop validating.
type AdminUser struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;not null;uniqueIndex"`
	Name         string          `gorm:"column:name;not null"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         enums.AdminRole `gorm:"column:role;not null;default:'viewer'"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	TokenVersion int             `gorm:"column:token_version;not null;default:0"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`

	Overrides []PermissionOverride `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// PermissionOverride grants or revokes one permission for one user on top
// of their role defaults.
type PermissionOverride struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_override_user_perm"`
	Permission string    `gorm:"column:permission;not null;uniqueIndex:idx_override_user_perm"`
	Allowed    bool      `gorm:"column:allowed;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
