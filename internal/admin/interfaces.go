package admin

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// Repository is the persistence surface for back-office accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	FindUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CreateUser(ctx context.Context, user *models.AdminUser) error
	UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// CountOtherActiveAdmins counts active administrative accounts other
	// than the given user.
	CountOtherActiveAdmins(ctx context.Context, excludeID uuid.UUID) (int64, error)

	DeleteOverrides(ctx context.Context, userID uuid.UUID) error
	CreateOverrides(ctx context.Context, overrides []models.PermissionOverride) error

	BumpTokenVersion(ctx context.Context, userID uuid.UUID) error
	RecordLogin(ctx context.Context, userID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// administrativeRoles feeds SQL IN clauses for the last-admin guard.
func administrativeRoles() []string {
	return []string{string(enums.AdminRoleAdmin), string(enums.AdminRoleOwner)}
}
