package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
)

var (
	errThresholdNotPositive   = errors.New("tier thresholds must be positive")
	errThresholdsNotAscending = errors.New("tier thresholds must ascend silver < gold < platinum")
)

// Repository is the persistence surface for channels, settings rows, and
// grid preferences.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListChannels(ctx context.Context) ([]models.SalesChannel, error)
	FindChannelByID(ctx context.Context, id uuid.UUID) (*models.SalesChannel, error)
	CreateChannel(ctx context.Context, channel *models.SalesChannel) error
	UpdateChannel(ctx context.Context, id uuid.UUID, updates map[string]any) error

	GetSetting(ctx context.Context, key string) (*models.SystemSetting, error)
	UpsertSetting(ctx context.Context, key, value string) error

	// FindGridPreference loads the row for one user and grid; a nil userID
	// addresses the shared default layout.
	FindGridPreference(ctx context.Context, userID *uuid.UUID, gridKey string) (*models.GridPreference, error)
	UpsertGridPreference(ctx context.Context, userID *uuid.UUID, gridKey, columns string) error
	DeleteGridPreference(ctx context.Context, userID *uuid.UUID, gridKey string) error
}
