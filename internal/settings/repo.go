package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the settings repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListChannels(ctx context.Context) ([]models.SalesChannel, error) {
	var channels []models.SalesChannel
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *repository) FindChannelByID(ctx context.Context, id uuid.UUID) (*models.SalesChannel, error) {
	var channel models.SalesChannel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *repository) CreateChannel(ctx context.Context, channel *models.SalesChannel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *repository) UpdateChannel(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.SalesChannel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) GetSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *repository) UpsertSetting(ctx context.Context, key, value string) error {
	setting := models.SystemSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

func (r *repository) gridScope(userID *uuid.UUID, gridKey string) *gorm.DB {
	query := r.db.Where("grid_key = ?", gridKey)
	if userID == nil {
		// The shared default row: unique indexes treat NULLs as distinct,
		// so it is addressed explicitly rather than via ON CONFLICT.
		return query.Where("user_id IS NULL")
	}
	return query.Where("user_id = ?", *userID)
}

func (r *repository) FindGridPreference(ctx context.Context, userID *uuid.UUID, gridKey string) (*models.GridPreference, error) {
	var pref models.GridPreference
	err := r.gridScope(userID, gridKey).WithContext(ctx).First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// UpsertGridPreference runs its find-then-write pair in one transaction;
// the partial unique index on (grid_key) WHERE user_id IS NULL backstops
// concurrent writers racing to create the shared default row.
func (r *repository) UpsertGridPreference(ctx context.Context, userID *uuid.UUID, gridKey, columns string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &repository{db: tx}
		existing, err := scoped.FindGridPreference(ctx, userID, gridKey)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			pref := &models.GridPreference{
				ID:      uuid.New(),
				UserID:  userID,
				GridKey: gridKey,
				Columns: columns,
			}
			return tx.Create(pref).Error
		}
		return tx.Model(&models.GridPreference{}).
			Where("id = ?", existing.ID).
			Update("columns", columns).Error
	})
}

func (r *repository) DeleteGridPreference(ctx context.Context, userID *uuid.UUID, gridKey string) error {
	return r.gridScope(userID, gridKey).WithContext(ctx).Delete(&models.GridPreference{}).Error
}
