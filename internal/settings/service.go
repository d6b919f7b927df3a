package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db"
	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
)

// ChannelInput carries a create or update of a sales channel.
type ChannelInput struct {
	Code     string
	Name     string
	IsActive *bool
}

// GridLayout is the resolved column layout for one user and grid.
type GridLayout struct {
	GridKey   string       `json:"gridKey"`
	Columns   []GridColumn `json:"columns"`
	IsDefault bool         `json:"isDefault"`
}

// Service manages operational configuration: sales channels, customer tier
// thresholds, and grid column layouts.
type Service interface {
	ListChannels(ctx context.Context) ([]ChannelView, error)
	CreateChannel(ctx context.Context, input ChannelInput) (*ChannelView, error)
	UpdateChannel(ctx context.Context, id uuid.UUID, input ChannelInput) (*ChannelView, error)

	GetTierThresholds(ctx context.Context) (TierThresholds, error)
	UpdateTierThresholds(ctx context.Context, thresholds TierThresholds) (TierThresholds, error)

	// GetGridLayout resolves user row -> shared default -> empty layout.
	GetGridLayout(ctx context.Context, userID uuid.UUID, gridKey string) (*GridLayout, error)
	SaveGridLayout(ctx context.Context, userID uuid.UUID, gridKey string, columns []GridColumn) (*GridLayout, error)
	SaveDefaultGridLayout(ctx context.Context, gridKey string, columns []GridColumn) (*GridLayout, error)
	ResetGridLayout(ctx context.Context, userID uuid.UUID, gridKey string) (*GridLayout, error)
}

type service struct {
	repo Repository
}

// NewService builds the settings service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func channelView(channel *models.SalesChannel) *ChannelView {
	return &ChannelView{
		ID:       channel.ID.String(),
		Code:     channel.Code,
		Name:     channel.Name,
		IsActive: channel.IsActive,
	}
}

func (s *service) ListChannels(ctx context.Context) ([]ChannelView, error) {
	channels, err := s.repo.ListChannels(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list channels")
	}
	out := make([]ChannelView, 0, len(channels))
	for i := range channels {
		out = append(out, *channelView(&channels[i]))
	}
	return out, nil
}

func (s *service) CreateChannel(ctx context.Context, input ChannelInput) (*ChannelView, error) {
	code := strings.ToLower(strings.TrimSpace(input.Code))
	name := strings.TrimSpace(input.Name)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "channel code required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "channel name required")
	}

	channel := &models.SalesChannel{
		ID:       uuid.New(),
		Code:     code,
		Name:     name,
		IsActive: true,
	}
	if input.IsActive != nil {
		channel.IsActive = *input.IsActive
	}
	if err := s.repo.CreateChannel(ctx, channel); err != nil {
		if db.IsUniqueViolation(err, "") || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("channel code %q already exists", code))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create channel")
	}
	return channelView(channel), nil
}

func (s *service) UpdateChannel(ctx context.Context, id uuid.UUID, input ChannelInput) (*ChannelView, error) {
	if _, err := s.loadChannel(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if strings.TrimSpace(input.Name) != "" {
		updates["name"] = strings.TrimSpace(input.Name)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateChannel(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update channel")
		}
	}

	updated, err := s.loadChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	return channelView(updated), nil
}

func (s *service) loadChannel(ctx context.Context, id uuid.UUID) (*models.SalesChannel, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "channel id required")
	}
	channel, err := s.repo.FindChannelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "channel not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load channel")
	}
	return channel, nil
}

func (s *service) GetTierThresholds(ctx context.Context) (TierThresholds, error) {
	setting, err := s.repo.GetSetting(ctx, SettingKeyCustomerTiers)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultTierThresholds(), nil
		}
		return TierThresholds{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tier thresholds")
	}
	return decodeTierThresholds(setting.Value), nil
}

func (s *service) UpdateTierThresholds(ctx context.Context, thresholds TierThresholds) (TierThresholds, error) {
	if err := thresholds.Validate(); err != nil {
		return TierThresholds{}, pkgerrors.New(pkgerrors.CodeBadRequest, err.Error())
	}
	encoded, err := json.Marshal(thresholds)
	if err != nil {
		return TierThresholds{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode tier thresholds")
	}
	if err := s.repo.UpsertSetting(ctx, SettingKeyCustomerTiers, string(encoded)); err != nil {
		return TierThresholds{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store tier thresholds")
	}
	return thresholds, nil
}

func (s *service) GetGridLayout(ctx context.Context, userID uuid.UUID, gridKey string) (*GridLayout, error) {
	gridKey = strings.TrimSpace(gridKey)
	if gridKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "grid key required")
	}

	if pref, err := s.repo.FindGridPreference(ctx, &userID, gridKey); err == nil {
		if cols := decodeGridColumns(pref.Columns); cols != nil {
			return &GridLayout{GridKey: gridKey, Columns: cols}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load grid preference")
	}

	if pref, err := s.repo.FindGridPreference(ctx, nil, gridKey); err == nil {
		if cols := decodeGridColumns(pref.Columns); cols != nil {
			return &GridLayout{GridKey: gridKey, Columns: cols, IsDefault: true}, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load default grid preference")
	}

	return &GridLayout{GridKey: gridKey, Columns: []GridColumn{}, IsDefault: true}, nil
}

func (s *service) SaveGridLayout(ctx context.Context, userID uuid.UUID, gridKey string, columns []GridColumn) (*GridLayout, error) {
	return s.saveLayout(ctx, &userID, gridKey, columns)
}

func (s *service) SaveDefaultGridLayout(ctx context.Context, gridKey string, columns []GridColumn) (*GridLayout, error) {
	return s.saveLayout(ctx, nil, gridKey, columns)
}

func (s *service) saveLayout(ctx context.Context, userID *uuid.UUID, gridKey string, columns []GridColumn) (*GridLayout, error) {
	gridKey = strings.TrimSpace(gridKey)
	if gridKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "grid key required")
	}
	if len(columns) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "columns required")
	}
	for _, col := range columns {
		if strings.TrimSpace(col.Key) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "column key required")
		}
		if col.Width < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("column %q width must not be negative", col.Key))
		}
	}

	encoded, err := json.Marshal(columns)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode columns")
	}
	if err := s.repo.UpsertGridPreference(ctx, userID, gridKey, string(encoded)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store grid preference")
	}
	return &GridLayout{GridKey: gridKey, Columns: columns, IsDefault: userID == nil}, nil
}

// ResetGridLayout drops the user's personal layout so the shared default
// applies again.
func (s *service) ResetGridLayout(ctx context.Context, userID uuid.UUID, gridKey string) (*GridLayout, error) {
	gridKey = strings.TrimSpace(gridKey)
	if gridKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "grid key required")
	}
	if err := s.repo.DeleteGridPreference(ctx, &userID, gridKey); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset grid preference")
	}
	return s.GetGridLayout(ctx, userID, gridKey)
}
