package orders

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// gridPreloads loads everything the flattener reads.
func gridPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer").
		Preload("ShopifyCache").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_lines.created_at ASC")
		}).
		Preload("Lines.Sku").
		Preload("Lines.Sku.Variation").
		Preload("Lines.Sku.Variation.Product").
		Preload("Lines.Sku.BomLines").
		Preload("Lines.Sku.BomLines.FabricColour").
		Preload("Lines.ProductionBatch")
}

func (r *repository) scoped(ctx context.Context, scopes []func(*gorm.DB) *gorm.DB) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Order{})
	for _, scope := range scopes {
		db = scope(db)
	}
	return db
}

func (r *repository) ListOrders(ctx context.Context, q ListQuery) ([]models.Order, int64, error) {
	var (
		rows  []models.Order
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.scoped(gctx, q.Scopes).Count(&total).Error
	})
	g.Go(func() error {
		db := gridPreloads(r.scoped(gctx, q.Scopes))
		if q.SortCol != "" {
			dir := " ASC"
			if q.SortDesc {
				dir = " DESC"
			}
			db = db.Order(q.SortCol + dir)
		}
		return db.Offset(q.Offset).Limit(q.Limit).Find(&rows).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := gridPreloads(r.db.WithContext(ctx)).
		Where("orders.id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := gridPreloads(r.db.WithContext(ctx)).
		Where("orders.order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) SearchBucket(ctx context.Context, bucket enums.SearchBucket, query string, limit int) ([]models.Order, error) {
	var rows []models.Order
	db := r.db.WithContext(ctx).Model(&models.Order{})
	db = BucketScope(bucket)(db)
	db = SearchScope(query)(db)
	err := db.
		Preload("Lines").
		Order("orders.order_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateInternalNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("internal_notes", notes).Error
}
