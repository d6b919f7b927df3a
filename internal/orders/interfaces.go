package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// Repository is the persistence surface for order reads.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// ListOrders returns one page plus the total match count. The count and
	// fetch queries run concurrently.
	ListOrders(ctx context.Context, q ListQuery) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	SearchBucket(ctx context.Context, bucket enums.SearchBucket, query string, limit int) ([]models.Order, error)
	UpdateInternalNotes(ctx context.Context, id uuid.UUID, notes *string) error
}

// ListQuery is the repository-level listing request. Scope is any
// combination of the filter scopes in this package.
type ListQuery struct {
	Scopes    []func(*gorm.DB) *gorm.DB
	SortCol   string
	SortDesc  bool
	Offset    int
	Limit     int
}
