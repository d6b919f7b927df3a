package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// Order is one customer order as ingested from Shopify. Lifecycle is
// tracked with release flags rather than a single status column; the
// legacy `status` literal is still honored by the open-view predicate.
type Order struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string    `gorm:"column:order_number;not null;uniqueIndex"`
	Status      string    `gorm:"column:status;not null;default:'open'"`

	OrderDate time.Time  `gorm:"column:order_date;not null"`
	ShipByDate *time.Time `gorm:"column:ship_by_date"`

	CustomerID    *uuid.UUID `gorm:"column:customer_id;type:uuid"`
	CustomerName  string     `gorm:"column:customer_name"`
	CustomerEmail string     `gorm:"column:customer_email"`
	CustomerPhone string     `gorm:"column:customer_phone"`

	// ShippingAddress holds the raw JSON blob from Shopify; decode through
	// types.DecodeShippingAddress, never directly.
	ShippingAddress string `gorm:"column:shipping_address"`

	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null;default:'prepaid'"`
	SalesChannel  string              `gorm:"column:sales_channel"`
	InternalNotes *string             `gorm:"column:internal_notes"`

	IsArchived          bool `gorm:"column:is_archived;not null;default:false"`
	ReleasedToShipped   bool `gorm:"column:released_to_shipped;not null;default:false"`
	ReleasedToCancelled bool `gorm:"column:released_to_cancelled;not null;default:false"`
	IsExchange          bool `gorm:"column:is_exchange;not null;default:false"`

	OriginalOrderID *uuid.UUID `gorm:"column:original_order_id;type:uuid"`
	CodRemittedAt   *time.Time `gorm:"column:cod_remitted_at"`
	ShippedAt       *time.Time `gorm:"column:shipped_at"`
	ArchivedAt      *time.Time `gorm:"column:archived_at"`

	Customer     *Customer          `gorm:"foreignKey:CustomerID"`
	Lines        []OrderLine        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShopifyCache *ShopifyOrderCache `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
