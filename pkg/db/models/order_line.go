package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// OrderLine is one SKU within an order, carrying its own fulfillment,
// shipment and return sub-state. Line status is read-derived relative to
// the order release flags; nothing enforces consistency transactionally.
type OrderLine struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	SkuID   uuid.UUID `gorm:"column:sku_id;type:uuid;not null"`

	Qty        int              `gorm:"column:qty;not null;default:1"`
	UnitPrice  decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineStatus enums.LineStatus `gorm:"column:line_status;not null;default:'pending'"`

	AwbNumber        *string    `gorm:"column:awb_number;index"`
	Courier          *string    `gorm:"column:courier"`
	ShippedAt        *time.Time `gorm:"column:shipped_at"`
	DeliveredAt      *time.Time `gorm:"column:delivered_at"`
	TrackingStatus   *string    `gorm:"column:tracking_status;index"`
	LastScanAt       *time.Time `gorm:"column:last_scan_at"`
	LastScanLocation *string    `gorm:"column:last_scan_location"`

	RtoInitiatedAt *time.Time `gorm:"column:rto_initiated_at"`
	RtoReceivedAt  *time.Time `gorm:"column:rto_received_at"`

	ReturnStatus     *string    `gorm:"column:return_status"`
	ReturnQty        int        `gorm:"column:return_qty;not null;default:0"`
	ReturnReason     *string    `gorm:"column:return_reason"`
	ReturnResolution *string    `gorm:"column:return_resolution"`
	RefundAmount     *decimal.Decimal `gorm:"column:refund_amount;type:numeric(12,2)"`
	ExchangeOrderID  *uuid.UUID `gorm:"column:exchange_order_id;type:uuid"`

	// IsCustomSku marks bespoke SKUs, which are non-returnable by policy.
	IsCustomSku bool `gorm:"column:is_custom_sku;not null;default:false"`

	ProductionBatchID *uuid.UUID `gorm:"column:production_batch_id;type:uuid"`

	Sku             *Sku             `gorm:"foreignKey:SkuID"`
	ProductionBatch *ProductionBatch `gorm:"foreignKey:ProductionBatchID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
