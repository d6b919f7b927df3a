package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopifyOrderCache is the per-order snapshot the Shopify sync maintains so
// the grid never has to call Shopify inline.
type ShopifyOrderCache struct {
	OrderID           uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	FulfillmentStatus string    `gorm:"column:fulfillment_status"`
	DiscountCodes     string    `gorm:"column:discount_codes"`
	Tags              string    `gorm:"column:tags"`
	TrackingNumbers   string    `gorm:"column:tracking_numbers"`
	SyncedAt          time.Time `gorm:"column:synced_at"`
}
