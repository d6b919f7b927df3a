package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the aggregate profile the order sync maintains per shopper.
type Customer struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email;index"`
	Phone string    `gorm:"column:phone;index"`

	LifetimeValue decimal.Decimal `gorm:"column:lifetime_value;type:numeric(14,2);not null;default:0"`
	OrderCount    int             `gorm:"column:order_count;not null;default:0"`
	RtoCount      int             `gorm:"column:rto_count;not null;default:0"`
	Tier          string          `gorm:"column:tier"`

	// Tags holds either a JSON array or a comma list; parse through
	// types.ParseCustomerTags.
	Tags string `gorm:"column:tags"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
