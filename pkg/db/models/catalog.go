package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product -> Variation -> Sku is the three-level catalog hierarchy.

type Product struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"column:name;not null"`
	ImageURL string    `gorm:"column:image_url"`

	Variations []Variation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Variation struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Colour    string    `gorm:"column:colour;not null"`
	ImageURL  string    `gorm:"column:image_url"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Skus    []Sku    `gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Sku struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariationID uuid.UUID       `gorm:"column:variation_id;type:uuid;not null;index"`
	Code        string          `gorm:"column:code;not null;uniqueIndex"`
	Size        string          `gorm:"column:size;not null"`
	Mrp         decimal.Decimal `gorm:"column:mrp;type:numeric(12,2);not null;default:0"`
	StockBalance int            `gorm:"column:stock_balance;not null;default:0"`

	Variation *Variation `gorm:"foreignKey:VariationID"`
	BomLines  []BomLine  `gorm:"foreignKey:SkuID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BomLine is one bill-of-materials input consumed to produce a SKU.
type BomLine struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SkuID          uuid.UUID       `gorm:"column:sku_id;type:uuid;not null;index"`
	FabricColourID uuid.UUID       `gorm:"column:fabric_colour_id;type:uuid;not null"`
	QtyMetres      decimal.Decimal `gorm:"column:qty_metres;type:numeric(10,3);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null;default:0"`

	FabricColour *FabricColour `gorm:"foreignKey:FabricColourID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

type FabricColour struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string          `gorm:"column:name;not null"`
	StockBalanceMetres decimal.Decimal `gorm:"column:stock_balance_metres;type:numeric(10,3);not null;default:0"`
	IsOutOfStock      bool            `gorm:"column:is_out_of_stock;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
