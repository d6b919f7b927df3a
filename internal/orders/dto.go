package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// FlatRow is one grid row: one order line, or a placeholder when the order
// has no lines. Order-level chrome repeats on every row; IsFirstLine tells
// the grid to render it once.
type FlatRow struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	OrderDate   time.Time `json:"orderDate"`

	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	CustomerPhone string   `json:"customerPhone"`
	CustomerTier  string   `json:"customerTier,omitempty"`
	CustomerTags  []string `json:"customerTags,omitempty"`
	City          string   `json:"city"`

	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	SalesChannel  string              `json:"salesChannel,omitempty"`
	InternalNotes *string             `json:"internalNotes,omitempty"`

	FulfillmentStage enums.FulfillmentStage `json:"fulfillmentStage"`
	IsFirstLine      bool                   `json:"isFirstLine"`
	TotalLines       int                    `json:"totalLines"`

	LineID          *uuid.UUID       `json:"lineId,omitempty"`
	SkuCode         string           `json:"skuCode,omitempty"`
	ProductName     string           `json:"productName,omitempty"`
	VariationColour string           `json:"variationColour,omitempty"`
	Size            string           `json:"size,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Qty             int              `json:"qty"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	Mrp             decimal.Decimal  `json:"mrp"`
	DiscountPct     int              `json:"discountPct"`
	MarginPct       int              `json:"marginPct"`
	LineStatus      enums.LineStatus `json:"lineStatus,omitempty"`

	AwbNumber      *string `json:"awbNumber,omitempty"`
	Courier        *string `json:"courier,omitempty"`
	TrackingStatus *string `json:"trackingStatus,omitempty"`

	DaysInTransit     *int            `json:"daysInTransit,omitempty"`
	DaysSinceDelivery *int            `json:"daysSinceDelivery,omitempty"`
	DaysInRTO         *int            `json:"daysInRto,omitempty"`
	RTOStatus         enums.RTOStatus `json:"rtoStatus,omitempty"`

	// FabricOutOfStock is a tri-state: nil when the SKU carries no BOM
	// fabric link, otherwise the fabric's out-of-stock flag.
	FabricOutOfStock *bool `json:"fabricOutOfStock"`

	IsCustomSku         bool   `json:"isCustomSku"`
	ProductionBatchCode string `json:"productionBatchCode,omitempty"`

	ShopifyFulfillment   string `json:"shopifyFulfillment,omitempty"`
	ShopifyDiscountCodes string `json:"shopifyDiscountCodes,omitempty"`
	ShopifyTags          string `json:"shopifyTags,omitempty"`
}

// ListInput is the validated request for the orders grid.
type ListInput struct {
	View      enums.OrderView
	SubFilter enums.ShippedSubFilter
	Search    string
	Days      int
	SortField string
	SortDesc  bool
	Page      int
	PageSize  int
}

// ListResult is one page of flattened rows.
type ListResult struct {
	Rows       []FlatRow `json:"rows"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalRows  int64     `json:"totalOrders"`
	TotalPages int       `json:"totalPages"`
}

// SearchHit is one order inside a search bucket.
type SearchHit struct {
	OrderID       uuid.UUID           `json:"orderId"`
	OrderNumber   string              `json:"orderNumber"`
	OrderDate     time.Time           `json:"orderDate"`
	CustomerName  string              `json:"customerName"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	LineCount     int                 `json:"lineCount"`
}

// SearchBucketResult is one non-empty bucket in a search-all response.
type SearchBucketResult struct {
	Bucket      enums.SearchBucket `json:"bucket"`
	DisplayName string             `json:"displayName"`
	Hits        []SearchHit        `json:"hits"`
}

// SearchAllResult aggregates every non-empty bucket.
type SearchAllResult struct {
	Results      []SearchBucketResult `json:"results"`
	TotalResults int                  `json:"totalResults"`
}

// OrderDetail is the single-order view: the order header plus its
// flattened rows.
type OrderDetail struct {
	OrderID       uuid.UUID           `json:"orderId"`
	OrderNumber   string              `json:"orderNumber"`
	OrderDate     time.Time           `json:"orderDate"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	CustomerPhone string              `json:"customerPhone"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	IsArchived    bool                `json:"isArchived"`
	IsExchange    bool                `json:"isExchange"`
	Rows          []FlatRow           `json:"rows"`
}
