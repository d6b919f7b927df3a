package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PipelineCounts summarises open-order lines by fulfillment state.
type PipelineCounts struct {
	PendingUnits     int `json:"pendingUnits"`
	AllocatedUnits   int `json:"allocatedUnits"`
	ReadyToShipUnits int `json:"readyToShipUnits"`
	TotalUnits       int `json:"totalUnits"`
}

// PaymentSplit is the COD-vs-prepaid breakdown over the trailing window.
type PaymentSplit struct {
	CODOrders     int             `json:"codOrders"`
	CODAmount     decimal.Decimal `json:"codAmount"`
	PrepaidOrders int             `json:"prepaidOrders"`
	PrepaidAmount decimal.Decimal `json:"prepaidAmount"`
}

// PeriodRevenue is the revenue roll-up for one dashboard window.
type PeriodRevenue struct {
	Key                PeriodKey       `json:"key"`
	Label              string          `json:"label"`
	Revenue            decimal.Decimal `json:"revenue"`
	OrderCount         int             `json:"orderCount"`
	NewCustomers       int             `json:"newCustomers"`
	ReturningCustomers int             `json:"returningCustomers"`

	// DayOverDayPct is populated for the today window only.
	DayOverDayPct *float64 `json:"dayOverDayPct,omitempty"`
}

// VariantUnits is one colour's share of a top product.
type VariantUnits struct {
	VariationID uuid.UUID `json:"variationId"`
	Colour      string    `json:"colour"`
	Units       int       `json:"units"`
}

// TopProduct is one entry in the trailing-30-day product ranking.
type TopProduct struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
	Variants  []VariantUnits  `json:"variants"`
}

// Snapshot is the full dashboard payload.
type Snapshot struct {
	Pipeline    PipelineCounts  `json:"pipeline"`
	Payments    PaymentSplit    `json:"payments"`
	Periods     []PeriodRevenue `json:"periods"`
	TopProducts []TopProduct    `json:"topProducts"`
}

// periodStats is the repository-level roll-up for one window.
type periodStats struct {
	Revenue            decimal.Decimal
	OrderCount         int
	NewCustomers       int
	ReturningCustomers int
}
