package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	"github.com/shantum/COH-ERP2-sub002/pkg/types"
)

const millisPerDay = 86_400_000

var oneHundred = decimal.NewFromInt(100)

// Flatten projects nested orders into one grid row per line. Orders with no
// lines emit a single placeholder row. The transform is pure: same graph and
// clock in, same rows out.
func Flatten(orders []models.Order, now time.Time) []FlatRow {
	rows := make([]FlatRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, FlattenOrder(&orders[i], now)...)
	}
	return rows
}

// FlattenOrder projects a single order graph.
func FlattenOrder(order *models.Order, now time.Time) []FlatRow {
	if order == nil {
		return nil
	}

	base := FlatRow{
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		OrderDate:        order.OrderDate,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		City:             types.CityFromRawAddress(order.ShippingAddress),
		PaymentMethod:    order.PaymentMethod,
		TotalAmount:      order.TotalAmount,
		SalesChannel:     order.SalesChannel,
		InternalNotes:    order.InternalNotes,
		FulfillmentStage: DeriveFulfillmentStage(order.Lines),
		TotalLines:       len(order.Lines),
	}
	if order.Customer != nil {
		base.CustomerTier = order.Customer.Tier
		base.CustomerTags = types.ParseCustomerTags(order.Customer.Tags)
	}
	if order.ShopifyCache != nil {
		base.ShopifyFulfillment = order.ShopifyCache.FulfillmentStatus
		base.ShopifyDiscountCodes = order.ShopifyCache.DiscountCodes
		base.ShopifyTags = order.ShopifyCache.Tags
	}

	if len(order.Lines) == 0 {
		placeholder := base
		placeholder.IsFirstLine = true
		placeholder.UnitPrice = decimal.Zero
		placeholder.Mrp = decimal.Zero
		return []FlatRow{placeholder}
	}

	rows := make([]FlatRow, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		row := base
		row.IsFirstLine = i == 0

		lineID := line.ID
		row.LineID = &lineID
		row.Qty = line.Qty
		row.UnitPrice = line.UnitPrice
		row.LineStatus = line.LineStatus
		row.AwbNumber = line.AwbNumber
		row.Courier = line.Courier
		row.TrackingStatus = line.TrackingStatus
		row.IsCustomSku = line.IsCustomSku

		row.DaysInTransit = daysSince(now, line.ShippedAt)
		row.DaysSinceDelivery = daysSince(now, line.DeliveredAt)
		row.DaysInRTO = daysSince(now, line.RtoInitiatedAt)
		row.RTOStatus = deriveRTOStatus(line)

		if line.Sku != nil {
			row.SkuCode = line.Sku.Code
			row.Size = line.Sku.Size
			row.Mrp = line.Sku.Mrp
			row.DiscountPct = discountPct(line.Sku.Mrp, line.UnitPrice)
			row.MarginPct = marginPct(line.UnitPrice, bomCost(line.Sku))
			row.FabricOutOfStock = fabricOutOfStock(line.Sku)
			if line.Sku.Variation != nil {
				row.VariationColour = line.Sku.Variation.Colour
				row.ImageURL = line.Sku.Variation.ImageURL
				if line.Sku.Variation.Product != nil {
					row.ProductName = line.Sku.Variation.Product.Name
					if row.ImageURL == "" {
						row.ImageURL = line.Sku.Variation.Product.ImageURL
					}
				}
			}
		}
		if line.ProductionBatch != nil {
			row.ProductionBatchCode = line.ProductionBatch.BatchCode
		}

		rows = append(rows, row)
	}
	return rows
}

// DeriveFulfillmentStage collapses the multiset of line statuses into the
// order-level stage shown on the grid.
func DeriveFulfillmentStage(lines []models.OrderLine) enums.FulfillmentStage {
	if len(lines) == 0 {
		return enums.FulfillmentStagePending
	}

	allPacked := true
	allAllocated := true
	anyInProgress := false
	for i := range lines {
		switch lines[i].LineStatus {
		case enums.LineStatusPacked:
			anyInProgress = true
			allAllocated = false
		case enums.LineStatusPicked:
			anyInProgress = true
			allPacked = false
			allAllocated = false
		case enums.LineStatusAllocated:
			allPacked = false
		default:
			allPacked = false
			allAllocated = false
		}
	}

	switch {
	case allPacked:
		return enums.FulfillmentStageReadyToShip
	case anyInProgress:
		return enums.FulfillmentStageInProgress
	case allAllocated:
		return enums.FulfillmentStageAllocated
	default:
		return enums.FulfillmentStagePending
	}
}

func deriveRTOStatus(line *models.OrderLine) enums.RTOStatus {
	switch {
	case line.RtoReceivedAt != nil:
		return enums.RTOStatusReceived
	case line.RtoInitiatedAt != nil:
		return enums.RTOStatusInTransit
	default:
		return enums.RTOStatusNone
	}
}

// discountPct returns round((mrp-price)/mrp*100) when mrp > 0 and
// price < mrp, else 0.
func discountPct(mrp, price decimal.Decimal) int {
	if mrp.LessThanOrEqual(decimal.Zero) || price.GreaterThanOrEqual(mrp) {
		return 0
	}
	pct := mrp.Sub(price).Div(mrp).Mul(oneHundred)
	return int(pct.Round(0).IntPart())
}

// marginPct returns round((price-bomCost)/price*100) when price > 0 and a
// bom cost exists, else 0.
func marginPct(price decimal.Decimal, cost *decimal.Decimal) int {
	if cost == nil || price.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	pct := price.Sub(*cost).Div(price).Mul(oneHundred)
	return int(pct.Round(0).IntPart())
}

// bomCost sums metres x unit cost across the SKU's bill of materials; nil
// when no BOM lines exist.
func bomCost(sku *models.Sku) *decimal.Decimal {
	if sku == nil || len(sku.BomLines) == 0 {
		return nil
	}
	total := decimal.Zero
	for i := range sku.BomLines {
		total = total.Add(sku.BomLines[i].QtyMetres.Mul(sku.BomLines[i].UnitCost))
	}
	return &total
}

// fabricOutOfStock is tri-state: nil when the SKU has no BOM fabric link,
// otherwise whether any linked fabric is flagged out of stock. nil and
// false are distinct and must not be collapsed.
func fabricOutOfStock(sku *models.Sku) *bool {
	if sku == nil {
		return nil
	}
	linked := false
	out := false
	for i := range sku.BomLines {
		if sku.BomLines[i].FabricColour == nil {
			continue
		}
		linked = true
		if sku.BomLines[i].FabricColour.IsOutOfStock {
			out = true
		}
	}
	if !linked {
		return nil
	}
	return &out
}

// daysSince returns floor((now-ts)/1d) in whole days, or nil without a
// timestamp.
func daysSince(now time.Time, ts *time.Time) *int {
	if ts == nil {
		return nil
	}
	ms := now.Sub(*ts).Milliseconds()
	days := int(ms / millisPerDay)
	if ms < 0 && ms%millisPerDay != 0 {
		days--
	}
	return &days
}
