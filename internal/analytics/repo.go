package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the read-only reporting surface. Every method propagates
// database errors; partial or zeroed results would silently show wrong
// numbers on the dashboard.
type Repository interface {
	PipelineCounts(ctx context.Context) (PipelineCounts, error)
	PaymentSplit(ctx context.Context, since time.Time) (PaymentSplit, error)
	PeriodStats(ctx context.Context, start, end time.Time) (periodStats, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the analytics repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// openOrderPredicate matches the open view on the grid.
const openOrderPredicate = `(orders.status = 'open' OR (orders.released_to_shipped = ? AND orders.released_to_cancelled = ?))
	AND orders.is_archived = ?`

func (r *repository) PipelineCounts(ctx context.Context) (PipelineCounts, error) {
	var rows []struct {
		LineStatus string
		Units      int
	}
	err := r.db.WithContext(ctx).
		Table("order_lines").
		Select("order_lines.line_status AS line_status, COALESCE(SUM(order_lines.qty), 0) AS units").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where(openOrderPredicate, false, false, false).
		Group("order_lines.line_status").
		Scan(&rows).Error
	if err != nil {
		return PipelineCounts{}, err
	}

	var counts PipelineCounts
	for _, row := range rows {
		switch row.LineStatus {
		case "pending":
			counts.PendingUnits = row.Units
		case "allocated":
			counts.AllocatedUnits = row.Units
		case "packed":
			counts.ReadyToShipUnits = row.Units
		}
		counts.TotalUnits += row.Units
	}
	return counts, nil
}

func (r *repository) PaymentSplit(ctx context.Context, since time.Time) (PaymentSplit, error) {
	var rows []struct {
		PaymentMethod string
		Orders        int
		Amount        decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.payment_method AS payment_method, COUNT(*) AS orders, COALESCE(SUM(orders.total_amount), 0) AS amount").
		Where("orders.order_date >= ?", since).
		Where("orders.released_to_cancelled = ?", false).
		Group("orders.payment_method").
		Scan(&rows).Error
	if err != nil {
		return PaymentSplit{}, err
	}

	split := PaymentSplit{CODAmount: decimal.Zero, PrepaidAmount: decimal.Zero}
	for _, row := range rows {
		if row.PaymentMethod == "COD" {
			split.CODOrders += row.Orders
			split.CODAmount = split.CODAmount.Add(row.Amount)
		} else {
			split.PrepaidOrders += row.Orders
			split.PrepaidAmount = split.PrepaidAmount.Add(row.Amount)
		}
	}
	return split, nil
}

func (r *repository) PeriodStats(ctx context.Context, start, end time.Time) (periodStats, error) {
	// A customer is "new" on the order that is their first by order_date;
	// orders without a linked customer count as new. Cancelled orders do
	// not count as history, matching the outer exclusion.
	var row struct {
		Revenue      decimal.Decimal
		OrderCount   int
		NewCustomers int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(orders.total_amount), 0) AS revenue,
			COUNT(*) AS order_count,
			COALESCE(SUM(CASE WHEN orders.customer_id IS NULL OR (
				SELECT COUNT(*) FROM orders prior
				WHERE prior.customer_id = orders.customer_id
				AND prior.released_to_cancelled = ?
				AND prior.order_date <= orders.order_date
			) = 1 THEN 1 ELSE 0 END), 0) AS new_customers
		FROM orders
		WHERE orders.order_date >= ? AND orders.order_date < ?
		AND orders.released_to_cancelled = ?`,
		false, start, end, false,
	).Scan(&row).Error
	if err != nil {
		return periodStats{}, err
	}
	return periodStats{
		Revenue:            row.Revenue,
		OrderCount:         row.OrderCount,
		NewCustomers:       row.NewCustomers,
		ReturningCustomers: row.OrderCount - row.NewCustomers,
	}, nil
}

func (r *repository) TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error) {
	var productRows []struct {
		ProductID uuid.UUID
		Name      string
		Units     int
		Revenue   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			products.id AS product_id,
			products.name AS name,
			COALESCE(SUM(order_lines.qty), 0) AS units,
			COALESCE(SUM(order_lines.unit_price * order_lines.qty), 0) AS revenue
		FROM order_lines
		JOIN orders ON orders.id = order_lines.order_id
		JOIN skus ON skus.id = order_lines.sku_id
		JOIN variations ON variations.id = skus.variation_id
		JOIN products ON products.id = variations.product_id
		WHERE orders.order_date >= ?
		AND orders.released_to_cancelled = ?
		GROUP BY products.id, products.name
		ORDER BY units DESC
		LIMIT ?`,
		since, false, limit,
	).Scan(&productRows).Error
	if err != nil {
		return nil, err
	}
	if len(productRows) == 0 {
		return []TopProduct{}, nil
	}

	ids := make([]uuid.UUID, 0, len(productRows))
	for _, row := range productRows {
		ids = append(ids, row.ProductID)
	}

	var variantRows []struct {
		ProductID   uuid.UUID
		VariationID uuid.UUID
		Colour      string
		Units       int
	}
	err = r.db.WithContext(ctx).Raw(`
		SELECT
			variations.product_id AS product_id,
			variations.id AS variation_id,
			variations.colour AS colour,
			COALESCE(SUM(order_lines.qty), 0) AS units
		FROM order_lines
		JOIN orders ON orders.id = order_lines.order_id
		JOIN skus ON skus.id = order_lines.sku_id
		JOIN variations ON variations.id = skus.variation_id
		WHERE orders.order_date >= ?
		AND orders.released_to_cancelled = ?
		AND variations.product_id IN ?
		GROUP BY variations.product_id, variations.id, variations.colour
		ORDER BY units DESC`,
		since, false, ids,
	).Scan(&variantRows).Error
	if err != nil {
		return nil, err
	}

	variantsByProduct := make(map[uuid.UUID][]VariantUnits, len(productRows))
	for _, row := range variantRows {
		variantsByProduct[row.ProductID] = append(variantsByProduct[row.ProductID], VariantUnits{
			VariationID: row.VariationID,
			Colour:      row.Colour,
			Units:       row.Units,
		})
	}

	out := make([]TopProduct, 0, len(productRows))
	for _, row := range productRows {
		variants := variantsByProduct[row.ProductID]
		if variants == nil {
			variants = []VariantUnits{}
		}
		out = append(out, TopProduct{
			ProductID: row.ProductID,
			Name:      row.Name,
			Units:     row.Units,
			Revenue:   row.Revenue,
			Variants:  variants,
		})
	}
	return out, nil
}
