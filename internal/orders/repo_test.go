package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT,
  email TEXT,
  phone TEXT,
  lifetime_value NUMERIC NOT NULL DEFAULT 0,
  order_count INTEGER NOT NULL DEFAULT 0,
  rto_count INTEGER NOT NULL DEFAULT 0,
  tier TEXT,
  tags TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS variations (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  colour TEXT NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS fabric_colours (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  stock_balance_metres NUMERIC NOT NULL DEFAULT 0,
  is_out_of_stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS skus (
  id TEXT PRIMARY KEY,
  variation_id TEXT NOT NULL,
  code TEXT NOT NULL,
  size TEXT NOT NULL,
  mrp NUMERIC NOT NULL DEFAULT 0,
  stock_balance INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS bom_lines (
  id TEXT PRIMARY KEY,
  sku_id TEXT NOT NULL,
  fabric_colour_id TEXT NOT NULL,
  qty_metres NUMERIC NOT NULL DEFAULT 0,
  unit_cost NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS production_batches (
  id TEXT PRIMARY KEY,
  batch_code TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'open',
  order_date DATETIME NOT NULL,
  ship_by_date DATETIME,
  customer_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  customer_phone TEXT,
  shipping_address TEXT,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL DEFAULT 'prepaid',
  sales_channel TEXT,
  internal_notes TEXT,
  is_archived INTEGER NOT NULL DEFAULT 0,
  released_to_shipped INTEGER NOT NULL DEFAULT 0,
  released_to_cancelled INTEGER NOT NULL DEFAULT 0,
  is_exchange INTEGER NOT NULL DEFAULT 0,
  original_order_id TEXT,
  cod_remitted_at DATETIME,
  shipped_at DATETIME,
  archived_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  sku_id TEXT NOT NULL,
  qty INTEGER NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  line_status TEXT NOT NULL DEFAULT 'pending',
  awb_number TEXT,
  courier TEXT,
  shipped_at DATETIME,
  delivered_at DATETIME,
  tracking_status TEXT,
  last_scan_at DATETIME,
  last_scan_location TEXT,
  rto_initiated_at DATETIME,
  rto_received_at DATETIME,
  return_status TEXT,
  return_qty INTEGER NOT NULL DEFAULT 0,
  return_reason TEXT,
  return_resolution TEXT,
  refund_amount NUMERIC,
  exchange_order_id TEXT,
  is_custom_sku INTEGER NOT NULL DEFAULT 0,
  production_batch_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS shopify_order_caches (
  order_id TEXT PRIMARY KEY,
  fulfillment_status TEXT,
  discount_codes TEXT,
  tags TEXT,
  tracking_numbers TEXT,
  synced_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{
		"order_lines", "shopify_order_caches", "orders", "bom_lines",
		"skus", "variations", "products", "fabric_colours",
		"production_batches", "customers",
	} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

type orderSeed struct {
	number   string
	status   string
	shipped  bool
	cancel   bool
	archived bool
	payment  enums.PaymentMethod
	remitted *time.Time
	lines    []models.OrderLine
}

func seedOrder(t *testing.T, db *gorm.DB, seed orderSeed) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                  uuid.New(),
		OrderNumber:         seed.number,
		Status:              seed.status,
		OrderDate:           time.Now().Add(-24 * time.Hour),
		TotalAmount:         decimal.RequireFromString("1000"),
		PaymentMethod:       seed.payment,
		IsArchived:          seed.archived,
		ReleasedToShipped:   seed.shipped,
		ReleasedToCancelled: seed.cancel,
		CodRemittedAt:       seed.remitted,
	}
	if order.Status == "" {
		order.Status = "closed"
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = enums.PaymentMethodPrepaid
	}
	require.NoError(t, db.Create(order).Error)

	for i := range seed.lines {
		line := seed.lines[i]
		line.ID = uuid.New()
		line.OrderID = order.ID
		if line.SkuID == uuid.Nil {
			line.SkuID = uuid.New()
		}
		if line.Qty == 0 {
			line.Qty = 1
		}
		if line.UnitPrice.IsZero() {
			line.UnitPrice = decimal.RequireFromString("500")
		}
		if line.LineStatus == "" {
			line.LineStatus = enums.LineStatusPending
		}
		require.NoError(t, db.Create(&line).Error)
	}
	return order
}

func listNumbers(t *testing.T, db *gorm.DB, q ListQuery) []string {
	t.Helper()
	repo := NewRepository(db)
	if q.Limit == 0 {
		q.Limit = 100
	}
	rows, _, err := repo.ListOrders(context.Background(), q)
	require.NoError(t, err)
	numbers := make([]string, 0, len(rows))
	for _, row := range rows {
		numbers = append(numbers, row.OrderNumber)
	}
	return numbers
}

func TestOpenViewMembershipMatrix(t *testing.T) {
	db := setupOrdersTestDB(t)

	cases := []struct {
		status  string
		shipped bool
		cancel  bool
		want    bool
	}{
		{"open", false, false, true},
		{"open", true, false, true},
		{"open", false, true, true},
		{"closed", false, false, true},
		{"closed", true, false, false},
		{"closed", false, true, false},
		{"closed", true, true, false},
	}
	for i, tc := range cases {
		seedOrder(t, db, orderSeed{
			number:  fmt.Sprintf("#M%02d", i),
			status:  tc.status,
			shipped: tc.shipped,
			cancel:  tc.cancel,
		})
	}
	// Archived open-shaped order must never appear.
	seedOrder(t, db, orderSeed{number: "#MARCH", status: "open", archived: true})

	numbers := listNumbers(t, db, ListQuery{
		Scopes: []func(*gorm.DB) *gorm.DB{ViewScope(enums.OrderViewOpen, "")},
	})

	for i, tc := range cases {
		num := fmt.Sprintf("#M%02d", i)
		if tc.want {
			assert.Contains(t, numbers, num, "case %d should be open", i)
		} else {
			assert.NotContains(t, numbers, num, "case %d should not be open", i)
		}
	}
	assert.NotContains(t, numbers, "#MARCH")
}

func TestShippedViewSubFilters(t *testing.T) {
	db := setupOrdersTestDB(t)

	rto := string(enums.TrackingStatusRTOInTransit)
	delivered := string(enums.TrackingStatusDelivered)
	transit := string(enums.TrackingStatusInTransit)
	remitted := time.Now().Add(-time.Hour)

	seedOrder(t, db, orderSeed{number: "#S1", shipped: true, lines: []models.OrderLine{{TrackingStatus: &transit}}})
	seedOrder(t, db, orderSeed{number: "#S2", shipped: true, lines: []models.OrderLine{{TrackingStatus: &rto}}})
	seedOrder(t, db, orderSeed{
		number: "#S3", shipped: true, payment: enums.PaymentMethodCOD,
		lines: []models.OrderLine{{TrackingStatus: &delivered}},
	})
	seedOrder(t, db, orderSeed{
		number: "#S4", shipped: true, payment: enums.PaymentMethodCOD, remitted: &remitted,
		lines: []models.OrderLine{{TrackingStatus: &delivered}},
	})
	seedOrder(t, db, orderSeed{number: "#S5", shipped: false})

	all := listNumbers(t, db, ListQuery{
		Scopes: []func(*gorm.DB) *gorm.DB{ViewScope(enums.OrderViewShipped, enums.ShippedSubFilterAll)},
	})
	assert.ElementsMatch(t, []string{"#S1", "#S2", "#S3", "#S4"}, all)

	rtoOnly := listNumbers(t, db, ListQuery{
		Scopes: []func(*gorm.DB) *gorm.DB{ViewScope(enums.OrderViewShipped, enums.ShippedSubFilterRTO)},
	})
	assert.ElementsMatch(t, []string{"#S2"}, rtoOnly)

	codPending := listNumbers(t, db, ListQuery{
		Scopes: []func(*gorm.DB) *gorm.DB{ViewScope(enums.OrderViewShipped, enums.ShippedSubFilterCODPending)},
	})
	assert.ElementsMatch(t, []string{"#S3"}, codPending)
}

func TestSearchScopeMatchesAcrossFields(t *testing.T) {
	db := setupOrdersTestDB(t)

	awb := "BLUEDART98765"
	order := seedOrder(t, db, orderSeed{number: "#F100", status: "open"})
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
		"customer_name":  "Priya Sharma",
		"customer_email": "priya@example.com",
		"customer_phone": "+919812345678",
	}).Error)
	require.NoError(t, db.Create(&models.OrderLine{
		ID:        uuid.New(),
		OrderID:   order.ID,
		SkuID:     uuid.New(),
		Qty:       1,
		UnitPrice: decimal.RequireFromString("500"),
		AwbNumber: &awb,
	}).Error)
	seedOrder(t, db, orderSeed{number: "#F200", status: "open"})

	for _, q := range []string{"f100", "PRIYA", "priya@example", "98123", "bluedart"} {
		numbers := listNumbers(t, db, ListQuery{
			Scopes: []func(*gorm.DB) *gorm.DB{SearchScope(q)},
		})
		assert.Equal(t, []string{"#F100"}, numbers, "query %q", q)
	}
}

func TestBucketScopesSplitShippedAndRTO(t *testing.T) {
	db := setupOrdersTestDB(t)

	rto := string(enums.TrackingStatusRTOInTransit)
	transit := string(enums.TrackingStatusInTransit)

	seedOrder(t, db, orderSeed{number: "#B1", shipped: true, lines: []models.OrderLine{{TrackingStatus: &transit}}})
	seedOrder(t, db, orderSeed{number: "#B2", shipped: true, lines: []models.OrderLine{{TrackingStatus: &rto}}})
	seedOrder(t, db, orderSeed{number: "#B3", archived: true, status: "open"})

	repo := NewRepository(db)
	ctx := context.Background()

	shipped, err := repo.SearchBucket(ctx, enums.SearchBucketShipped, "#b", 20)
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, "#B1", shipped[0].OrderNumber)

	rtoHits, err := repo.SearchBucket(ctx, enums.SearchBucketRTO, "#b", 20)
	require.NoError(t, err)
	require.Len(t, rtoHits, 1)
	assert.Equal(t, "#B2", rtoHits[0].OrderNumber)

	archived, err := repo.SearchBucket(ctx, enums.SearchBucketArchived, "#b", 20)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "#B3", archived[0].OrderNumber)
}

func TestBucketScopesInTransitAndDelivered(t *testing.T) {
	db := setupOrdersTestDB(t)

	transit := string(enums.TrackingStatusInTransit)
	outForDelivery := string(enums.TrackingStatusOutForDeliv)
	delivered := string(enums.TrackingStatusDelivered)
	rto := string(enums.TrackingStatusRTOInTransit)

	seedOrder(t, db, orderSeed{number: "#T1", shipped: true, lines: []models.OrderLine{{TrackingStatus: &transit}}})
	seedOrder(t, db, orderSeed{number: "#T2", shipped: true, lines: []models.OrderLine{{TrackingStatus: &outForDelivery}}})
	seedOrder(t, db, orderSeed{number: "#T3", shipped: true, lines: []models.OrderLine{{TrackingStatus: &delivered}}})
	seedOrder(t, db, orderSeed{number: "#T4", shipped: true, lines: []models.OrderLine{{TrackingStatus: &rto}}})
	// Shipped but no tracking scan yet: neither in transit nor delivered.
	seedOrder(t, db, orderSeed{number: "#T5", shipped: true, lines: []models.OrderLine{{}}})
	seedOrder(t, db, orderSeed{number: "#T6", shipped: false, lines: []models.OrderLine{{TrackingStatus: &transit}}})
	// Split order: one line delivered, one still moving.
	seedOrder(t, db, orderSeed{number: "#T7", shipped: true, lines: []models.OrderLine{
		{TrackingStatus: &delivered},
		{TrackingStatus: &transit},
	}})

	repo := NewRepository(db)
	ctx := context.Background()

	inTransit, err := repo.SearchBucket(ctx, enums.SearchBucketInTransit, "#t", 20)
	require.NoError(t, err)
	numbers := make([]string, 0, len(inTransit))
	for _, order := range inTransit {
		numbers = append(numbers, order.OrderNumber)
	}
	assert.ElementsMatch(t, []string{"#T1", "#T2", "#T7"}, numbers)

	deliveredHits, err := repo.SearchBucket(ctx, enums.SearchBucketDelivered, "#t", 20)
	require.NoError(t, err)
	numbers = numbers[:0]
	for _, order := range deliveredHits {
		numbers = append(numbers, order.OrderNumber)
	}
	assert.ElementsMatch(t, []string{"#T3", "#T7"}, numbers)
}

func TestSearchAllCoversTrackingBuckets(t *testing.T) {
	db := setupOrdersTestDB(t)

	transit := string(enums.TrackingStatusInTransit)
	delivered := string(enums.TrackingStatusDelivered)
	seedOrder(t, db, orderSeed{number: "#TR1", shipped: true, lines: []models.OrderLine{{TrackingStatus: &transit}}})
	seedOrder(t, db, orderSeed{number: "#TR2", shipped: true, lines: []models.OrderLine{{TrackingStatus: &delivered}}})

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	result, err := svc.SearchAll(context.Background(), "#tr")
	require.NoError(t, err)

	byBucket := make(map[enums.SearchBucket][]string)
	for _, bucket := range result.Results {
		for _, hit := range bucket.Hits {
			byBucket[bucket.Bucket] = append(byBucket[bucket.Bucket], hit.OrderNumber)
		}
	}
	assert.ElementsMatch(t, []string{"#TR1"}, byBucket[enums.SearchBucketInTransit])
	assert.ElementsMatch(t, []string{"#TR2"}, byBucket[enums.SearchBucketDelivered])
}

func TestSearchBucketRespectsCap(t *testing.T) {
	db := setupOrdersTestDB(t)

	for i := 0; i < 25; i++ {
		seedOrder(t, db, orderSeed{number: fmt.Sprintf("#CAP%02d", i), status: "open"})
	}

	repo := NewRepository(db)
	hits, err := repo.SearchBucket(context.Background(), enums.SearchBucketOpen, "#cap", 20)
	require.NoError(t, err)
	assert.Len(t, hits, 20)
}

// End-to-end check: a shipped COD order whose line tracks
// "delivered" is cod_pending while unremitted, then plain shipped once
// remitted. It never counts as RTO.
func TestCODDeliveredScenario(t *testing.T) {
	db := setupOrdersTestDB(t)

	delivered := string(enums.TrackingStatusDelivered)
	order := seedOrder(t, db, orderSeed{
		number: "#1001", shipped: true, payment: enums.PaymentMethodCOD,
		lines: []models.OrderLine{{LineStatus: enums.LineStatusShipped, TrackingStatus: &delivered}},
	})

	repo := NewRepository(db)
	ctx := context.Background()

	hits, err := repo.SearchBucket(ctx, enums.SearchBucketRTO, "#1001", 20)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = repo.SearchBucket(ctx, enums.SearchBucketCODPending, "#1001", 20)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.SearchBucket(ctx, enums.SearchBucketShipped, "#1001", 20)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("cod_remitted_at", time.Now()).Error)

	hits, err = repo.SearchBucket(ctx, enums.SearchBucketCODPending, "#1001", 20)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = repo.SearchBucket(ctx, enums.SearchBucketShipped, "#1001", 20)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestListOrdersCountsAndPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)

	for i := 0; i < 7; i++ {
		seedOrder(t, db, orderSeed{number: fmt.Sprintf("#P%02d", i), status: "open"})
	}

	repo := NewRepository(db)
	rows, total, err := repo.ListOrders(context.Background(), ListQuery{
		Scopes:  []func(*gorm.DB) *gorm.DB{ViewScope(enums.OrderViewOpen, "")},
		SortCol: "orders.order_number",
		Offset:  0,
		Limit:   3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	assert.Len(t, rows, 3)
}
