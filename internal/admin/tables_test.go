package admin

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// setupTablesTestDB creates a pared-down copy of every inspectable table.
// fabric_colours deliberately lacks its default ordering column so the
// unordered fallback has something to exercise.
func setupTablesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS orders (id TEXT PRIMARY KEY, order_number TEXT, status TEXT, order_date DATETIME, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS order_lines (id TEXT PRIMARY KEY, order_id TEXT, sku_id TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS customers (id TEXT PRIMARY KEY, name TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS products (id TEXT PRIMARY KEY, name TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS variations (id TEXT PRIMARY KEY, product_id TEXT, colour TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS skus (id TEXT PRIMARY KEY, variation_id TEXT, code TEXT, size TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS bom_lines (id TEXT PRIMARY KEY, sku_id TEXT, fabric_colour_id TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS fabric_colours (id TEXT PRIMARY KEY, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS production_batches (id TEXT PRIMARY KEY, batch_code TEXT, status TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS shopify_order_caches (order_id TEXT PRIMARY KEY, fulfillment_status TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS admin_users (id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT, password_hash TEXT, role TEXT, is_active INTEGER DEFAULT 1, token_version INTEGER DEFAULT 0, last_login_at DATETIME, created_at DATETIME, updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS permission_overrides (id TEXT PRIMARY KEY, user_id TEXT, permission TEXT, allowed INTEGER, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS sales_channels (id TEXT PRIMARY KEY, code TEXT, name TEXT, is_active INTEGER DEFAULT 1, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS system_settings (key TEXT PRIMARY KEY, value TEXT, updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS grid_preferences (id TEXT PRIMARY KEY, user_id TEXT, grid_key TEXT, columns TEXT, updated_at DATETIME);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range inspectableTables {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func newTablesService(t *testing.T, db *gorm.DB) TablesService {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewTablesService(db, &gormTxRunner{db: db}, logg)
	require.NoError(t, err)
	return svc
}

func seedInspectOrder(t *testing.T, db *gorm.DB, number string, orderDate time.Time) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, db.Exec(
		`INSERT INTO orders (id, order_number, status, order_date) VALUES (?, ?, 'open', ?)`,
		id, number, orderDate,
	).Error)
	return id
}

func TestInspectTableUnknownName(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)

	_, err := svc.InspectTable(context.Background(), "pg_shadow", 10)
	requireCode(t, err, pkgerrors.CodeBadRequest)

	_, err = svc.InspectTable(context.Background(), "orders; DROP TABLE orders", 10)
	requireCode(t, err, pkgerrors.CodeBadRequest)
}

func TestInspectTableOrdersAndLimits(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedInspectOrder(t, db, "COH-1", base)
	seedInspectOrder(t, db, "COH-2", base.Add(24*time.Hour))
	seedInspectOrder(t, db, "COH-3", base.Add(48*time.Hour))

	got, err := svc.InspectTable(context.Background(), "orders", 2)
	require.NoError(t, err)
	assert.Equal(t, "orders", got.Table)
	assert.EqualValues(t, 3, got.TotalRows)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "COH-3", got.Rows[0]["order_number"])
	assert.Equal(t, "COH-2", got.Rows[1]["order_number"])
}

func TestInspectTableFallsBackUnordered(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)

	require.NoError(t, db.Exec(`INSERT INTO fabric_colours (id) VALUES (?)`, uuid.New().String()).Error)

	got, err := svc.InspectTable(context.Background(), "fabric_colours", 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TotalRows)
	assert.Len(t, got.Rows, 1)
}

func TestListTablesCoversRegistry(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)

	seedInspectOrder(t, db, "COH-1", time.Now())

	infos, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, len(inspectableTables))

	byName := make(map[string]int64, len(infos))
	for _, info := range infos {
		byName[info.Name] = info.RowCount
	}
	assert.EqualValues(t, 1, byName["orders"])
	assert.EqualValues(t, 0, byName["customers"])
}

func TestClearOrderDataRequiresExactPhrase(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)
	seedInspectOrder(t, db, "COH-1", time.Now())

	for _, phrase := range []string{"", "erase all order data", "ERASE ALL ORDER DATA ", "yes"} {
		_, err := svc.ClearOrderData(context.Background(), phrase)
		requireCode(t, err, pkgerrors.CodeBadRequest)
	}

	var count int64
	require.NoError(t, db.Table("orders").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestClearOrderDataWipesOrderTablesOnly(t *testing.T) {
	db := setupTablesTestDB(t)
	svc := newTablesService(t, db)

	orderID := seedInspectOrder(t, db, "COH-1", time.Now())
	require.NoError(t, db.Exec(
		`INSERT INTO order_lines (id, order_id, sku_id) VALUES (?, ?, ?)`,
		uuid.New().String(), orderID, uuid.New().String(),
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO customers (id, name) VALUES (?, 'Asha')`, uuid.New().String(),
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO admin_users (id, email, name, password_hash, role) VALUES (?, 'keep@example.com', 'Keeper', 'hash', 'owner')`,
		uuid.New().String(),
	).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO system_settings (key, value) VALUES ('customer_tiers', '{}')`,
	).Error)

	result, err := svc.ClearOrderData(context.Background(), ClearConfirmationPhrase)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Deleted["orders"])
	assert.EqualValues(t, 1, result.Deleted["order_lines"])
	assert.EqualValues(t, 1, result.Deleted["customers"])

	for _, table := range clearSequenceNames {
		var count int64
		require.NoError(t, db.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}

	var admins, settings int64
	require.NoError(t, db.Table("admin_users").Count(&admins).Error)
	require.NoError(t, db.Table("system_settings").Count(&settings).Error)
	assert.EqualValues(t, 1, admins)
	assert.EqualValues(t, 1, settings)
}
