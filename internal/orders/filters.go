package orders

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// Scopes in this file are pure: each returns a gorm scope that narrows an
// orders query without side effects. Substring matches are lowered on both
// sides so the same SQL runs on postgres and the sqlite test harness.

const rtoLineExists = `EXISTS (
	SELECT 1 FROM order_lines
	WHERE order_lines.order_id = orders.id
	AND order_lines.tracking_status IN ?
)`

const noRTOLineExists = `NOT EXISTS (
	SELECT 1 FROM order_lines
	WHERE order_lines.order_id = orders.id
	AND order_lines.tracking_status IN ?
)`

const deliveredLineExists = `EXISTS (
	SELECT 1 FROM order_lines
	WHERE order_lines.order_id = orders.id
	AND order_lines.tracking_status = ?
)`

const inTransitLineExists = `EXISTS (
	SELECT 1 FROM order_lines
	WHERE order_lines.order_id = orders.id
	AND order_lines.tracking_status IS NOT NULL
	AND order_lines.tracking_status NOT IN ?
)`

// ViewScope narrows to one primary grid view. Non-archived orders only; the
// archived surface goes through BucketScope.
func ViewScope(view enums.OrderView, sub enums.ShippedSubFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("orders.is_archived = ?", false)
		switch view {
		case enums.OrderViewOpen:
			return db.Where(
				"orders.status = ? OR (orders.released_to_shipped = ? AND orders.released_to_cancelled = ?)",
				"open", false, false,
			)
		case enums.OrderViewShipped:
			db = db.Where("orders.released_to_shipped = ?", true)
			switch sub {
			case enums.ShippedSubFilterRTO:
				return db.Where(rtoLineExists, enums.RTOTrackingStatusStrings())
			case enums.ShippedSubFilterCODPending:
				return codPendingScope(db)
			default:
				return db
			}
		case enums.OrderViewCancelled:
			return db.Where("orders.released_to_cancelled = ?", true)
		default:
			return db
		}
	}
}

// BucketScope narrows to one cross-category search bucket.
func BucketScope(bucket enums.SearchBucket) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if bucket != enums.SearchBucketArchived {
			db = db.Where("orders.is_archived = ?", false)
		}
		switch bucket {
		case enums.SearchBucketOpen:
			return db.Where(
				"orders.status = ? OR (orders.released_to_shipped = ? AND orders.released_to_cancelled = ?)",
				"open", false, false,
			)
		case enums.SearchBucketShipped:
			// Shipped excludes RTO-tracked lines; those surface under rto.
			return db.Where("orders.released_to_shipped = ?", true).
				Where(noRTOLineExists, enums.RTOTrackingStatusStrings())
		case enums.SearchBucketInTransit:
			// Tracked but not yet delivered or returned.
			return db.Where("orders.released_to_shipped = ?", true).
				Where(inTransitLineExists, enums.TerminalTrackingStatusStrings())
		case enums.SearchBucketDelivered:
			return db.Where("orders.released_to_shipped = ?", true).
				Where(deliveredLineExists, string(enums.TrackingStatusDelivered))
		case enums.SearchBucketRTO:
			return db.Where("orders.released_to_shipped = ?", true).
				Where(rtoLineExists, enums.RTOTrackingStatusStrings())
		case enums.SearchBucketCODPending:
			return codPendingScope(db)
		case enums.SearchBucketCancelled:
			return db.Where("orders.released_to_cancelled = ?", true)
		case enums.SearchBucketArchived:
			return db.Where("orders.is_archived = ?", true)
		default:
			return db
		}
	}
}

func codPendingScope(db *gorm.DB) *gorm.DB {
	return db.
		Where("orders.payment_method = ?", string(enums.PaymentMethodCOD)).
		Where("orders.cod_remitted_at IS NULL").
		Where(deliveredLineExists, string(enums.TrackingStatusDelivered))
}

// SearchScope applies the OR-search over order number, customer identity
// fields and any line's AWB number.
func SearchScope(query string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := strings.ToLower(strings.TrimSpace(query))
		if q == "" {
			return db
		}
		pattern := "%" + q + "%"
		return db.Where(`
			LOWER(orders.order_number) LIKE ?
			OR LOWER(orders.customer_name) LIKE ?
			OR LOWER(orders.customer_email) LIKE ?
			OR orders.customer_phone LIKE ?
			OR EXISTS (
				SELECT 1 FROM order_lines
				WHERE order_lines.order_id = orders.id
				AND LOWER(order_lines.awb_number) LIKE ?
			)`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}
}

// DaysScope restricts to orders placed within the trailing window.
func DaysScope(days int, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if days <= 0 {
			return db
		}
		cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
		return db.Where("orders.order_date >= ?", cutoff)
	}
}

// sortColumns is the allow-list of client-sortable fields.
var sortColumns = map[string]string{
	"orderDate":  "orders.order_date",
	"archivedAt": "orders.archived_at",
	"shippedAt":  "orders.shipped_at",
	"createdAt":  "orders.created_at",
}

// SortColumn resolves a client sort field; unknown fields are rejected.
func SortColumn(field string) (string, bool) {
	if field == "" {
		return sortColumns["orderDate"], true
	}
	col, ok := sortColumns[field]
	return col, ok
}
