package admin

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// ClearConfirmationPhrase must be sent verbatim before any destructive
// table wipe runs.
const ClearConfirmationPhrase = "ERASE ALL ORDER DATA"

const defaultInspectLimit = 100

// tableEntry binds an inspectable table name to its model and the column
// the preview is ordered by.
type tableEntry struct {
	model        any
	defaultOrder string
}

// tableRegistry enumerates every table the inspector may touch. Names not
// listed here are rejected outright; nothing is interpolated from request
// input into SQL.
var tableRegistry = map[string]tableEntry{
	"orders":               {model: &models.Order{}, defaultOrder: "order_date DESC"},
	"order_lines":          {model: &models.OrderLine{}, defaultOrder: "created_at DESC"},
	"customers":            {model: &models.Customer{}, defaultOrder: "created_at DESC"},
	"products":             {model: &models.Product{}, defaultOrder: "name ASC"},
	"variations":           {model: &models.Variation{}, defaultOrder: "created_at DESC"},
	"skus":                 {model: &models.Sku{}, defaultOrder: "code ASC"},
	"bom_lines":            {model: &models.BomLine{}, defaultOrder: "created_at DESC"},
	"fabric_colours":       {model: &models.FabricColour{}, defaultOrder: "name ASC"},
	"production_batches":   {model: &models.ProductionBatch{}, defaultOrder: "created_at DESC"},
	"shopify_order_caches": {model: &models.ShopifyOrderCache{}, defaultOrder: "created_at DESC"},
	"admin_users":          {model: &models.AdminUser{}, defaultOrder: "created_at ASC"},
	"permission_overrides": {model: &models.PermissionOverride{}, defaultOrder: "created_at DESC"},
	"sales_channels":       {model: &models.SalesChannel{}, defaultOrder: "code ASC"},
	"system_settings":      {model: &models.SystemSetting{}, defaultOrder: "key ASC"},
	"grid_preferences":     {model: &models.GridPreference{}, defaultOrder: "grid_key ASC"},
}

// inspectableTables is the registry key set in display order.
var inspectableTables = []string{
	"orders",
	"order_lines",
	"customers",
	"products",
	"variations",
	"skus",
	"bom_lines",
	"fabric_colours",
	"production_batches",
	"shopify_order_caches",
	"admin_users",
	"permission_overrides",
	"sales_channels",
	"system_settings",
	"grid_preferences",
}

// clearSequence lists the tables wiped by ClearOrderData, children before
// parents so foreign keys never block a delete. Admin accounts, overrides,
// and settings are never touched.
var clearSequence = []tableEntry{
	{model: &models.OrderLine{}},
	{model: &models.ShopifyOrderCache{}},
	{model: &models.Order{}},
	{model: &models.Customer{}},
	{model: &models.ProductionBatch{}},
	{model: &models.BomLine{}},
	{model: &models.Sku{}},
	{model: &models.Variation{}},
	{model: &models.Product{}},
	{model: &models.FabricColour{}},
}

var clearSequenceNames = []string{
	"order_lines",
	"shopify_order_caches",
	"orders",
	"customers",
	"production_batches",
	"bom_lines",
	"skus",
	"variations",
	"products",
	"fabric_colours",
}

// TableInfo is one row of the inspectable-table listing.
type TableInfo struct {
	Name     string `json:"name"`
	RowCount int64  `json:"rowCount"`
}

// TableInspection is a bounded preview of one table.
type TableInspection struct {
	Table     string           `json:"table"`
	TotalRows int64            `json:"totalRows"`
	Rows      []map[string]any `json:"rows"`
}

// ClearResult reports per-table deletion counts after a wipe.
type ClearResult struct {
	Deleted map[string]int64 `json:"deleted"`
}

// TablesService exposes raw-table inspection and the guarded order-data
// wipe for administrative accounts.
type TablesService interface {
	ListTables(ctx context.Context) ([]TableInfo, error)
	InspectTable(ctx context.Context, name string, limit int) (*TableInspection, error)
	ClearOrderData(ctx context.Context, confirmation string) (*ClearResult, error)
}

type tablesService struct {
	db   *gorm.DB
	tx   txRunner
	logg *logger.Logger
}

// NewTablesService builds the table inspector.
func NewTablesService(gdb *gorm.DB, tx txRunner, logg *logger.Logger) (TablesService, error) {
	if gdb == nil {
		return nil, fmt.Errorf("database handle required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &tablesService{db: gdb, tx: tx, logg: logg}, nil
}

func (s *tablesService) ListTables(ctx context.Context) ([]TableInfo, error) {
	out := make([]TableInfo, 0, len(inspectableTables))
	for _, name := range inspectableTables {
		entry := tableRegistry[name]
		var count int64
		if err := s.db.WithContext(ctx).Model(entry.model).Count(&count).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("count %s", name))
		}
		out = append(out, TableInfo{Name: name, RowCount: count})
	}
	return out, nil
}

func (s *tablesService) InspectTable(ctx context.Context, name string, limit int) (*TableInspection, error) {
	entry, ok := tableRegistry[name]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("unknown table %q", name))
	}
	if limit <= 0 {
		limit = defaultInspectLimit
	}
	if limit > 1000 {
		limit = 1000
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(entry.model).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count rows")
	}

	rows, err := s.fetchRows(ctx, entry, entry.defaultOrder, limit)
	if err != nil {
		// The default ordering column can be missing after a manual
		// schema change; degrade to an unordered preview once.
		warnCtx := s.logg.WithFields(ctx, map[string]any{"table": name, "error": err.Error()})
		s.logg.Warn(warnCtx, "ordered inspection failed, retrying unordered")
		rows, err = s.fetchRows(ctx, entry, "", limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inspect table")
		}
	}

	return &TableInspection{Table: name, TotalRows: total, Rows: rows}, nil
}

func (s *tablesService) fetchRows(ctx context.Context, entry tableEntry, order string, limit int) ([]map[string]any, error) {
	rows := []map[string]any{}
	query := s.db.WithContext(ctx).Model(entry.model).Limit(limit)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *tablesService) ClearOrderData(ctx context.Context, confirmation string) (*ClearResult, error) {
	if confirmation != ClearConfirmationPhrase {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, fmt.Sprintf("confirmation phrase must be exactly %q", ClearConfirmationPhrase))
	}

	deleted := make(map[string]int64, len(clearSequence))
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		for i, entry := range clearSequence {
			result := tx.WithContext(ctx).Where("1 = 1").Delete(entry.model)
			if result.Error != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, fmt.Sprintf("clear %s", clearSequenceNames[i]))
			}
			deleted[clearSequenceNames[i]] = result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Warn(s.logg.WithField(ctx, "deleted", deleted), "order data erased")
	return &ClearResult{Deleted: deleted}, nil
}
