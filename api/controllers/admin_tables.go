package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/api/validators"
	"github.com/shantum/COH-ERP2-sub002/internal/admin"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// ListTables returns the inspectable-table registry with row counts.
func ListTables(svc admin.TablesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		tables, err := svc.ListTables(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tables)
	}
}

// InspectTable previews rows from one registered table.
func InspectTable(svc admin.TablesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.InspectTable(r.Context(), strings.TrimSpace(chi.URLParam(r, "tableName")), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type clearTablesRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}

// ClearTables erases all order, customer, and catalog data after an exact
// confirmation phrase. Accounts and settings survive.
func ClearTables(svc admin.TablesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tables service unavailable"))
			return
		}

		var req clearTablesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ClearOrderData(r.Context(), req.Confirmation)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
