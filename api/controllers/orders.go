package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/api/validators"
	internalorders "github.com/shantum/COH-ERP2-sub002/internal/orders"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
	"github.com/shantum/COH-ERP2-sub002/pkg/pagination"
)

const maxSearchDays = 3650

// ListOrders serves the orders grid: view + optional shipped sub-filter,
// in-view search, days window, sort, pagination.
func ListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		query := r.URL.Query()

		view := enums.OrderView(strings.TrimSpace(query.Get("view")))
		if view == "" {
			view = enums.OrderViewOpen
		}
		subFilter := enums.ShippedSubFilter(strings.TrimSpace(query.Get("subFilter")))

		days, err := validators.ParseQueryInt(r, "days", 0, 0, maxSearchDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sortField := strings.TrimSpace(query.Get("sortField"))
		if sortField == "" {
			sortField = "orderDate"
		}
		sortDir := strings.ToLower(strings.TrimSpace(query.Get("sortDir")))
		if sortDir != "" && sortDir != "asc" && sortDir != "desc" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeBadRequest, "sortDir must be asc or desc"))
			return
		}

		result, err := svc.List(r.Context(), internalorders.ListInput{
			View:      view,
			SubFilter: subFilter,
			Search:    strings.TrimSpace(query.Get("search")),
			Days:      days,
			SortField: sortField,
			SortDesc:  sortDir != "asc",
			Page:      page,
			PageSize:  pageSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetOrder returns the flattened detail for one order by id.
func GetOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetByID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// GetOrderByNumber looks an order up by its human-facing number.
func GetOrderByNumber(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		detail, err := svc.GetByOrderNumber(r.Context(), chi.URLParam(r, "orderNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// SearchAllOrders runs the bucketed cross-category search.
func SearchAllOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		result, err := svc.SearchAll(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SearchOrdersUnified is the paginated flattened search across every view,
// archived included.
func SearchOrdersUnified(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SearchUnified(r.Context(), r.URL.Query().Get("q"), pagination.Params{
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type updateNotesRequest struct {
	// A null body value clears the notes.
	InternalNotes *string `json:"internalNotes"`
}

// UpdateOrderNotes sets or clears the free-text internal notes on an order.
func UpdateOrderNotes(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateNotesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateInternalNotes(r.Context(), orderID, req.InternalNotes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeBadRequest, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid order id")
	}
	return orderID, nil
}
