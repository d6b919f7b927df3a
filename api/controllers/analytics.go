package controllers

import (
	"net/http"

	"github.com/shantum/COH-ERP2-sub002/api/responses"
	internalanalytics "github.com/shantum/COH-ERP2-sub002/internal/analytics"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// AnalyticsDashboard returns the full dashboard snapshot: pipeline units,
// payment split, revenue periods, top products.
func AnalyticsDashboard(svc internalanalytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
