package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shantum/COH-ERP2-sub002/api/middleware"
	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/api/validators"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
	"github.com/shantum/COH-ERP2-sub002/pkg/worker"
)

// WorkerLogs proxies the worker's structured log store.
func WorkerLogs(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		logs, err := client.GetLogs(r.Context(), middleware.BearerTokenFromContext(r.Context()), worker.LogsQuery{
			Level:  strings.TrimSpace(query.Get("level")),
			Source: strings.TrimSpace(query.Get("source")),
			Search: strings.TrimSpace(query.Get("search")),
			Page:   page,
			Limit:  limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, logs)
	}
}

// WorkerRuns proxies the worker's job-run history.
func WorkerRuns(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		runs, err := client.GetWorkerRuns(
			r.Context(),
			middleware.BearerTokenFromContext(r.Context()),
			strings.TrimSpace(r.URL.Query().Get("jobId")),
			limit,
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, runs)
	}
}

// WorkerStats proxies the worker's health summary.
func WorkerStats(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		stats, err := client.GetWorkerStats(r.Context(), middleware.BearerTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// StartJob triggers a run of one allow-listed job.
func StartJob(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		jobID := enums.JobID(strings.TrimSpace(chi.URLParam(r, "jobId")))
		if err := client.StartJob(r.Context(), middleware.BearerTokenFromContext(r.Context()), jobID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "started"})
	}
}

// CancelJob stops a running job.
func CancelJob(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		jobID := enums.JobID(strings.TrimSpace(chi.URLParam(r, "jobId")))
		if err := client.CancelJob(r.Context(), middleware.BearerTokenFromContext(r.Context()), jobID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

type jobEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// SetJobEnabled toggles a job's schedule.
func SetJobEnabled(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		var req jobEnabledRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID := enums.JobID(strings.TrimSpace(chi.URLParam(r, "jobId")))
		if err := client.SetJobEnabled(r.Context(), middleware.BearerTokenFromContext(r.Context()), jobID, *req.Enabled); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "updated", "enabled": *req.Enabled})
	}
}

// GetShopifyConfig proxies the worker's Shopify settings; the token comes
// back masked.
func GetShopifyConfig(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		cfg, err := client.GetShopifyConfig(r.Context(), middleware.BearerTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

type shopifyConfigRequest struct {
	ShopDomain   string `json:"shopDomain" validate:"required"`
	AccessToken  string `json:"accessToken,omitempty"`
	APIVersion   string `json:"apiVersion,omitempty"`
	SyncEnabled  bool   `json:"syncEnabled"`
	SyncInterval int    `json:"syncIntervalMinutes" validate:"omitempty,min=5"`
}

// UpdateShopifyConfig pushes new Shopify connection settings to the
// worker.
func UpdateShopifyConfig(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		var req shopifyConfigRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := client.UpdateShopifyConfig(r.Context(), middleware.BearerTokenFromContext(r.Context()), worker.ShopifyConfig{
			ShopDomain:   req.ShopDomain,
			AccessToken:  req.AccessToken,
			APIVersion:   req.APIVersion,
			SyncEnabled:  req.SyncEnabled,
			SyncInterval: req.SyncInterval,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// TriggerShopifySync kicks off an immediate sync.
func TriggerShopifySync(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		if err := client.TriggerShopifySync(r.Context(), middleware.BearerTokenFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sync_started"})
	}
}

// TestShopifyConnection checks the stored credentials against Shopify.
func TestShopifyConnection(client *worker.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "worker client unavailable"))
			return
		}

		result, err := client.TestShopifyConnection(r.Context(), middleware.BearerTokenFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
