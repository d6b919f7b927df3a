package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shantum/COH-ERP2-sub002/api/middleware"
	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/api/validators"
	"github.com/shantum/COH-ERP2-sub002/internal/settings"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// ListSalesChannels returns every configured channel.
func ListSalesChannels(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		channels, err := svc.ListChannels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, channels)
	}
}

type channelRequest struct {
	Code     string `json:"code,omitempty"`
	Name     string `json:"name,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// CreateSalesChannel registers a new channel code.
func CreateSalesChannel(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var req channelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		channel, err := svc.CreateChannel(r.Context(), settings.ChannelInput{
			Code:     req.Code,
			Name:     req.Name,
			IsActive: req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, channel)
	}
}

// UpdateSalesChannel renames or toggles a channel.
func UpdateSalesChannel(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "channelId"))
		channelID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid channel id"))
			return
		}

		var req channelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		channel, err := svc.UpdateChannel(r.Context(), channelID, settings.ChannelInput{
			Name:     req.Name,
			IsActive: req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, channel)
	}
}

// GetTierThresholds returns the customer-tier spend cutoffs.
func GetTierThresholds(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		thresholds, err := svc.GetTierThresholds(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, thresholds)
	}
}

type tierThresholdsRequest struct {
	Silver   decimal.Decimal `json:"silver"`
	Gold     decimal.Decimal `json:"gold"`
	Platinum decimal.Decimal `json:"platinum"`
}

// UpdateTierThresholds replaces the spend cutoffs; they must ascend.
func UpdateTierThresholds(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var req tierThresholdsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		thresholds, err := svc.UpdateTierThresholds(r.Context(), settings.TierThresholds{
			Silver:   req.Silver,
			Gold:     req.Gold,
			Platinum: req.Platinum,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, thresholds)
	}
}

// GetGridLayout resolves the caller's column layout for one grid.
func GetGridLayout(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.GetGridLayout(r.Context(), userID, chi.URLParam(r, "gridKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, layout)
	}
}

type gridLayoutRequest struct {
	Columns []settings.GridColumn `json:"columns" validate:"required"`
}

// SaveGridLayout stores the caller's personal column layout.
func SaveGridLayout(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req gridLayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.SaveGridLayout(r.Context(), userID, chi.URLParam(r, "gridKey"), req.Columns)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, layout)
	}
}

// SaveDefaultGridLayout stores the shared default layout (admin only).
func SaveDefaultGridLayout(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var req gridLayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.SaveDefaultGridLayout(r.Context(), chi.URLParam(r, "gridKey"), req.Columns)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, layout)
	}
}

// ResetGridLayout drops the caller's personal layout.
func ResetGridLayout(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		layout, err := svc.ResetGridLayout(r.Context(), userID, chi.URLParam(r, "gridKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, layout)
	}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return userID, nil
}
