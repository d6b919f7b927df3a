package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shantum/COH-ERP2-sub002/api/middleware"
	"github.com/shantum/COH-ERP2-sub002/api/responses"
	"github.com/shantum/COH-ERP2-sub002/api/validators"
	"github.com/shantum/COH-ERP2-sub002/internal/admin"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
	"github.com/shantum/COH-ERP2-sub002/pkg/logger"
)

// ListAdminUsers returns every back-office account with effective
// permissions.
func ListAdminUsers(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		users, err := svc.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

// GetAdminUser returns one account.
func GetAdminUser(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		userID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=viewer staff admin owner"`
	Password string `json:"password,omitempty"`
}

// CreateAdminUser provisions an account; a temporary password is generated
// when none is supplied.
func CreateAdminUser(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var req createUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CreateUser(r.Context(), admin.CreateUserInput{
			Email:    req.Email,
			Name:     req.Name,
			Role:     enums.AdminRole(req.Role),
			Password: req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=viewer staff admin owner"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UpdateAdminUser applies a partial edit: name, role, or active flag.
func UpdateAdminUser(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		userID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := admin.UpdateUserInput{
			Name:     req.Name,
			IsActive: req.IsActive,
		}
		if req.Role != nil {
			role := enums.AdminRole(*req.Role)
			input.Role = &role
		}

		view, err := svc.UpdateUser(r.Context(), actorID, userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// DeleteAdminUser removes an account; self-deletion and removing the last
// active admin are rejected.
func DeleteAdminUser(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		userID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteUser(r.Context(), actorID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListPermissionCatalog exposes the fixed permission set and the per-role
// defaults for the permissions editor.
func ListPermissionCatalog(logg *logger.Logger) http.HandlerFunc {
	roles := []enums.AdminRole{
		enums.AdminRoleViewer,
		enums.AdminRoleStaff,
		enums.AdminRoleAdmin,
		enums.AdminRoleOwner,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		defaults := make(map[string][]admin.Permission, len(roles))
		for _, role := range roles {
			defaults[string(role)] = admin.RoleDefaults(role)
		}
		responses.WriteSuccess(w, map[string]any{
			"permissions":  admin.AllPermissions,
			"roleDefaults": defaults,
		})
	}
}

type overrideEntry struct {
	Permission string `json:"permission" validate:"required"`
	Allowed    bool   `json:"allowed"`
}

type replaceOverridesRequest struct {
	Overrides []overrideEntry `json:"overrides" validate:"dive"`
}

// ReplaceUserOverrides swaps a user's whole override set in one
// transaction.
func ReplaceUserOverrides(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		userID, err := parseUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req replaceOverridesRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		overrides := make([]admin.OverrideInput, 0, len(req.Overrides))
		for _, o := range req.Overrides {
			overrides = append(overrides, admin.OverrideInput{
				Permission: admin.Permission(o.Permission),
				Allowed:    o.Allowed,
			})
		}

		view, err := svc.ReplaceOverrides(r.Context(), userID, overrides)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "userId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeBadRequest, "user id is required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid user id")
	}
	return userID, nil
}

func actorFromContext(r *http.Request) (uuid.UUID, error) {
	actorID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return actorID, nil
}
