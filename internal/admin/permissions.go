package admin

import (
	"sort"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

// Permission names one grantable capability. The catalog is fixed; overrides
// outside it are rejected.
type Permission string

const (
	PermOrdersView    Permission = "orders.view"
	PermOrdersEdit    Permission = "orders.edit"
	PermAnalyticsView Permission = "analytics.view"
	PermSettingsEdit  Permission = "settings.edit"
	PermUsersManage   Permission = "users.manage"
	PermJobsControl   Permission = "jobs.control"
	PermLogsView      Permission = "logs.view"
	PermTablesInspect Permission = "tables.inspect"
	PermTablesClear   Permission = "tables.clear"
)

// AllPermissions is the full catalog in display order.
var AllPermissions = []Permission{
	PermOrdersView,
	PermOrdersEdit,
	PermAnalyticsView,
	PermSettingsEdit,
	PermUsersManage,
	PermJobsControl,
	PermLogsView,
	PermTablesInspect,
	PermTablesClear,
}

var permissionCatalog = func() map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		set[p] = struct{}{}
	}
	return set
}()

// IsKnownPermission reports whether the permission is in the catalog.
func IsKnownPermission(p Permission) bool {
	_, ok := permissionCatalog[p]
	return ok
}

// roleDefaults maps each role to its baseline grant set.
var roleDefaults = map[enums.AdminRole][]Permission{
	enums.AdminRoleViewer: {
		PermOrdersView,
		PermAnalyticsView,
	},
	enums.AdminRoleStaff: {
		PermOrdersView,
		PermOrdersEdit,
		PermAnalyticsView,
		PermLogsView,
	},
	enums.AdminRoleAdmin: {
		PermOrdersView,
		PermOrdersEdit,
		PermAnalyticsView,
		PermSettingsEdit,
		PermUsersManage,
		PermJobsControl,
		PermLogsView,
		PermTablesInspect,
	},
	enums.AdminRoleOwner: AllPermissions,
}

// RoleDefaults returns a copy of the baseline grants for a role.
func RoleDefaults(role enums.AdminRole) []Permission {
	defaults := roleDefaults[role]
	out := make([]Permission, len(defaults))
	copy(out, defaults)
	return out
}

// EffectivePermissions merges a user's role defaults with their stored
// overrides. An allowed=true override adds a grant the role lacks; an
// allowed=false override removes one it has.
func EffectivePermissions(role enums.AdminRole, overrides []models.PermissionOverride) []Permission {
	granted := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range roleDefaults[role] {
		granted[p] = struct{}{}
	}
	for _, o := range overrides {
		p := Permission(o.Permission)
		if !IsKnownPermission(p) {
			continue
		}
		if o.Allowed {
			granted[p] = struct{}{}
		} else {
			delete(granted, p)
		}
	}

	out := make([]Permission, 0, len(granted))
	for p := range granted {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
