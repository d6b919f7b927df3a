package admin

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shantum/COH-ERP2-sub002/pkg/db/models"
	"github.com/shantum/COH-ERP2-sub002/pkg/enums"
)

func override(p Permission, allowed bool) models.PermissionOverride {
	return models.PermissionOverride{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Permission: string(p),
		Allowed:    allowed,
	}
}

func TestEffectivePermissionsRoleDefaults(t *testing.T) {
	got := EffectivePermissions(enums.AdminRoleViewer, nil)
	assert.ElementsMatch(t, []Permission{PermOrdersView, PermAnalyticsView}, got)

	got = EffectivePermissions(enums.AdminRoleOwner, nil)
	assert.ElementsMatch(t, AllPermissions, got)
}

func TestEffectivePermissionsOverridesAddAndRemove(t *testing.T) {
	got := EffectivePermissions(enums.AdminRoleViewer, []models.PermissionOverride{
		override(PermOrdersEdit, true),
		override(PermAnalyticsView, false),
	})
	assert.ElementsMatch(t, []Permission{PermOrdersView, PermOrdersEdit}, got)
}

func TestEffectivePermissionsSkipsUnknown(t *testing.T) {
	got := EffectivePermissions(enums.AdminRoleViewer, []models.PermissionOverride{
		override(Permission("warehouse.teleport"), true),
	})
	assert.ElementsMatch(t, []Permission{PermOrdersView, PermAnalyticsView}, got)
}

func TestEffectivePermissionsSorted(t *testing.T) {
	got := EffectivePermissions(enums.AdminRoleOwner, nil)
	require.True(t, sort.SliceIsSorted(got, func(i, j int) bool { return got[i] < got[j] }))
}

func TestEffectivePermissionsDenyWinsOnConflictlessMerge(t *testing.T) {
	// A deny for a permission the role never grants is a no-op.
	got := EffectivePermissions(enums.AdminRoleViewer, []models.PermissionOverride{
		override(PermTablesClear, false),
	})
	assert.ElementsMatch(t, []Permission{PermOrdersView, PermAnalyticsView}, got)
}

func TestRoleDefaultsReturnsCopy(t *testing.T) {
	defaults := RoleDefaults(enums.AdminRoleViewer)
	require.NotEmpty(t, defaults)
	defaults[0] = Permission("mutated")
	assert.Equal(t, PermOrdersView, RoleDefaults(enums.AdminRoleViewer)[0])
}

func TestIsKnownPermission(t *testing.T) {
	for _, p := range AllPermissions {
		assert.True(t, IsKnownPermission(p), string(p))
	}
	assert.False(t, IsKnownPermission(Permission("orders.delete")))
}
