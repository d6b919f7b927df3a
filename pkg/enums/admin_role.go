package enums

// AdminRole is the coarse role on a back-office account. Fine-grained
// access comes from permission overrides layered on top.
type AdminRole string

const (
	AdminRoleViewer AdminRole = "viewer"
	AdminRoleStaff  AdminRole = "staff"
	AdminRoleAdmin  AdminRole = "admin"
	AdminRoleOwner  AdminRole = "owner"
)

func (r AdminRole) IsValid() bool {
	switch r {
	case AdminRoleViewer, AdminRoleStaff, AdminRoleAdmin, AdminRoleOwner:
		return true
	default:
		return false
	}
}

// IsAdministrative reports whether the role passes admin-only gates.
func (r AdminRole) IsAdministrative() bool {
	return r == AdminRoleAdmin || r == AdminRoleOwner
}
