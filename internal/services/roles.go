package services

import "strings"

// Capabilities granted to a stored role. The credential store knows two
// roles, Admin and SuperAdmin; both currently carry the same set, so there is
// no SuperAdmin-only route anywhere. Gates check set membership rather than
// comparing role strings, which leaves room to split the sets later without
// touching the middleware.
type Capability string

const (
	CapRead         Capability = "read"
	CapWrite        Capability = "write"
	CapManageAdmins Capability = "manage-admins"
)

const (
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

var roleCapabilities = map[string][]Capability{
	RoleAdmin:      {CapRead, CapWrite, CapManageAdmins},
	RoleSuperAdmin: {CapRead, CapWrite, CapManageAdmins},
}

// CapabilitiesFor returns the capability set for a stored role. Unknown roles
// get nothing.
func CapabilitiesFor(role string) []Capability {
	for name, caps := range roleCapabilities {
		if strings.EqualFold(name, role) {
			return caps
		}
	}
	return nil
}

// HasCapability reports whether the role's capability set contains cap.
func HasCapability(role string, cap Capability) bool {
	for _, granted := range CapabilitiesFor(role) {
		if granted == cap {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the two stored role values.
func ValidRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin) || strings.EqualFold(role, RoleSuperAdmin)
}
