// Package guard decides what the console shows for a view: a loading
// notice, the login prompt, an access-denied notice, or the view itself.
//
// Views declare the capabilities they need. A Policy maps staff roles to
// the capabilities they hold.
package guard

import "github.com/sabastianrafa/powergym-ag-system/internal/client/models"

type Capability string

const (
	CapCustomersRead   Capability = "customers:read"
	CapCustomersWrite  Capability = "customers:write"
	CapCustomersExport Capability = "customers:export"
	CapBiometrics      Capability = "biometrics:manage"
	CapCheckIn         Capability = "checkin:manage"
	CapAttendances     Capability = "attendances:read"
	CapBilling         Capability = "billing:manage"
)

// AllCapabilities lists every capability known to the console.
var AllCapabilities = []Capability{
	CapCustomersRead,
	CapCustomersWrite,
	CapCustomersExport,
	CapBiometrics,
	CapCheckIn,
	CapAttendances,
	CapBilling,
}

// Policy maps a role to the capabilities it holds. Roles missing from the
// policy hold nothing.
type Policy map[models.Role][]Capability

// DefaultPolicy gives admins everything and front-desk employees the
// customer, biometric and check-in work.
var DefaultPolicy = Policy{
	models.RoleAdmin: AllCapabilities,
	models.RoleEmployee: {
		CapCustomersRead,
		CapCustomersWrite,
		CapBiometrics,
		CapCheckIn,
		CapAttendances,
	},
}

// Has reports whether role holds every capability in required.
func (p Policy) Has(role models.Role, required ...Capability) bool {
	held := p[role]
	for _, want := range required {
		found := false
		for _, c := range held {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// HasCapability reports whether id holds every required capability under
// DefaultPolicy. With nothing required it is always true.
func HasCapability(id models.Identity, required ...Capability) bool {
	return DefaultPolicy.Has(id.Role, required...)
}
