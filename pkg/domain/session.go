package domain

import "github.com/google/uuid"

// Role classifies a back-office account's privilege tier.
// Keep the string forms stable; they are part of the backend contract.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleAdmin           Role = "ADMIN"
	RoleCustomerService Role = "CUSTOMER_SERVICE"
	RoleCommon          Role = "COMMON"
)

// Session is the in-memory representation of the authenticated user.
// It is always re-derived from the stored token, never persisted itself.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	CompanyID   string    `json:"company_id,omitempty"`
	Franchise   bool      `json:"franchise"`
	Status      string    `json:"status"`
}

// Capabilities is the set of privileged actions a session may perform.
// It is derived once per session change; views consult it instead of
// re-checking role strings.
type Capabilities struct {
	ManageServiceUsers bool // customer-service-user management
	ManageCompanies    bool
	ManageUsers        bool
	ConfigureRates     bool // base pay, insurance, housing fund
	UploadTax          bool
}

// CapabilitiesFor derives the capability set for a role and franchise flag.
// Unknown roles resolve to no capabilities.
func CapabilitiesFor(role Role, franchise bool) Capabilities {
	switch role {
	case RoleSuperAdmin:
		return Capabilities{
			ManageServiceUsers: true,
			ManageCompanies:    true,
			ManageUsers:        true,
		}
	case RoleAdmin:
		return Capabilities{
			ManageServiceUsers: true,
			ManageCompanies:    franchise,
			ManageUsers:        true,
		}
	case RoleCustomerService:
		return Capabilities{
			ConfigureRates: true,
			UploadTax:      true,
		}
	default:
		return Capabilities{}
	}
}

// Capabilities returns the capability set for this session.
func (s *Session) Capabilities() Capabilities {
	if s == nil {
		return Capabilities{}
	}
	return CapabilitiesFor(s.Role, s.Franchise)
}
