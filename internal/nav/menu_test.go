package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squarelake/paydesk/pkg/domain"
)

func tabs(entries []Entry) []Tab {
	out := make([]Tab, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Tab)
	}
	return out
}

func TestResolveMenu_FailClosed(t *testing.T) {
	// No role outside the privileged set may ever see the service-staff or
	// company entries.
	for _, role := range []domain.Role{domain.RoleCustomerService, domain.RoleCommon, domain.Role("AUDITOR"), domain.Role(""), domain.Role("admin")} {
		for _, franchise := range []bool{false, true} {
			got := tabs(ResolveMenu(role, franchise))
			assert.NotContains(t, got, TabServiceUsers, "role=%s franchise=%v", role, franchise)
			assert.NotContains(t, got, TabCompanies, "role=%s franchise=%v", role, franchise)
			assert.NotContains(t, got, TabUsers, "role=%s franchise=%v", role, franchise)
		}
	}
}

func TestResolveMenu_UnknownRoleGetsBaseSet(t *testing.T) {
	got := tabs(ResolveMenu(domain.Role("INTERN"), true))
	assert.Equal(t, []Tab{TabDashboard, TabTickets, TabSettings}, got)
}

func TestResolveMenu_SuperAdmin(t *testing.T) {
	got := tabs(ResolveMenu(domain.RoleSuperAdmin, false))
	assert.Contains(t, got, TabServiceUsers)
	assert.Contains(t, got, TabCompanies, "super admin sees companies regardless of franchise flag")
	assert.Contains(t, got, TabUsers)
	assert.NotContains(t, got, TabInsurance)
	assert.NotContains(t, got, TabTax)
}

func TestResolveMenu_AdminFranchiseGatesCompanies(t *testing.T) {
	withFranchise := tabs(ResolveMenu(domain.RoleAdmin, true))
	assert.Contains(t, withFranchise, TabCompanies)

	withoutFranchise := tabs(ResolveMenu(domain.RoleAdmin, false))
	assert.NotContains(t, withoutFranchise, TabCompanies)
	assert.Contains(t, withoutFranchise, TabUsers, "user management does not depend on franchise")
	assert.Contains(t, withoutFranchise, TabServiceUsers)
	assert.NotContains(t, withoutFranchise, TabInsurance, "rate config is customer-service work")
}

func TestResolveMenu_CustomerService(t *testing.T) {
	got := tabs(ResolveMenu(domain.RoleCustomerService, false))
	assert.Contains(t, got, TabBasePay)
	assert.Contains(t, got, TabInsurance)
	assert.Contains(t, got, TabFundRates)
	assert.Contains(t, got, TabTax)
	assert.NotContains(t, got, TabServiceUsers)
	assert.NotContains(t, got, TabCompanies)
}

func TestResolveMenu_GroupOnlyWhenNonEmpty(t *testing.T) {
	for _, e := range ResolveMenu(domain.RoleCommon, false) {
		assert.Empty(t, e.Group, "common role must see no grouped entries")
	}

	grouped := 0
	for _, e := range ResolveMenu(domain.RoleCustomerService, false) {
		if e.Group == GroupClientManagement {
			grouped++
		}
	}
	assert.Equal(t, 4, grouped)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed(domain.RoleAdmin, false, TabTickets))
	assert.False(t, Allowed(domain.RoleAdmin, false, TabCompanies))
	assert.True(t, Allowed(domain.RoleAdmin, true, TabCompanies))
}
