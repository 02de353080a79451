package domain

import "testing"

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name      string
		role      Role
		franchise bool
		want      Capabilities
	}{
		{"super admin", RoleSuperAdmin, false, Capabilities{ManageServiceUsers: true, ManageCompanies: true, ManageUsers: true}},
		{"admin without franchise", RoleAdmin, false, Capabilities{ManageServiceUsers: true, ManageUsers: true}},
		{"admin with franchise", RoleAdmin, true, Capabilities{ManageServiceUsers: true, ManageCompanies: true, ManageUsers: true}},
		{"customer service", RoleCustomerService, false, Capabilities{ConfigureRates: true, UploadTax: true}},
		{"customer service franchise flag ignored", RoleCustomerService, true, Capabilities{ConfigureRates: true, UploadTax: true}},
		{"common", RoleCommon, true, Capabilities{}},
		{"unknown role fails closed", Role("ROOT"), true, Capabilities{}},
		{"lowercase is not privileged", Role("super_admin"), true, Capabilities{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CapabilitiesFor(tc.role, tc.franchise); got != tc.want {
				t.Errorf("CapabilitiesFor(%q, %v) = %+v, want %+v", tc.role, tc.franchise, got, tc.want)
			}
		})
	}
}

func TestSessionCapabilities_NilSession(t *testing.T) {
	var s *Session
	if got := s.Capabilities(); got != (Capabilities{}) {
		t.Errorf("nil session capabilities = %+v, want zero", got)
	}
}

func TestPageNavigation(t *testing.T) {
	p := Page[Company]{Total: 45, Pages: 3, Size: 20, Current: 2}
	if !p.HasNext() {
		t.Error("page 2 of 3 must have a next page")
	}
	if !p.HasPrev() {
		t.Error("page 2 of 3 must have a previous page")
	}
	first := Page[Company]{Pages: 3, Current: 1}
	if first.HasPrev() {
		t.Error("page 1 must not have a previous page")
	}
	last := Page[Company]{Pages: 3, Current: 3}
	if last.HasNext() {
		t.Error("last page must not have a next page")
	}
}
