package nav

import "github.com/squarelake/paydesk/pkg/domain"

// GroupClientManagement labels the collapsible sub-menu of management and
// configuration entries. The group is shown only when it has entries.
const GroupClientManagement = "client management"

// Entry is a static navigation descriptor offered to the shell.
type Entry struct {
	Tab   Tab
	Label string
	Icon  string
	Group string // empty for top-level entries
}

// ResolveMenu returns the navigation entries a session may see, as a pure
// function of role and franchise flag. Unknown roles resolve to the base
// entry set: privileged entries are granted, never assumed.
func ResolveMenu(role domain.Role, franchise bool) []Entry {
	caps := domain.CapabilitiesFor(role, franchise)

	entries := []Entry{
		{Tab: TabDashboard, Label: "Overview", Icon: "◆"},
	}
	if caps.ManageServiceUsers {
		entries = append(entries, Entry{Tab: TabServiceUsers, Label: "Service Staff", Icon: "☎"})
	}
	entries = append(entries, Entry{Tab: TabTickets, Label: "Customer Service", Icon: "✉"})

	if caps.ManageCompanies {
		entries = append(entries, Entry{Tab: TabCompanies, Label: "Companies", Icon: "▣", Group: GroupClientManagement})
	}
	if caps.ManageUsers {
		entries = append(entries, Entry{Tab: TabUsers, Label: "Users", Icon: "♟", Group: GroupClientManagement})
	}
	if caps.ConfigureRates {
		entries = append(entries,
			Entry{Tab: TabBasePay, Label: "Base Pay", Icon: "¤", Group: GroupClientManagement},
			Entry{Tab: TabInsurance, Label: "Insurance Rates", Icon: "♥", Group: GroupClientManagement},
			Entry{Tab: TabFundRates, Label: "Fund Rates", Icon: "⌂", Group: GroupClientManagement},
		)
	}
	if caps.UploadTax {
		entries = append(entries, Entry{Tab: TabTax, Label: "Tax", Icon: "↥", Group: GroupClientManagement})
	}

	entries = append(entries, Entry{Tab: TabSettings, Label: "Settings", Icon: "⚙"})
	return entries
}

// Allowed reports whether the menu for (role, franchise) offers tab.
func Allowed(role domain.Role, franchise bool, tab Tab) bool {
	for _, e := range ResolveMenu(role, franchise) {
		if e.Tab == tab {
			return true
		}
	}
	return false
}
