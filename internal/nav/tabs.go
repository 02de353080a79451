// Package nav holds the static navigation tables: which tabs exist, which
// location paths they map to, and which of them a given role may see.
package nav

// Tab is a logical navigation destination, decoupled from its location.
type Tab string

const (
	TabDashboard    Tab = "dashboard"
	TabTickets      Tab = "customer-service"
	TabServiceUsers Tab = "service-users"
	TabCompanies    Tab = "companies"
	TabUsers        Tab = "users"
	TabBasePay      Tab = "base-pay"
	TabInsurance    Tab = "insurance-rates"
	TabFundRates    Tab = "fund-rates"
	TabTax          Tab = "tax"
	// TabSettings renders inline content and deliberately has no location.
	TabSettings Tab = "settings"
)

// DefaultTab is where unrecognized locations land.
const DefaultTab = TabDashboard

// The two tables below are hand-authored and must stay bidirectionally
// consistent: every path value in one appears as a key in the other. A tab
// with no route (settings) appears in neither. Round-trip consistency is
// enforced by tests; a violation is a configuration defect.
var pathToTab = map[string]Tab{
	"/":                 TabDashboard,
	"/customer-service": TabTickets,
	"/service-users":    TabServiceUsers,
	"/companies":        TabCompanies,
	"/users":            TabUsers,
	"/base-pay":         TabBasePay,
	"/insurance-rates":  TabInsurance,
	"/fund-rates":       TabFundRates,
	"/tax":              TabTax,
}

var tabToPath = map[Tab]string{
	TabDashboard:    "/",
	TabTickets:      "/customer-service",
	TabServiceUsers: "/service-users",
	TabCompanies:    "/companies",
	TabUsers:        "/users",
	TabBasePay:      "/base-pay",
	TabInsurance:    "/insurance-rates",
	TabFundRates:    "/fund-rates",
	TabTax:          "/tax",
}

// ActiveTab derives the active tab from a location. Unknown locations
// resolve to the default tab; the location is the single source of truth
// for which tab is highlighted.
func ActiveTab(path string) Tab {
	if tab, ok := pathToTab[path]; ok {
		return tab
	}
	return DefaultTab
}

// PathFor returns the location for a tab, or "" for placeholder tabs with
// inline content. Selecting a pathless tab is an intentional no-op on the
// location, not an error.
func PathFor(tab Tab) string {
	return tabToPath[tab]
}

// Routed reports whether the tab has a location of its own.
func Routed(tab Tab) bool {
	_, ok := tabToPath[tab]
	return ok
}
