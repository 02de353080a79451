package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/squarelake/paydesk/pkg/domain"
)

func TestTables_RoundTripConsistency(t *testing.T) {
	for tab, path := range tabToPath {
		assert.Equal(t, tab, ActiveTab(path), "path %q must resolve back to its tab", path)
	}
	for path, tab := range pathToTab {
		assert.Equal(t, path, PathFor(tab), "tab %q must resolve back to its path", tab)
	}
	assert.Len(t, pathToTab, len(tabToPath))
}

func TestActiveTab_UnknownPathDefaults(t *testing.T) {
	assert.Equal(t, DefaultTab, ActiveTab("/no-such-view"))
	assert.Equal(t, DefaultTab, ActiveTab(""))
}

func TestActiveTab_CustomerService(t *testing.T) {
	assert.Equal(t, TabTickets, ActiveTab("/customer-service"))
	assert.Equal(t, "/customer-service", PathFor(TabTickets))
}

func TestPathFor_PlaceholderTabHasNoPath(t *testing.T) {
	assert.Empty(t, PathFor(TabSettings))
	assert.False(t, Routed(TabSettings))
	assert.True(t, Routed(TabDashboard))
}

func TestResolveMenu_EveryEntryRoutedOrPlaceholder(t *testing.T) {
	// Every tab the richest menu offers must either route somewhere or be a
	// deliberate placeholder.
	for _, e := range ResolveMenu(domain.RoleSuperAdmin, true) {
		if e.Tab == TabSettings {
			continue
		}
		assert.True(t, Routed(e.Tab), "menu entry %q has no route", e.Tab)
	}
}
