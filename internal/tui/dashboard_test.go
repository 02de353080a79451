package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

func testStats() *domain.DashboardStats {
	return &domain.DashboardStats{OpenTickets: 3, PendingTickets: 1, ActiveCompanies: 12}
}

func testTickets(n int) []domain.ServiceTicket {
	out := make([]domain.ServiceTicket, n)
	for i := range out {
		out[i] = domain.ServiceTicket{Subject: "ticket", Status: domain.TicketOpen, UpdatedAt: time.Now()}
	}
	return out
}

func TestDashboard_LoadedRendersBothHalves(t *testing.T) {
	m := newDashboardModel(nil)
	m, _ = m.start()

	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen, stats: testStats(), tickets: testTickets(2)})

	assert.True(t, m.loaded)
	assert.Empty(t, m.errMsg)
	assert.Len(t, m.tickets, 2)
}

func TestDashboard_EitherFailureMeansNoPartialRender(t *testing.T) {
	m := newDashboardModel(nil)
	m, _ = m.start()

	apiErr := &api.Error{Kind: api.ErrKindServer, StatusCode: 502, Message: "server error"}
	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen, err: apiErr})

	assert.False(t, m.loaded)
	assert.Equal(t, "server error", m.errMsg)
	assert.Nil(t, m.stats, "no half of the dashboard renders when the join failed")
}

func TestDashboard_StaleGenerationDiscarded(t *testing.T) {
	m := newDashboardModel(nil)
	m, _ = m.start()
	stale := m.gen

	// user refreshes before the first response lands
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	require.Greater(t, m.gen, stale)

	m, _ = m.Update(dashboardLoadedMsg{gen: stale, stats: testStats(), tickets: testTickets(1)})
	assert.False(t, m.loaded, "a response from before the refresh must not win")

	m, _ = m.Update(dashboardLoadedMsg{gen: m.gen, stats: testStats(), tickets: testTickets(1)})
	assert.True(t, m.loaded)
}

func TestDashboard_StalePollDiscarded(t *testing.T) {
	m := newDashboardModel(nil)
	m, _ = m.start()
	stale := m.gen

	m, _ = m.start() // revisiting the tab invalidates the old poll

	_, cmd := m.Update(dashboardPollMsg{gen: stale})
	assert.Nil(t, cmd, "an outdated poll tick must not fire a request")
}

func TestDashboard_ErrorStillSchedulesPoll(t *testing.T) {
	m := newDashboardModel(nil)
	m, _ = m.start()

	apiErr := &api.Error{Kind: api.ErrKindNetwork, Message: "network error"}
	_, cmd := m.Update(dashboardLoadedMsg{gen: m.gen, err: apiErr})
	assert.NotNil(t, cmd, "a failed load recovers on the next poll")
}
