package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/pkg/domain"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ticketPage(n, current int, pages int64) domain.Page[domain.ServiceTicket] {
	return domain.Page[domain.ServiceTicket]{
		Records: testTickets(n),
		Total:   int64(n),
		Pages:   pages,
		Size:    pageSize,
		Current: current,
	}
}

func TestTickets_SearchDebounceCollapsesBursts(t *testing.T) {
	m := newTicketsModel(nil)
	m, _ = m.start()
	genBefore := m.gen

	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.searching)

	// three quick keystrokes, three scheduled ticks, one survivor
	m, _ = m.Update(keyRunes("a"))
	first := m.seq
	m, _ = m.Update(keyRunes("c"))
	m, _ = m.Update(keyRunes("m"))
	last := m.seq
	require.Greater(t, last, first)

	_, cmd := m.Update(ticketSearchTickMsg{seq: first})
	assert.Nil(t, cmd, "superseded keystrokes must not fire requests")

	m, cmd = m.Update(ticketSearchTickMsg{seq: last})
	require.NotNil(t, cmd, "the final keystroke fires exactly one request")
	assert.Greater(t, m.gen, genBefore)
	assert.Equal(t, "acm", m.search)
}

func TestTickets_StaleListResponseDiscarded(t *testing.T) {
	m := newTicketsModel(nil)
	m, _ = m.start()
	stale := m.gen

	m, _ = m.Update(keyRunes("r")) // refresh bumps the generation
	require.Greater(t, m.gen, stale)

	m, _ = m.Update(ticketsLoadedMsg{gen: stale, page: ticketPage(5, 1, 1)})
	assert.Empty(t, m.page.Records)

	m, _ = m.Update(ticketsLoadedMsg{gen: m.gen, page: ticketPage(5, 1, 1)})
	assert.Len(t, m.page.Records, 5)
}

func TestTickets_PaginationBounds(t *testing.T) {
	m := newTicketsModel(nil)
	m, _ = m.start()
	m, _ = m.Update(ticketsLoadedMsg{gen: m.gen, page: ticketPage(pageSize, 1, 3)})

	_, cmd := m.Update(keyRunes("p"))
	assert.Nil(t, cmd, "no previous page from page 1")

	m2, cmd := m.Update(keyRunes("n"))
	assert.NotNil(t, cmd)
	assert.True(t, m2.loading)
}

func TestTickets_CursorClampedOnShorterPage(t *testing.T) {
	m := newTicketsModel(nil)
	m, _ = m.start()
	m, _ = m.Update(ticketsLoadedMsg{gen: m.gen, page: ticketPage(5, 1, 1)})
	m.cursor = 4

	m, _ = m.Update(keyRunes("r"))
	m, _ = m.Update(ticketsLoadedMsg{gen: m.gen, page: ticketPage(2, 1, 1)})
	assert.Zero(t, m.cursor)
}

func TestTickets_StatusFilterCycles(t *testing.T) {
	seen := map[string]bool{}
	cur := ""
	for range 5 {
		cur = nextStatusFilter(cur)
		seen[cur] = true
	}
	assert.Equal(t, "", cur, "five steps bring the filter back to all")
	assert.True(t, seen[domain.TicketOpen])
	assert.True(t, seen[domain.TicketClosed])
}

func TestTickets_ReplyAppendsToThread(t *testing.T) {
	m := newTicketsModel(nil)
	m.mode = ticketsDetail
	m.detail = &domain.ServiceTicket{Subject: "payslip missing"}

	reply := &domain.TicketReply{Author: "ops", Body: "re-issued"}
	m, _ = m.Update(ticketRepliedMsg{reply: reply})

	require.Len(t, m.replies, 1)
	assert.Equal(t, "re-issued", m.replies[0].Body)
	assert.Equal(t, "reply sent", m.toast)
}

func TestTickets_StatusSetUpdatesDetail(t *testing.T) {
	m := newTicketsModel(nil)
	m.mode = ticketsDetail
	m.detail = &domain.ServiceTicket{Status: domain.TicketOpen}

	m, _ = m.Update(ticketStatusSetMsg{status: domain.TicketResolved})
	assert.Equal(t, domain.TicketResolved, m.detail.Status)
}

func TestTickets_EditingBlocksShellKeys(t *testing.T) {
	m := newTicketsModel(nil)
	m, _ = m.start()

	m, _ = m.Update(keyRunes("/"))
	assert.True(t, m.editing())

	m.searching = false
	m.composing = true
	assert.True(t, m.editing())
}
