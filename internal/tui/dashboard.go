package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

const dashboardPollInterval = 2 * time.Minute

// dashboardLoadedMsg joins both halves of the dashboard fetch. The view
// renders either everything or an error, never a partial mix.
type dashboardLoadedMsg struct {
	gen     int
	stats   *domain.DashboardStats
	tickets []domain.ServiceTicket
	err     error
}

type dashboardPollMsg struct {
	gen int
}

// dashboardModel shows the back-office summary and the latest tickets.
type dashboardModel struct {
	client *api.Client

	stats   *domain.DashboardStats
	tickets []domain.ServiceTicket
	loaded  bool
	loading bool
	errMsg  string

	// gen invalidates every in-flight response when a new load starts, so
	// a slow earlier fetch can never overwrite a later one.
	gen int

	width  int
	height int
}

func newDashboardModel(c *api.Client) dashboardModel {
	return dashboardModel{client: c}
}

// start begins a fresh load. Bumping the generation here also invalidates
// any poll left over from an earlier visit to this tab.
func (m dashboardModel) start() (dashboardModel, tea.Cmd) {
	m.gen++
	m.loading = true
	m.errMsg = ""
	return m, m.load(m.gen)
}

// load fetches stats and the latest tickets concurrently, joining them into
// one message.
func (m dashboardModel) load(gen int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var (
			wg       sync.WaitGroup
			stats    *domain.DashboardStats
			statsErr error
			page     domain.Page[domain.ServiceTicket]
			listErr  error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			stats, statsErr = client.Stats(ctx)
		}()
		go func() {
			defer wg.Done()
			page, listErr = client.ListTickets(ctx, "", "", 1, 5)
		}()
		wg.Wait()

		if statsErr != nil {
			return dashboardLoadedMsg{gen: gen, err: statsErr}
		}
		if listErr != nil {
			return dashboardLoadedMsg{gen: gen, err: listErr}
		}
		return dashboardLoadedMsg{gen: gen, stats: stats, tickets: page.Records}
	}
}

func (m dashboardModel) poll(gen int) tea.Cmd {
	return tea.Tick(dashboardPollInterval, func(time.Time) tea.Msg {
		return dashboardPollMsg{gen: gen}
	})
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, m.poll(m.gen)
		}
		m.stats = msg.stats
		m.tickets = msg.tickets
		m.loaded = true
		m.errMsg = ""
		return m, m.poll(m.gen)

	case dashboardPollMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.load(m.gen)

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.gen++
			m.loading = true
			m.errMsg = ""
			return m, m.load(m.gen)
		}
	}
	return m, nil
}

func (m dashboardModel) helpKeys() string {
	return helpEntry("r", "refresh")
}

func (m dashboardModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Overview") + "\n\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	case !m.loaded:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	}

	s := m.stats
	cells := []struct {
		label string
		value int
	}{
		{"open", s.OpenTickets},
		{"pending", s.PendingTickets},
		{"resolved today", s.ResolvedToday},
		{"active companies", s.ActiveCompanies},
		{"pending invoices", s.PendingInvoices},
	}
	sb.WriteString(" ")
	for i, c := range cells {
		sb.WriteString(accentStyle.Render(fmt.Sprintf("%d", c.value)) + " " + dimStyle.Render(c.label))
		if i < len(cells)-1 {
			sb.WriteString(metaStyle.Render("  │  "))
		}
	}
	sb.WriteString("\n\n " + headerStyle.Render("Latest tickets") + "\n")

	if len(m.tickets) == 0 {
		sb.WriteString(" " + dimStyle.Render("no tickets") + "\n")
		return sb.String()
	}
	for _, t := range m.tickets {
		line := " " + statusStyle(t.Status).Render(padRight(t.Status, 8)) +
			" " + normalStyle.Render(truncStr(t.Subject, 48)) +
			"  " + dimStyle.Render(t.CompanyName) +
			"  " + metaStyle.Render(formatTime(t.UpdatedAt))
		sb.WriteString(line + "\n")
	}
	return sb.String()
}
