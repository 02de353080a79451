package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

const searchDebounce = 350 * time.Millisecond

type ticketsLoadedMsg struct {
	gen  int
	page domain.Page[domain.ServiceTicket]
	err  error
}

type ticketSearchTickMsg struct {
	seq int
}

// ticketDetailMsg joins the ticket, its thread, and its attachments.
type ticketDetailMsg struct {
	gen     int
	ticket  *domain.ServiceTicket
	replies []domain.TicketReply
	atts    []domain.Attachment
	err     error
}

type ticketRepliedMsg struct {
	reply *domain.TicketReply
	err   error
}

type ticketStatusSetMsg struct {
	status string
	err    error
}

type ticketCopiedMsg struct {
	err error
}

type ticketsMode int

const (
	ticketsList ticketsMode = iota
	ticketsDetail
)

// ticketsModel is the customer-service queue: a searchable paged list and
// a per-ticket thread view with a reply composer.
type ticketsModel struct {
	client *api.Client

	mode   ticketsMode
	page   domain.Page[domain.ServiceTicket]
	cursor int

	searching bool
	search    string
	// seq invalidates pending debounce ticks; only the latest keystroke's
	// tick fires a request.
	seq int

	statusFilter string

	detail  *domain.ServiceTicket
	replies []domain.TicketReply
	atts    []domain.Attachment

	composing bool
	draft     string
	internal  bool

	picking   bool
	pickIdx   int
	statusSet []string

	gen     int
	loading bool
	errMsg  string
	toast   string

	width  int
	height int
}

func newTicketsModel(c *api.Client) ticketsModel {
	return ticketsModel{
		client:    c,
		statusSet: []string{domain.TicketOpen, domain.TicketPending, domain.TicketResolved, domain.TicketClosed},
	}
}

func (m ticketsModel) start() (ticketsModel, tea.Cmd) {
	m.gen++
	m.mode = ticketsList
	m.loading = true
	m.errMsg = ""
	m.toast = ""
	return m, m.loadList(m.gen, 1)
}

func (m ticketsModel) loadList(gen, current int) tea.Cmd {
	client := m.client
	query := m.search
	status := m.statusFilter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		page, err := client.ListTickets(ctx, query, status, current, pageSize)
		return ticketsLoadedMsg{gen: gen, page: page, err: err}
	}
}

func (m ticketsModel) loadDetail(gen int, id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var (
			wg      sync.WaitGroup
			ticket  *domain.ServiceTicket
			replies []domain.TicketReply
			atts    []domain.Attachment
			tErr    error
			rErr    error
			aErr    error
		)
		wg.Add(3)
		go func() { defer wg.Done(); ticket, tErr = client.GetTicket(ctx, id) }()
		go func() { defer wg.Done(); replies, rErr = client.ListReplies(ctx, id) }()
		go func() { defer wg.Done(); atts, aErr = client.ListAttachments(ctx, id) }()
		wg.Wait()

		for _, err := range []error{tErr, rErr, aErr} {
			if err != nil {
				return ticketDetailMsg{gen: gen, err: err}
			}
		}
		return ticketDetailMsg{gen: gen, ticket: ticket, replies: replies, atts: atts}
	}
}

func (m ticketsModel) debounce(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return ticketSearchTickMsg{seq: seq}
	})
}

func (m ticketsModel) editing() bool {
	return m.searching || m.composing
}

func (m ticketsModel) Update(msg tea.Msg) (ticketsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ticketsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.page = msg.page
		if m.cursor >= len(m.page.Records) {
			m.cursor = 0
		}
		return m, nil

	case ticketSearchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.gen++
		m.loading = true
		return m, m.loadList(m.gen, 1)

	case ticketDetailMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			m.mode = ticketsList
			return m, nil
		}
		m.errMsg = ""
		m.mode = ticketsDetail
		m.detail = msg.ticket
		m.replies = msg.replies
		m.atts = msg.atts
		return m, nil

	case ticketRepliedMsg:
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.toast = "reply sent"
		if msg.reply != nil {
			m.replies = append(m.replies, *msg.reply)
		}
		return m, nil

	case ticketStatusSetMsg:
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.toast = "status set to " + strings.ToLower(msg.status)
		if m.detail != nil {
			m.detail.Status = msg.status
		}
		return m, nil

	case ticketCopiedMsg:
		if msg.err != nil {
			m.errMsg = "clipboard unavailable"
			return m, nil
		}
		m.toast = "ticket id copied"
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m ticketsModel) updateKeys(msg tea.KeyMsg) (ticketsModel, tea.Cmd) {
	key := msg.String()

	if m.searching {
		switch key {
		case "enter", "esc":
			m.searching = false
			if key == "esc" {
				return m, nil
			}
			m.seq++
			return m, m.debounce(m.seq)
		default:
			m.search = editRune(m.search, key)
			m.seq++
			return m, m.debounce(m.seq)
		}
	}

	if m.composing {
		switch key {
		case "esc":
			m.composing = false
			m.draft = ""
			return m, nil
		case "ctrl+t":
			m.internal = !m.internal
			return m, nil
		case "enter":
			body := strings.TrimSpace(m.draft)
			if body == "" {
				return m, nil
			}
			m.composing = false
			m.draft = ""
			return m, m.sendReply(body, m.internal)
		default:
			m.draft = editRune(m.draft, key)
			return m, nil
		}
	}

	if m.picking {
		switch key {
		case "esc":
			m.picking = false
		case "up", "k":
			if m.pickIdx > 0 {
				m.pickIdx--
			}
		case "down", "j":
			if m.pickIdx < len(m.statusSet)-1 {
				m.pickIdx++
			}
		case "enter":
			m.picking = false
			return m, m.setStatus(m.statusSet[m.pickIdx])
		}
		return m, nil
	}

	switch m.mode {
	case ticketsList:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.page.Records)-1 {
				m.cursor++
			}
		case "/":
			m.searching = true
			m.toast = ""
		case "f":
			m.statusFilter = nextStatusFilter(m.statusFilter)
			m.gen++
			m.loading = true
			return m, m.loadList(m.gen, 1)
		case "n":
			if m.page.HasNext() {
				m.gen++
				m.loading = true
				return m, m.loadList(m.gen, m.page.Current+1)
			}
		case "p":
			if m.page.HasPrev() {
				m.gen++
				m.loading = true
				return m, m.loadList(m.gen, m.page.Current-1)
			}
		case "r":
			m.gen++
			m.loading = true
			return m, m.loadList(m.gen, m.page.Current)
		case "enter":
			if m.cursor < len(m.page.Records) {
				m.gen++
				m.loading = true
				m.toast = ""
				return m, m.loadDetail(m.gen, m.page.Records[m.cursor].ID.String())
			}
		}

	case ticketsDetail:
		switch key {
		case "esc":
			m.mode = ticketsList
			m.toast = ""
		case "c":
			m.composing = true
			m.internal = false
			m.toast = ""
		case "t":
			m.picking = true
			m.pickIdx = 0
			for i, s := range m.statusSet {
				if m.detail != nil && s == m.detail.Status {
					m.pickIdx = i
				}
			}
		case "y":
			if m.detail != nil {
				id := m.detail.ID.String()
				return m, func() tea.Msg {
					return ticketCopiedMsg{err: clipboard.WriteAll(id)}
				}
			}
		case "r":
			if m.detail != nil {
				m.gen++
				m.loading = true
				return m, m.loadDetail(m.gen, m.detail.ID.String())
			}
		}
	}
	return m, nil
}

func (m ticketsModel) sendReply(body string, internal bool) tea.Cmd {
	client := m.client
	id := m.detail.ID.String()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		reply, err := client.ReplyTicket(ctx, id, body, internal)
		return ticketRepliedMsg{reply: reply, err: err}
	}
}

func (m ticketsModel) setStatus(status string) tea.Cmd {
	client := m.client
	id := m.detail.ID.String()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return ticketStatusSetMsg{status: status, err: client.SetTicketStatus(ctx, id, status)}
	}
}

// nextStatusFilter cycles all → open → pending → resolved → closed → all.
func nextStatusFilter(cur string) string {
	order := []string{"", domain.TicketOpen, domain.TicketPending, domain.TicketResolved, domain.TicketClosed}
	for i, s := range order {
		if s == cur {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

func (m ticketsModel) helpKeys() string {
	if m.composing {
		return helpEntry("enter", "send") + "  " + helpEntry("ctrl+t", "internal") + "  " + helpEntry("esc", "cancel")
	}
	if m.searching {
		return helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel")
	}
	if m.mode == ticketsDetail {
		return helpEntry("c", "reply") + "  " + helpEntry("t", "status") + "  " + helpEntry("y", "copy id") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("/", "search") + "  " + helpEntry("f", "filter") + "  " + helpEntry("n/p", "page") + "  " + helpEntry("enter", "open")
}

func (m ticketsModel) View() string {
	if m.mode == ticketsDetail && m.detail != nil {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m ticketsModel) viewList() string {
	var sb strings.Builder
	title := "Customer Service"
	if m.statusFilter != "" {
		title += "  " + statusStyle(m.statusFilter).Render(strings.ToLower(m.statusFilter))
	}
	sb.WriteString("\n " + headerStyle.Render(title) + "\n")

	if m.searching {
		sb.WriteString(" " + inputPromptStyle.Render("search: ") + normalStyle.Render(m.search) + cursorBarStyle.Render("▎") + "\n")
	} else if m.search != "" {
		sb.WriteString(" " + dimStyle.Render("search: "+m.search) + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.errMsg != "":
		sb.WriteString(" " + errorStyle.Render(m.errMsg) + "\n")
		return sb.String()
	case m.loading:
		sb.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return sb.String()
	case len(m.page.Records) == 0:
		sb.WriteString(" " + dimStyle.Render("no tickets") + "\n")
		return sb.String()
	}

	for i, t := range m.page.Records {
		marker := "  "
		style := normalStyle
		if i == m.cursor {
			marker = cursorBarStyle.Render("▌ ")
			style = selectedStyle
		}
		sb.WriteString(marker +
			statusStyle(t.Status).Render(padRight(t.Status, 8)) + " " +
			style.Render(padRight(truncStr(t.Subject, 44), 44)) + " " +
			dimStyle.Render(padRight(truncStr(t.CompanyName, 20), 20)) + " " +
			metaStyle.Render(formatTime(t.UpdatedAt)) + "\n")
	}

	sb.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d tickets", m.page.Current, m.page.Pages, m.page.Total)))
	if m.toast != "" {
		sb.WriteString("  " + toastOKStyle.Render(m.toast))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m ticketsModel) viewDetail() string {
	t := m.detail
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(truncStr(t.Subject, 64)) + "\n")
	sb.WriteString(" " + statusStyle(t.Status).Render(t.Status) +
		"  " + dimStyle.Render(t.CompanyName) +
		"  " + metaStyle.Render(t.ID.String()) + "\n\n")
	sb.WriteString(" " + normalStyle.Render(t.Body) + "\n")

	if len(m.atts) > 0 {
		sb.WriteString("\n " + dimStyle.Render("attachments:") + "\n")
		for _, a := range m.atts {
			sb.WriteString("   " + normalStyle.Render(a.Filename) + " " + metaStyle.Render(fmt.Sprintf("(%d bytes)", a.Size)) + "\n")
		}
	}

	if len(m.replies) > 0 {
		sb.WriteString("\n")
		for _, r := range m.replies {
			tag := ""
			if r.Internal {
				tag = " " + warnStyle.Render("[internal]")
			}
			sb.WriteString(" " + selectedStyle.Render(r.Author) + tag + " " + metaStyle.Render(formatTime(r.CreatedAt)) + "\n")
			sb.WriteString("   " + normalStyle.Render(r.Body) + "\n")
		}
	}

	if m.picking {
		sb.WriteString("\n " + dimStyle.Render("set status:") + "\n")
		for i, s := range m.statusSet {
			if i == m.pickIdx {
				sb.WriteString(" " + cursorBarStyle.Render("▌ ") + statusStyle(s).Render(s) + "\n")
			} else {
				sb.WriteString("   " + dimStyle.Render(s) + "\n")
			}
		}
	}

	if m.composing {
		label := "reply"
		if m.internal {
			label = "internal note"
		}
		sb.WriteString("\n " + inputPromptStyle.Render(label+": ") + normalStyle.Render(m.draft) + cursorBarStyle.Render("▎") + "\n")
	}

	if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	} else if m.toast != "" {
		sb.WriteString("\n " + toastOKStyle.Render(m.toast) + "\n")
	}
	return sb.String()
}
