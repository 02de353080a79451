package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squarelake/paydesk/internal/nav"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
)

type usersLoadedMsg struct {
	gen  int
	page domain.Page[domain.User]
	err  error
}

type userSavedMsg struct {
	created bool
	err     error
}

type userDeletedMsg struct {
	err error
}

type usersMode int

const (
	usersBrowse usersMode = iota
	usersForm
	usersConfirmDelete
)

type userForm struct {
	editID    string
	username  string
	display   string
	companyID string
	phone     string
	password  string
	roleIdx   int
	focus     int
}

// usersModel serves two tabs with the same machinery: company-side
// accounts, and customer-service staff accounts (admin-only endpoint,
// no in-place edit).
type usersModel struct {
	client *api.Client

	serviceStaff bool
	mode         usersMode
	page         domain.Page[domain.User]
	cursor       int

	searching bool
	search    string
	seq       int

	form  userForm
	roles []domain.Role

	gen     int
	loading bool
	busy    bool
	errMsg  string
	toast   string

	width  int
	height int
}

func newUsersModel(c *api.Client) usersModel {
	return usersModel{
		client: c,
		roles:  []domain.Role{domain.RoleCommon, domain.RoleAdmin, domain.RoleCustomerService},
	}
}

func (m usersModel) startFor(tab nav.Tab) (usersModel, tea.Cmd) {
	m.serviceStaff = tab == nav.TabServiceUsers
	m.gen++
	m.mode = usersBrowse
	m.search = ""
	m.loading = true
	m.errMsg = ""
	m.toast = ""
	return m, m.load(m.gen, 1)
}

func (m usersModel) load(gen, current int) tea.Cmd {
	client := m.client
	service := m.serviceStaff
	query := m.search
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var (
			page domain.Page[domain.User]
			err  error
		)
		if service {
			page, err = client.ListServiceUsers(ctx, current, pageSize)
		} else {
			page, err = client.ListUsers(ctx, query, current, pageSize)
		}
		return usersLoadedMsg{gen: gen, page: page, err: err}
	}
}

func (m usersModel) formFieldCount() int {
	if m.form.editID != "" {
		return 5 // no password on edit
	}
	return 6
}

func (m usersModel) save() tea.Cmd {
	client := m.client
	service := m.serviceStaff
	f := m.form
	role := m.roles[f.roleIdx]
	if service {
		role = domain.RoleCustomerService
	}
	req := api.UserRequest{
		Username:    strings.TrimSpace(f.username),
		DisplayName: strings.TrimSpace(f.display),
		Role:        role,
		CompanyID:   strings.TrimSpace(f.companyID),
		Phone:       strings.TrimSpace(f.phone),
		Password:    f.password,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if f.editID != "" {
			req.Password = ""
			return userSavedMsg{err: client.UpdateUser(ctx, f.editID, req)}
		}
		var err error
		if service {
			_, err = client.CreateServiceUser(ctx, req)
		} else {
			_, err = client.CreateUser(ctx, req)
		}
		return userSavedMsg{created: true, err: err}
	}
}

func (m usersModel) remove(id string) tea.Cmd {
	client := m.client
	service := m.serviceStaff
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if service {
			return userDeletedMsg{err: client.DeleteServiceUser(ctx, id)}
		}
		return userDeletedMsg{err: client.DeleteUser(ctx, id)}
	}
}

func (m usersModel) editing() bool {
	return m.searching || m.mode == usersForm
}

func (m *usersModel) selected() *domain.User {
	if m.cursor < len(m.page.Records) {
		return &m.page.Records[m.cursor]
	}
	return nil
}

func (m usersModel) Update(msg tea.Msg) (usersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case usersLoadedMsg:
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
		return m, m.load(m.gen, 1)

	case userSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = usersBrowse
		if msg.created {
			m.toast = "account created"
		} else {
			m.toast = "account updated"
		}
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)

	case userDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = errText(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.mode = usersBrowse
		m.toast = "account removed"
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m usersModel) updateKeys(msg tea.KeyMsg) (usersModel, tea.Cmd) {
	key := msg.String()
	if m.busy {
		return m, nil
	}

	if m.searching {
		switch key {
		case "enter", "esc":
			m.searching = false
			if key == "esc" {
				return m, nil
			}
		default:
			m.search = editRune(m.search, key)
		}
		m.seq++
		seq := m.seq
		return m, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return ticketSearchTickMsg{seq: seq}
		})
	}

	switch m.mode {
	case usersForm:
		return m.updateFormKeys(key)

	case usersConfirmDelete:
		switch key {
		case "y", "enter":
			if u := m.selected(); u != nil {
				m.busy = true
				return m, m.remove(u.ID.String())
			}
			m.mode = usersBrowse
		case "n", "esc":
			m.mode = usersBrowse
		}
		return m, nil
	}

	// browse
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
		if !m.serviceStaff {
			m.searching = true
			m.toast = ""
		}
	case "n":
		if m.page.HasNext() {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.page.Current+1)
		}
	case "p":
		if m.page.HasPrev() {
			m.gen++
			m.loading = true
			return m, m.load(m.gen, m.page.Current-1)
		}
	case "r":
		m.gen++
		m.loading = true
		return m, m.load(m.gen, m.page.Current)
	case "a":
		m.mode = usersForm
		m.form = userForm{}
		m.toast = ""
		m.errMsg = ""
	case "e", "enter":
		if m.serviceStaff {
			return m, nil // service accounts are create/delete only
		}
		if u := m.selected(); u != nil {
			roleIdx := 0
			for i, r := range m.roles {
				if r == u.Role {
					roleIdx = i
				}
			}
			m.mode = usersForm
			m.form = userForm{
				editID:    u.ID.String(),
				username:  u.Username,
				display:   u.DisplayName,
				companyID: u.CompanyID,
				phone:     u.Phone,
				roleIdx:   roleIdx,
			}
			m.toast = ""
			m.errMsg = ""
		}
	case "d":
		if m.selected() != nil {
			m.mode = usersConfirmDelete
			m.toast = ""
		}
	}
	return m, nil
}

func (m usersModel) updateFormKeys(key string) (usersModel, tea.Cmd) {
	fields := m.formFieldCount()
	roleField := 2 // username, display, role, company, phone[, password]

	switch key {
	case "esc":
		m.mode = usersBrowse
		return m, nil
	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % fields
		return m, nil
	case "shift+tab", "up":
		m.form.focus = (m.form.focus + fields - 1) % fields
		return m, nil
	case "enter":
		if m.form.focus < fields-1 {
			m.form.focus++
			return m, nil
		}
		if strings.TrimSpace(m.form.username) == "" {
			m.errMsg = "username is required"
			return m, nil
		}
		if m.form.editID == "" && m.form.password == "" {
			m.errMsg = "password is required for new accounts"
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, m.save()
	case " ", "left", "right":
		if m.form.focus == roleField && !m.serviceStaff {
			if key == "left" {
				m.form.roleIdx = (m.form.roleIdx + len(m.roles) - 1) % len(m.roles)
			} else {
				m.form.roleIdx = (m.form.roleIdx + 1) % len(m.roles)
			}
			return m, nil
		}
		if key != " " {
			return m, nil
		}
	}

	switch m.form.focus {
	case 0:
		m.form.username = editRune(m.form.username, key)
	case 1:
		m.form.display = editRune(m.form.display, key)
	case 2:
		// role is cycled, not typed
	case 3:
		m.form.companyID = editRune(m.form.companyID, key)
	case 4:
		m.form.phone = editRune(m.form.phone, key)
	case 5:
		m.form.password = editRune(m.form.password, key)
	}
	return m, nil
}

func (m usersModel) helpKeys() string {
	switch m.mode {
	case usersForm:
		return helpEntry("tab", "next") + "  " + helpEntry("←/→", "role") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case usersConfirmDelete:
		return helpEntry("y", "delete") + "  " + helpEntry("n", "keep")
	}
	if m.serviceStaff {
		return helpEntry("a", "add") + "  " + helpEntry("d", "delete") + "  " + helpEntry("n/p", "page")
	}
	return helpEntry("/", "search") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete")
}

func (m usersModel) View() string {
	switch m.mode {
	case usersForm:
		return m.viewForm()
	case usersConfirmDelete:
		return m.viewConfirm()
	}
	return m.viewBrowse()
}

func (m usersModel) title() string {
	if m.serviceStaff {
		return "Service Staff"
	}
	return "Accounts"
}

func (m usersModel) viewBrowse() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(m.title()) + "\n")

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
		sb.WriteString(" " + dimStyle.Render("no accounts") + "\n")
		return sb.String()
	}

	for i, u := range m.page.Records {
		marker := "  "
		style := normalStyle
		if i == m.cursor {
			marker = cursorBarStyle.Render("▌ ")
			style = selectedStyle
		}
		sb.WriteString(marker +
			style.Render(padRight(truncStr(u.Username, 20), 20)) + " " +
			dimStyle.Render(padRight(truncStr(u.DisplayName, 24), 24)) + " " +
			roleStyle(u.Role).Render(padRight(string(u.Role), 18)) + " " +
			metaStyle.Render(formatTime(u.CreatedAt)) + "\n")
	}

	sb.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d accounts", m.page.Current, m.page.Pages, m.page.Total)))
	if m.toast != "" {
		sb.WriteString("  " + toastOKStyle.Render(m.toast))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m usersModel) viewForm() string {
	title := "New account"
	if m.form.editID != "" {
		title = "Edit account"
	}
	if m.serviceStaff {
		title = "New service account"
	}

	role := string(m.roles[m.form.roleIdx])
	if m.serviceStaff {
		role = string(domain.RoleCustomerService)
	}

	type field struct {
		label string
		value string
		typed bool
	}
	fields := []field{
		{"username", m.form.username, true},
		{"display name", m.form.display, true},
		{"role", role, false},
		{"company id", m.form.companyID, true},
		{"phone", m.form.phone, true},
	}
	if m.form.editID == "" {
		fields = append(fields, field{"password", strings.Repeat("•", len(m.form.password)), true})
	}

	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render(title) + "\n\n")
	for i, f := range fields {
		label := padRight(f.label, 14)
		switch {
		case i == m.form.focus && f.typed:
			sb.WriteString(" " + inputPromptStyle.Render(label) + normalStyle.Render(f.value) + cursorBarStyle.Render("▎") + "\n")
		case i == m.form.focus:
			sb.WriteString(" " + inputPromptStyle.Render(label) + roleStyle(domain.Role(f.value)).Render(f.value) + dimStyle.Render("  ←/→") + "\n")
		default:
			sb.WriteString(" " + dimStyle.Render(label) + normalStyle.Render(f.value) + "\n")
		}
	}

	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("saving...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}

func (m usersModel) viewConfirm() string {
	name := ""
	if u := m.selected(); u != nil {
		name = u.Username
	}
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Delete account") + "\n\n")
	sb.WriteString(" " + normalStyle.Render("Delete ") + selectedStyle.Render(name) + normalStyle.Render("?") + "\n")
	if m.busy {
		sb.WriteString("\n " + dimStyle.Render("deleting...") + "\n")
	} else if m.errMsg != "" {
		sb.WriteString("\n " + errorStyle.Render(m.errMsg) + "\n")
	}
	return sb.String()
}
