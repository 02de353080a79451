package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/squarelake/paydesk/internal/config"
	"github.com/squarelake/paydesk/internal/nav"
	"github.com/squarelake/paydesk/internal/session"
	"github.com/squarelake/paydesk/pkg/api"
)

// gateState is the auth gate's state. There is no transition back to
// stateChecking after the first resolution.
type gateState int

const (
	stateChecking gateState = iota
	stateLogin
	stateShell
)

// sessionCheckedMsg carries the result of the initial session fetch.
type sessionCheckedMsg struct {
	err error
}

// loggedInMsg carries the result of login + session fetch.
type loggedInMsg struct {
	err error
}

// logoutDoneMsg means local teardown finished; the program exits so the
// wrapper can restart it clean.
type logoutDoneMsg struct{}

// App is the root model: the auth gate, and once authenticated, the
// navigation shell.
type App struct {
	client  *api.Client
	store   *session.Store
	cfg     config.Config
	version string

	state    gateState
	location string
	menu     []nav.Entry

	spin  spinner.Model
	login loginModel

	dashboard dashboardModel
	tickets   ticketsModel
	companies companiesModel
	users     usersModel
	rates     ratesModel
	tax       taxModel

	settingsOpen bool

	width  int
	height int
}

// NewApp creates the root model, starting at location (use "/" for the
// default view). The gate state is decided here: with no stored token the
// app starts at the login form and the session endpoint is never called.
func NewApp(c *api.Client, store *session.Store, cfg config.Config, version, location string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	a := App{
		client:    c,
		store:     store,
		cfg:       cfg,
		version:   version,
		location:  location,
		spin:      sp,
		login:     newLoginModel(c, store),
		dashboard: newDashboardModel(c),
		tickets:   newTicketsModel(c),
		companies: newCompaniesModel(c),
		users:     newUsersModel(c),
		rates:     newRatesModel(c),
		tax:       newTaxModel(c),
	}
	if store.HasToken() {
		a.state = stateChecking
	} else {
		a.state = stateLogin
	}
	return a
}

func (a App) Init() tea.Cmd {
	switch a.state {
	case stateChecking:
		return tea.Batch(a.spin.Tick, a.checkSession())
	case stateLogin:
		return a.login.Init()
	default:
		return nil
	}
}

// checkSession resolves the stored token into a session.
func (a App) checkSession() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		return sessionCheckedMsg{err: store.FetchUserInfo(context.Background())}
	}
}

// activeTab derives the highlighted tab from the current location. The
// location is the only source of truth; there is no separately tracked
// tab state to drift out of sync.
func (a App) activeTab() nav.Tab {
	return nav.ActiveTab(a.location)
}

// enterShell transitions to the authenticated shell, recomputing the menu
// from the fresh session and snapping the location to a permitted view.
func (a App) enterShell() (App, tea.Cmd) {
	sess := a.store.Session()
	a.state = stateShell
	a.menu = nav.ResolveMenu(sess.Role, sess.Franchise)
	if !nav.Allowed(sess.Role, sess.Franchise, a.activeTab()) {
		a.location = nav.PathFor(nav.DefaultTab)
	}
	return a.viewStart(a.activeTab())
}

// navigate handles a tab selection from the menu. Placeholder tabs open
// inline content and leave the location alone; routed tabs push their path.
func (a App) navigate(tab nav.Tab) (App, tea.Cmd) {
	// A 401 since the last interaction purges the token; auth state is
	// re-evaluated on the next manual navigation, which is here.
	if !a.store.HasToken() {
		a.store.Set(nil)
		a.state = stateLogin
		a.login = newLoginModel(a.client, a.store)
		return a, a.login.Init()
	}
	if tab == nav.TabSettings {
		a.settingsOpen = true
		return a, nil
	}
	path := nav.PathFor(tab)
	if path == "" || path == a.location {
		return a, nil
	}
	a.location = path
	return a.viewStart(tab)
}

// viewStart kicks off the load for the view behind tab, returning the
// updated model so start-time state (load generation, mode) sticks.
func (a App) viewStart(tab nav.Tab) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch tab {
	case nav.TabDashboard:
		a.dashboard, cmd = a.dashboard.start()
	case nav.TabTickets:
		a.tickets, cmd = a.tickets.start()
	case nav.TabServiceUsers, nav.TabUsers:
		a.users, cmd = a.users.startFor(tab)
	case nav.TabCompanies:
		a.companies, cmd = a.companies.start()
	case nav.TabBasePay, nav.TabInsurance, nav.TabFundRates:
		a.rates, cmd = a.rates.startFor(tab)
	case nav.TabTax:
		a.tax, cmd = a.tax.start()
	}
	return a, cmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.login, _ = a.login.Update(bodyMsg)
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.tickets, _ = a.tickets.Update(bodyMsg)
		a.companies, _ = a.companies.Update(bodyMsg)
		a.users, _ = a.users.Update(bodyMsg)
		a.rates, _ = a.rates.Update(bodyMsg)
		a.tax, _ = a.tax.Update(bodyMsg)
		return a, nil

	case spinner.TickMsg:
		if a.state != stateChecking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionCheckedMsg:
		if a.state != stateChecking {
			return a, nil
		}
		if msg.err != nil {
			// Both effects together: the stale token goes, the session
			// stays nil, and the login form takes over.
			a.store.Discard()
			a.state = stateLogin
			return a, a.login.Init()
		}
		return a.enterShell()

	case loggedInMsg:
		if msg.err == nil && a.store.Session() != nil {
			return a.enterShell()
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case logoutDoneMsg:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a.routeMsg(msg)
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state == stateLogin {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}
	if a.state == stateChecking {
		if key := msg.String(); key == "q" || key == "ctrl+c" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Settings overlay captures all keys when open.
	if a.settingsOpen {
		switch msg.String() {
		case "esc", "s":
			a.settingsOpen = false
		case "q", "ctrl+c":
			return a, tea.Quit
		case "L":
			return a, a.doLogout()
		}
		return a, nil
	}

	if !a.isEditing() {
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "L":
			return a, a.doLogout()
		}
		// Number keys select visible menu entries.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(a.menu) {
				return a.navigate(a.menu[idx].Tab)
			}
			return a, nil
		}
	} else if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	return a.routeMsg(msg)
}

// doLogout tears down auth state. The store's injected reload runs before
// the quit message so the wrapper knows to restart clean.
func (a App) doLogout() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Logout(context.Background())
		return logoutDoneMsg{}
	}
}

// routeMsg forwards a message to the view that owns the active tab.
func (a App) routeMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state != stateShell {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.activeTab() {
	case nav.TabDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case nav.TabTickets:
		a.tickets, cmd = a.tickets.Update(msg)
	case nav.TabServiceUsers, nav.TabUsers:
		a.users, cmd = a.users.Update(msg)
	case nav.TabCompanies:
		a.companies, cmd = a.companies.Update(msg)
	case nav.TabBasePay, nav.TabInsurance, nav.TabFundRates:
		a.rates, cmd = a.rates.Update(msg)
	case nav.TabTax:
		a.tax, cmd = a.tax.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.activeTab() {
	case nav.TabTickets:
		return a.tickets.editing()
	case nav.TabCompanies:
		return a.companies.editing()
	case nav.TabServiceUsers, nav.TabUsers:
		return a.users.editing()
	case nav.TabBasePay, nav.TabInsurance, nav.TabFundRates:
		return a.rates.editing()
	case nav.TabTax:
		return a.tax.editing()
	}
	return false
}

func (a App) View() string {
	switch a.state {
	case stateChecking:
		return "\n " + a.spin.View() + dimStyle.Render(" checking session...") + "\n"
	case stateLogin:
		return a.login.View()
	}

	header := a.renderHeader()
	tabBar := a.renderTabBar()

	var body, help string
	if a.settingsOpen {
		body = a.renderSettings()
		help = " " + helpEntry("esc", "close") + "  " + helpEntry("L", "logout") + "  " + helpEntry("q", "quit")
	} else {
		switch a.activeTab() {
		case nav.TabDashboard:
			body = a.dashboard.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.dashboard.helpKeys()
		case nav.TabTickets:
			body = a.tickets.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.tickets.helpKeys()
		case nav.TabServiceUsers, nav.TabUsers:
			body = a.users.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.users.helpKeys()
		case nav.TabCompanies:
			body = a.companies.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.companies.helpKeys()
		case nav.TabBasePay, nav.TabInsurance, nav.TabFundRates:
			body = a.rates.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.rates.helpKeys()
		case nav.TabTax:
			body = a.tax.View()
			help = " " + helpEntry("1-9", "tabs") + "  " + a.tax.helpKeys()
		}
		help += "  " + helpEntry("L", "logout") + "  " + helpEntry("q", "quit")
	}

	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar, body, help)
}

func (a App) renderHeader() string {
	logo := logoStyle.Render("PAYDESK")
	line := " " + logo

	if sess := a.store.Session(); sess != nil {
		who := selectedStyle.Render(sess.DisplayName)
		role := roleStyle(sess.Role).Render(string(sess.Role))
		extra := ""
		if sess.Franchise {
			extra = " " + dimStyle.Render("franchise")
		}
		line += "   " + who + " " + metaStyle.Render("·") + " " + role + extra
	}

	loc := a.location
	locLine := " " + metaStyle.Render(loc)
	return line + "\n" + locLine
}

// renderTabBar shows numbered entries from the role-resolved menu. Grouped
// entries sit behind a separator; the group never renders when empty
// because empty groups produce no entries at all.
func (a App) renderTabBar() string {
	active := a.activeTab()
	var sb strings.Builder
	sb.WriteString(" ")
	groupShown := false
	for i, e := range a.menu {
		if e.Group != "" && !groupShown {
			sb.WriteString(groupStyle.Render("┃ "))
			groupShown = true
		}
		key := fmt.Sprintf("%d", i+1)
		label := e.Icon + " " + e.Label
		selected := e.Tab == active && !a.settingsOpen
		if e.Tab == nav.TabSettings && a.settingsOpen {
			selected = true
		}
		if selected {
			sb.WriteString(accentStyle.Render(key) + " " + selectedStyle.Underline(true).Render(label))
		} else {
			sb.WriteString(metaStyle.Render(key) + " " + dimStyle.Render(label))
		}
		if i < len(a.menu)-1 {
			sb.WriteString("   ")
		}
	}
	return sb.String()
}

func (a App) renderSettings() string {
	var sb strings.Builder
	sb.WriteString("\n " + headerStyle.Render("Settings") + "\n\n")
	sb.WriteString(" " + dimStyle.Render("version") + "   " + normalStyle.Render(a.version) + "\n")
	sb.WriteString(" " + dimStyle.Render("backend") + "   " + normalStyle.Render(a.cfg.APIURL) + "\n")
	sb.WriteString(" " + dimStyle.Render("timeout") + "   " + normalStyle.Render(a.cfg.Timeout.String()) + "\n")
	sb.WriteString(" " + dimStyle.Render("log file") + "  " + normalStyle.Render(a.cfg.LogPath()) + "\n")
	if sess := a.store.Session(); sess != nil {
		sb.WriteString("\n " + dimStyle.Render("signed in as") + " " + normalStyle.Render(sess.Username) + "\n")
	}
	sb.WriteString("\n " + lipgloss.NewStyle().Foreground(lipgloss.Color("#707888")).Render("L logs out and restarts the console.") + "\n")
	return sb.String()
}
