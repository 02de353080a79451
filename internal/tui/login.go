package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/squarelake/paydesk/internal/session"
	"github.com/squarelake/paydesk/pkg/api"
)

// loginModel is the credential form shown while unauthenticated.
type loginModel struct {
	client *api.Client
	store  *session.Store

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string

	width int
}

func newLoginModel(c *api.Client, store *session.Store) loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "  "
	user.PromptStyle = inputPromptStyle
	user.PlaceholderStyle = inputPlaceholderStyle
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "  "
	pass.PromptStyle = inputPromptStyle
	pass.PlaceholderStyle = inputPlaceholderStyle
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginModel{
		client:   c,
		store:    store,
		username: user,
		password: pass,
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

// submit logs in, persists the token, then fetches the session. The shell
// only appears once both the token and the session are in place.
func (m loginModel) submit() tea.Cmd {
	client := m.client
	store := m.store
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	return func() tea.Msg {
		ctx := context.Background()
		token, err := client.Login(ctx, username, password)
		if err != nil {
			return loggedInMsg{err: err}
		}
		if err := store.Tokens().Set(token); err != nil {
			return loggedInMsg{err: err}
		}
		return loggedInMsg{err: store.FetchUserInfo(ctx)}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loggedInMsg:
		// Success transitions in the root model; only failures land here.
		m.busy = false
		m.errMsg = errText(msg.err)
		m.password.SetValue("")
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.username.Blur()
				return m, m.password.Focus()
			}
			if strings.TrimSpace(m.username.Value()) == "" || m.password.Value() == "" {
				m.errMsg = "username and password are required"
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n  " + logoStyle.Render("PAYDESK") + " " + dimStyle.Render("back office console") + "\n\n")
	sb.WriteString(m.username.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")
	switch {
	case m.busy:
		sb.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		sb.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	default:
		sb.WriteString("  " + metaStyle.Render("enter to sign in · ctrl+c to quit") + "\n")
	}
	return sb.String()
}
