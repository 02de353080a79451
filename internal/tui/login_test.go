package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/pkg/api"
)

func TestLogin_EnterOnUsernameMovesToPassword(t *testing.T) {
	m := newLoginModel(nil, nil)
	require.Zero(t, m.focus)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.focus)
}

func TestLogin_SubmitRequiresBothFields(t *testing.T) {
	m := newLoginModel(nil, nil)
	m.focus = 1

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "username and password are required", m.errMsg)
	assert.False(t, m.busy)
}

func TestLogin_FailureShowsMessageAndClearsPassword(t *testing.T) {
	m := newLoginModel(nil, nil)
	m.busy = true
	m.password.SetValue("hunter2")

	apiErr := &api.Error{Kind: api.ErrKindBadRequest, StatusCode: 400, Message: "invalid credentials"}
	m, _ = m.Update(loggedInMsg{err: apiErr})

	assert.False(t, m.busy)
	assert.Equal(t, "invalid credentials", m.errMsg)
	assert.Empty(t, m.password.Value())
}

func TestLogin_ForbiddenShowsFixedText(t *testing.T) {
	m := newLoginModel(nil, nil)

	apiErr := &api.Error{Kind: api.ErrKindForbidden, StatusCode: 403, Message: "access denied"}
	m, _ = m.Update(loggedInMsg{err: apiErr})
	assert.Equal(t, "access denied", m.errMsg)
}

func TestLogin_KeysIgnoredWhileBusy(t *testing.T) {
	m := newLoginModel(nil, nil)
	m.busy = true
	m.username.SetValue("ops")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.Equal(t, "ops", m.username.Value())
}

func TestLogin_TabSwitchesFocus(t *testing.T) {
	m := newLoginModel(nil, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Zero(t, m.focus)
}
