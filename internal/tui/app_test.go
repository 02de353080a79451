package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/internal/config"
	"github.com/squarelake/paydesk/internal/nav"
	"github.com/squarelake/paydesk/internal/session"
	"github.com/squarelake/paydesk/pkg/api"
	"github.com/squarelake/paydesk/pkg/domain"
	"github.com/squarelake/paydesk/pkg/logger"
)

type stubBackend struct {
	session *domain.Session
	err     error
	meCalls int
}

func (b *stubBackend) Me(_ context.Context) (*domain.Session, error) {
	b.meCalls++
	return b.session, b.err
}

func (b *stubBackend) Logout(_ context.Context) error { return nil }

type fixture struct {
	app     App
	store   *session.Store
	tokens  *session.FileTokens
	backend *stubBackend
}

func newFixture(t *testing.T, token string) *fixture {
	t.Helper()
	t.Setenv("PAYDESK_TOKEN", "")

	tokens := session.NewFileTokens(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		require.NoError(t, tokens.Set(token))
	}
	backend := &stubBackend{}
	store := session.New(backend, tokens, logger.Discard(), func() {})
	client := api.New("http://backend.invalid", tokens, api.WithLogger(logger.Discard()))
	app := NewApp(client, store, config.Config{APIURL: "http://backend.invalid"}, "test", "/")
	return &fixture{app: app, store: store, tokens: tokens, backend: backend}
}

func (f *fixture) signIn(t *testing.T, sess *domain.Session) {
	t.Helper()
	f.store.Set(sess)
	model, _ := f.app.Update(sessionCheckedMsg{})
	f.app = model.(App)
	require.Equal(t, stateShell, f.app.state)
}

func adminSession(franchise bool) *domain.Session {
	return &domain.Session{
		Username:    "ops",
		DisplayName: "Ops Admin",
		Role:        domain.RoleAdmin,
		Franchise:   franchise,
	}
}

func TestNewApp_NoTokenSkipsSessionFetch(t *testing.T) {
	f := newFixture(t, "")

	assert.Equal(t, stateLogin, f.app.state)
	f.app.Init()
	assert.Zero(t, f.backend.meCalls, "login must appear without touching the session endpoint")
}

func TestNewApp_TokenStartsChecking(t *testing.T) {
	f := newFixture(t, "tok-123")
	assert.Equal(t, stateChecking, f.app.state)
}

func TestSessionCheckFailure_PurgesTokenAndShowsLogin(t *testing.T) {
	f := newFixture(t, "tok-stale")

	model, _ := f.app.Update(sessionCheckedMsg{err: errors.New("expired")})
	app := model.(App)

	assert.Equal(t, stateLogin, app.state)
	assert.False(t, f.store.HasToken(), "stale token must not survive a failed check")
	assert.Nil(t, f.store.Session())
}

func TestSessionCheckSuccess_EntersShell(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	assert.Equal(t, "/", f.app.location)
	assert.Equal(t, nav.TabDashboard, f.app.activeTab())
	assert.NotEmpty(t, f.app.menu)
}

func TestMenu_AdminSeesStaffManagementNotRateConfig(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	tabs := map[nav.Tab]bool{}
	for _, e := range f.app.menu {
		tabs[e.Tab] = true
	}
	assert.True(t, tabs[nav.TabServiceUsers], "admins manage customer-service staff")
	assert.False(t, tabs[nav.TabInsurance], "rate config belongs to customer service")
	assert.False(t, tabs[nav.TabCompanies], "company management needs the franchise flag")

	f2 := newFixture(t, "tok-ok")
	f2.signIn(t, adminSession(true))
	found := false
	for _, e := range f2.app.menu {
		if e.Tab == nav.TabCompanies {
			found = true
		}
	}
	assert.True(t, found, "franchise admins manage companies")
}

func TestNumberKey_NavigatesAndSyncsLocation(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	// find the tickets entry and press its number key
	idx := -1
	for i, e := range f.app.menu {
		if e.Tab == nav.TabTickets {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	key := rune('1' + idx)
	model, _ := f.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{key}})
	app := model.(App)

	assert.Equal(t, "/customer-service", app.location)
	assert.Equal(t, nav.TabTickets, app.activeTab())
}

func TestNumberKey_SettingsOpensOverlayWithoutRouting(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	idx := -1
	for i, e := range f.app.menu {
		if e.Tab == nav.TabSettings {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	before := f.app.location
	model, _ := f.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + idx)}})
	app := model.(App)

	assert.True(t, app.settingsOpen)
	assert.Equal(t, before, app.location, "placeholder tab must not move the location")

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, model.(App).settingsOpen)
}

func TestNavigateAfterTokenPurge_DropsToLogin(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	// a 401 in some earlier request purged the token behind our back
	require.NoError(t, f.tokens.Purge())

	model, _ := f.app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	app := model.(App)

	assert.Equal(t, stateLogin, app.state)
	assert.Nil(t, f.store.Session())
}

func TestLoginSuccessMessage_EntersShell(t *testing.T) {
	f := newFixture(t, "")
	require.Equal(t, stateLogin, f.app.state)

	f.store.Set(adminSession(false))
	model, _ := f.app.Update(loggedInMsg{})
	app := model.(App)

	assert.Equal(t, stateShell, app.state)
	assert.NotEmpty(t, app.menu)
}

func TestLoginFailureMessage_StaysOnLogin(t *testing.T) {
	f := newFixture(t, "")

	apiErr := &api.Error{Kind: api.ErrKindBadRequest, StatusCode: 400, Message: "invalid credentials"}
	model, _ := f.app.Update(loggedInMsg{err: apiErr})
	app := model.(App)

	assert.Equal(t, stateLogin, app.state)
	assert.Equal(t, "invalid credentials", app.login.errMsg, "400 messages surface verbatim")
}

func TestLogoutDone_QuitsProgram(t *testing.T) {
	f := newFixture(t, "tok-ok")
	f.signIn(t, adminSession(false))

	_, cmd := f.app.Update(logoutDoneMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
