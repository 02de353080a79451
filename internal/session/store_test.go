package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/pkg/domain"
	"github.com/squarelake/paydesk/pkg/logger"
)

type fakeBackend struct {
	me        *domain.Session
	meErr     error
	logoutErr error
	meCalls   int
}

func (f *fakeBackend) Me(_ context.Context) (*domain.Session, error) {
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeBackend) Logout(_ context.Context) error {
	return f.logoutErr
}

func newTestTokens(t *testing.T) *FileTokens {
	t.Helper()
	t.Setenv("PAYDESK_TOKEN", "") // keep the env out of token precedence
	return NewFileTokens(filepath.Join(t.TempDir(), "token"))
}

func TestFileTokens_RoundTrip(t *testing.T) {
	tokens := newTestTokens(t)
	assert.Empty(t, tokens.Token())

	require.NoError(t, tokens.Set("tok-1"))
	assert.Equal(t, "tok-1", tokens.Token())

	require.NoError(t, tokens.Purge())
	assert.Empty(t, tokens.Token())
	require.NoError(t, tokens.Purge(), "purging twice must not error")
}

func TestFileTokens_EnvPrecedence(t *testing.T) {
	tokens := NewFileTokens(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, tokens.Set("from-file"))
	t.Setenv("PAYDESK_TOKEN", "from-env")
	assert.Equal(t, "from-env", tokens.Token())
}

func TestFetchUserInfo_SetsSession(t *testing.T) {
	backend := &fakeBackend{me: &domain.Session{Username: "ops", Role: domain.RoleAdmin}}
	store := New(backend, newTestTokens(t), logger.Discard(), func() {})

	require.NoError(t, store.FetchUserInfo(context.Background()))
	require.NotNil(t, store.Session())
	assert.Equal(t, "ops", store.Session().Username)
}

func TestFetchUserInfo_FailureLeavesSessionNil(t *testing.T) {
	backend := &fakeBackend{meErr: errors.New("boom")}
	store := New(backend, newTestTokens(t), logger.Discard(), func() {})

	err := store.FetchUserInfo(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.Session())
}

func TestDiscard_PurgesTokenAndSessionTogether(t *testing.T) {
	tokens := newTestTokens(t)
	require.NoError(t, tokens.Set("tok"))
	store := New(&fakeBackend{}, tokens, logger.Discard(), func() {})
	store.Set(&domain.Session{Username: "ops"})

	store.Discard()
	assert.Nil(t, store.Session())
	assert.Empty(t, tokens.Token())
}

func TestLogout_AlwaysTearsDownLocally(t *testing.T) {
	tokens := newTestTokens(t)
	require.NoError(t, tokens.Set("tok"))

	reloaded := false
	backend := &fakeBackend{logoutErr: errors.New("server unreachable")}
	store := New(backend, tokens, logger.Discard(), func() { reloaded = true })
	store.Set(&domain.Session{Username: "ops"})

	store.Logout(context.Background())

	assert.Empty(t, tokens.Token(), "token must be purged even when the server call fails")
	assert.Nil(t, store.Session())
	assert.True(t, reloaded, "reload must run after local teardown")
}
