package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarelake/paydesk/pkg/domain"
)

// memTokens is an in-memory TokenStore for tests.
type memTokens struct {
	token  string
	purged bool
}

func (m *memTokens) Token() string { return m.token }

func (m *memTokens) Purge() error {
	m.token = ""
	m.purged = true
	return nil
}

func TestMe_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Session{Username: "ops", Role: domain.RoleAdmin}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "tok-123"})
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "ops", me.Username)
}

func TestSend_NoTokenNoHeader(t *testing.T) {
	var hadHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/api/ping", nil, nil))
	assert.False(t, hadHeader, "no stored token must mean no auth header")
}

func TestSend_CustomHeaderAndPrefix(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Access-Token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "abc"}, WithAuthHeader("X-Access-Token", "Pay"))
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/", nil, nil))
	assert.Equal(t, "Pay abc", got)
}

func TestSend_BadRequestMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "tax number already registered"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	_, err := c.CreateCompany(context.Background(), CompanyRequest{Name: "Acme"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrKindBadRequest, apiErr.Kind)
	assert.Equal(t, "tax number already registered", apiErr.Message)
	assert.Equal(t, "tax number already registered", apiErr.Error())
}

func TestSend_BadRequestWithoutMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	err := c.do(context.Background(), http.MethodGet, "/", nil, nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, msgRequestRejected, apiErr.Message)
}

func TestSend_UnauthorizedPurgesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &memTokens{token: "stale"}
	c := New(srv.URL, tokens)
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindUnauthorized))
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.True(t, tokens.purged, "401 must purge the stored token")
	assert.Empty(t, tokens.token)
}

func TestSend_ForbiddenFixedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "server-side text ignored"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	err := c.do(context.Background(), http.MethodGet, "/", nil, nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrKindForbidden, apiErr.Kind)
	assert.Equal(t, msgAccessDenied, apiErr.Message)
}

func TestSend_ServerErrorGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	err := c.do(context.Background(), http.MethodGet, "/", nil, nil)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrKindServer, apiErr.Kind)
	assert.Equal(t, msgServerError, apiErr.Message)
}

func TestSend_EmptyBodyResolvesZeroValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	var out domain.DashboardStats
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/", nil, &out))
	assert.Zero(t, out)
}

func TestSend_NonJSONContentTypeResolvesZeroValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "ok") //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	var out domain.DashboardStats
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/", nil, &out))
	assert.Zero(t, out)
}

func TestSend_UnparsableJSONSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "{not json") //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	var out domain.DashboardStats
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/", nil, &out))
	assert.Zero(t, out)
}

func TestSend_TimeoutClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{}, WithTimeout(20*time.Millisecond))
	err := c.do(context.Background(), http.MethodGet, "/", nil, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindTimeout))
}

func TestSend_NetworkErrorClassified(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	c := New(srv.URL, &memTokens{})
	err := c.do(context.Background(), http.MethodGet, "/", nil, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrKindNetwork))
}

func TestListCompanies_PageParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("current"))
		assert.Equal(t, "20", r.URL.Query().Get("size"))
		assert.Equal(t, "acme", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Page[domain.Company]{ //nolint:errcheck
			Records: []domain.Company{{Name: "Acme"}},
			Total:   21, Pages: 2, Size: 20, Current: 2,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	page, err := c.ListCompanies(context.Background(), "acme", 2, 20)
	require.NoError(t, err)
	assert.Len(t, page.Records, 1)
	assert.True(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestLogin_ReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ops", req.Username)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": "fresh"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{})
	tok, err := c.Login(context.Background(), "ops", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestUpload_MultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		form, err := mr.ReadForm(1 << 20)
		require.NoError(t, err)
		assert.Equal(t, "2026-07", form.Value["period"][0])
		require.Len(t, form.File["file"], 1)
		assert.Equal(t, "tax.xlsx", form.File["file"][0].Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.ImportBatch{Filename: "tax.xlsx", Rows: 3}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, &memTokens{token: "tok"})
	batch, err := c.UploadTaxReport(context.Background(), "2026-07", "tax.xlsx", bytes.NewReader([]byte("fake-workbook")))
	require.NoError(t, err)
	assert.Equal(t, 3, batch.Rows)
}
