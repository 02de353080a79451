package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// TokenStore supplies the bearer token attached to requests and is told to
// purge it when the backend answers 401.
type TokenStore interface {
	Token() string
	Purge() error
}

// Client is the Paydesk API client. It is the single point where HTTP
// failures are classified; it never renders anything itself.
type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
	log        *slog.Logger
	authHeader string
	authPrefix string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithAuthHeader overrides the header name and scheme prefix used for the
// bearer token.
func WithAuthHeader(name, prefix string) Option {
	return func(c *Client) {
		c.authHeader = name
		c.authPrefix = prefix
	}
}

// WithLogger sets the logger used for swallowed decode failures and purge
// errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a new API client.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		log:        slog.Default(),
		authHeader: "Authorization",
		authPrefix: "Bearer",
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do sends a JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send attaches the token, executes the request, and classifies the outcome.
func (c *Client) send(req *http.Request, out any) error {
	if tok := c.tokens.Token(); tok != "" {
		value := tok
		if c.authPrefix != "" {
			value = c.authPrefix + " " + tok
		}
		req.Header.Set(c.authHeader, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Kind: ErrKindTimeout, Message: msgTimeout}
		}
		return &Error{Kind: ErrKindNetwork, Message: msgNetworkError}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return c.classify(resp)
	}

	if out == nil {
		return nil
	}

	// Leniency contract: an empty body, a non-JSON content-type, or an
	// unparsable 2xx body all resolve to the zero value. The swallow is
	// logged so it stays visible to operators.
	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20)) // 8 MB max body
	if err != nil {
		c.log.Warn("response body read failed", "path", req.URL.Path, "err", err)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 || !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn("response decode failed", "path", req.URL.Path, "err", err)
	}
	return nil
}

// classify maps a non-2xx response to an api.Error per the error taxonomy.
// 401 additionally purges the stored token; the session becomes
// unauthenticated on the next auth check.
func (c *Client) classify(resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) //nolint:errcheck // body is advisory here

	serverMsg := ""
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &payload) == nil {
		serverMsg = payload.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.tokens.Purge(); err != nil {
			c.log.Warn("token purge failed", "err", err)
		}
		return &Error{Kind: ErrKindUnauthorized, StatusCode: resp.StatusCode, Message: msgNotAuthed}
	case resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: ErrKindForbidden, StatusCode: resp.StatusCode, Message: msgAccessDenied}
	case resp.StatusCode >= 500:
		return &Error{Kind: ErrKindServer, StatusCode: resp.StatusCode, Message: msgServerError}
	default:
		// 400 and the remaining 4xx: surface the server's message verbatim.
		msg := serverMsg
		if msg == "" {
			msg = msgRequestRejected
		}
		return &Error{Kind: ErrKindBadRequest, StatusCode: resp.StatusCode, Message: msg}
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
