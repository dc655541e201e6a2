package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/electrofy/storefront-client/pkg/config"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/logger"
	"github.com/electrofy/storefront-client/pkg/metrics"
	"github.com/google/uuid"
)

const errorBodyReadLimit int64 = 1024

// TokenProvider supplies the bearer token attached to authenticated calls.
// Token storage and refresh mechanics live outside this client; a nil
// provider or an empty token means the session is a guest session.
type TokenProvider interface {
	AccessToken() string
}

// Client talks to the remote commerce API. Every response arrives in an
// envelope of {success, data?, error?, message?}; the client normalizes
// transport failures and server-reported failures into a single rejected
// operation carrying a human-readable message.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	sessionHeader string
	sessionID     string
	tokens        TokenProvider
	logger        *logger.Logger
	metrics       *metrics.GatewayMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSessionID pins the guest session identifier instead of generating one.
func WithSessionID(sessionID string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(sessionID)
		if trimmed != "" {
			c.sessionID = trimmed
		}
	}
}

// WithTokenProvider attaches the access-token source for authenticated calls.
func WithTokenProvider(tokens TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithMetrics wires request metrics for every operation.
func WithMetrics(m *metrics.GatewayMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the commerce API client from configuration.
func NewClient(cfg config.GatewayConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("gateway base url is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("gateway logger is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		httpClient:    &http.Client{Timeout: timeout},
		baseURL:       baseURL,
		sessionHeader: cfg.SessionHeader,
		sessionID:     NewSessionID(),
		logger:        logg,
	}
	if client.sessionHeader == "" {
		client.sessionHeader = "X-Session-Id"
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// NewSessionID produces a fresh guest session identifier.
func NewSessionID() string {
	return fmt.Sprintf("session_%s", uuid.NewString())
}

// SessionID returns the guest session identifier sent with every request.
func (c *Client) SessionID() string {
	if c == nil {
		return ""
	}
	return c.sessionID
}

// Authenticated reports whether an access token is currently available.
func (c *Client) Authenticated() bool {
	return c != nil && c.tokens != nil && strings.TrimSpace(c.tokens.AccessToken()) != ""
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *Pagination     `json:"pagination"`
}

// Pagination mirrors the envelope-level paging block.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func (e *envelope) failureMessage(fallback string) string {
	if msg := strings.TrimSpace(e.Error); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return fallback
}

// do executes one gateway call and decodes the envelope data into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) (*envelope, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway client not configured")
	}

	start := time.Now()
	env, err := c.execute(ctx, op, method, path, query, body, out)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(op, string(pkgerrors.As(err).Code()))
		c.log(ctx, "error", op, map[string]any{"error": err.Error()})
		return nil, err
	}
	c.metrics.IncSuccess(op)
	return env, nil
}

func (c *Client) execute(ctx context.Context, op, method, path string, query url.Values, body any, out any) (*envelope, error) {
	reqURL := c.buildURL(path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("marshal %s request", op))
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("build %s request", op))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(c.sessionHeader, c.sessionID)
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log(ctx, "request", op, map[string]any{"method": method, "path": path})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTransport, err, fmt.Sprintf("execute %s request", op))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp, op)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeGateway, err, fmt.Sprintf("decode %s response", op))
	}

	if !env.Success {
		return nil, pkgerrors.New(pkgerrors.CodeGateway, env.failureMessage(fmt.Sprintf("%s failed", op)))
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeGateway, err, fmt.Sprintf("decode %s data", op))
		}
	}
	return &env, nil
}

func (c *Client) statusError(resp *http.Response, op string) error {
	code := codeForStatus(resp.StatusCode)

	// The server often wraps errors in the same envelope; pull the message
	// out when it does.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if msg := env.failureMessage(""); msg != "" {
			return pkgerrors.New(code, msg)
		}
	}
	return pkgerrors.New(code, fmt.Sprintf("%s failed with status %d", op, resp.StatusCode))
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	default:
		if status >= 500 {
			return pkgerrors.CodeTransport
		}
		return pkgerrors.CodeGateway
	}
}

func (c *Client) buildURL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) log(ctx context.Context, phase, op string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": op,
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Warn(ctx, fmt.Sprintf("gateway %s failed", op))
	default:
		c.logger.Info(ctx, fmt.Sprintf("gateway %s", phase))
	}
}
