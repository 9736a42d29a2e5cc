// Package gateway is the HTTP client for the portfolio backend.
//
// Every resource gets fetch-all, create, update-by-id and delete-by-id
// operations. List responses arrive in a paginated envelope which is
// unwrapped here; callers only ever see model types or an *Error.
//
// Mutating calls send the stored token verbatim in the Authorization
// header. A missing token is not an error at this layer: the backend
// answers 401 and that surfaces as a ServerRejection.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"termfolio.dev/internal/observability"
)

// Resource paths on the backend
const (
	pathOwner       = "/owner"
	pathLogin       = "/owner/login"
	pathExperience  = "/experience"
	pathProject     = "/project"
	pathTechnology  = "/technos"
	defaultTimeout  = 30 * time.Second
	maxErrorBodyLen = 64 << 10
)

// TokenSource supplies the bearer token for mutating calls
type TokenSource interface {
	Get(ctx context.Context) (string, bool, error)
}

// Client talks to the backend REST API.
//
// Client instances are safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration // set by WithTimeout
	tokens     TokenSource
	cache      *cache.Cache
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client; nil is ignored. The
// client is copied when a timeout is also set, so hc itself never changes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout; zero disables it
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithCache enables the GET response cache; zero ttl leaves it off
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.cache = cache.New(ttl, 2*ttl)
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL (no trailing slash).
// tokens may be nil for read-only use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch {
	case c.httpClient == nil:
		timeout := defaultTimeout
		if c.timeout != nil {
			timeout = *c.timeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	case c.timeout != nil:
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c
}

// call describes one backend request
type call struct {
	op       string // human readable, used in errors
	resource string // metrics label
	method   string
	path     string
	body     any
	auth     bool
	fallback string // message used when a rejection carries none
}

// send performs the request and returns the response body of a 2xx answer
func (c *Client) send(ctx context.Context, cl call) (data []byte, err error) {
	done := observability.TrackGateway(cl.resource, cl.method)
	defer func() { done(err) }()

	var bodyReader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &Error{Kind: ValidationFailure, Op: cl.op, Message: "invalid request body", Err: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, bodyReader)
	if err != nil {
		return nil, &Error{Kind: ValidationFailure, Op: cl.op, Message: "invalid request", Err: err}
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if cl.auth {
		c.authorize(ctx, req)
	}

	c.logger.DebugContext(ctx, "backend request", slog.String("method", cl.method), slog.String("path", cl.path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Op: cl.op, Message: "network error", Err: err}
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: NetworkFailure, Op: cl.op, Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejection(cl, resp.StatusCode, data)
	}
	return data, nil
}

// authorize attaches the stored token, if any
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, ok, err := c.tokens.Get(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to read auth token", slog.String("error", err.Error()))
		return
	}
	if ok {
		req.Header.Set("Authorization", token)
	}
}

// rejection builds the error for a non-2xx response
func rejection(cl call, status int, data []byte) *Error {
	if len(data) > maxErrorBodyLen {
		data = data[:maxErrorBodyLen]
	}
	msg := cl.fallback
	if msg == "" {
		msg = fmt.Sprintf("Failed to %s: %s", cl.op, http.StatusText(status))
	}
	var body errorBody
	if json.Unmarshal(data, &body) == nil && body.text() != "" {
		msg = body.text()
	}
	return &Error{Kind: ServerRejection, Op: cl.op, Status: status, Message: msg}
}

// get performs a GET, serving from the cache when enabled
func (c *Client) get(ctx context.Context, cl call) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(cl.path); ok {
			observability.GatewayCacheHits.WithLabelValues(cl.resource).Inc()
			return data.([]byte), nil
		}
	}

	data, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(cl.path, data, cache.DefaultExpiration)
	}
	return data, nil
}

// evict drops the cached list for a resource after a mutation
func (c *Client) evict(path string) {
	if c.cache != nil {
		c.cache.Delete(path)
	}
}

// fetchList GETs a paginated list and unwraps its envelope
func fetchList[T any](ctx context.Context, c *Client, op, resource, path string) ([]T, error) {
	data, err := c.get(ctx, call{op: op, resource: resource, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}

	var env ListEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &Error{Kind: ServerRejection, Op: op, Message: "malformed response", Err: err}
	}
	if !env.Success || env.Error != nil {
		msg := "Failed to " + op
		if env.Error != nil && *env.Error != "" {
			msg = *env.Error
		} else if env.Message != "" {
			msg = env.Message
		}
		return nil, &Error{Kind: ServerRejection, Op: op, Message: msg}
	}
	return env.Result.Result, nil
}

// create POSTs body and returns the server-assigned entity
func create[T any](ctx context.Context, c *Client, op, resource, path string, body any) (*T, error) {
	data, err := c.send(ctx, call{op: op, resource: resource, method: http.MethodPost, path: path, body: body, auth: true})
	if err != nil {
		return nil, err
	}
	c.evict(path)

	var env ItemEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &Error{Kind: ServerRejection, Op: op, Message: "malformed response", Err: err}
	}
	if env.Result == nil {
		return nil, &Error{Kind: ServerRejection, Op: op, Message: "no " + resource + " returned by server"}
	}
	return env.Result, nil
}

// update PATCHes body at path/id
func (c *Client) update(ctx context.Context, op, resource, path, id string, body any) error {
	if id == "" {
		return validationError(op, resource+" id is required")
	}
	_, err := c.send(ctx, call{op: op, resource: resource, method: http.MethodPatch, path: path + "/" + id, body: body, auth: true})
	if err != nil {
		return err
	}
	c.evict(path)
	return nil
}

// remove DELETEs path/id
func (c *Client) remove(ctx context.Context, op, resource, path, id string) error {
	if id == "" {
		return validationError(op, resource+" id is required")
	}
	_, err := c.send(ctx, call{op: op, resource: resource, method: http.MethodDelete, path: path + "/" + id, auth: true})
	if err != nil {
		return err
	}
	c.evict(path)
	return nil
}
