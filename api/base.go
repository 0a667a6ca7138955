package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// connConfig is one immutable snapshot of where and how requests are sent.
// It is replaced as a whole, never modified.
type connConfig struct {
	baseURL string
	nethash string
	version string
	port    int
}

// Client handles API calls to an Ark node
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	tickerURL  string
	signer     Signer
	network    Broadcaster

	mu   sync.Mutex // serialises writers of conf
	conf atomic.Value
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. A nil client keeps the
// default. The client is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the global per-request timeout, applied on top of the
// caller's context. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTickerURL points GetTicker at another price endpoint.
func WithTickerURL(tickerURL string) Option {
	return func(c *Client) {
		c.tickerURL = tickerURL
	}
}

// WithSigner sets the component used to build signed transactions.
func WithSigner(s Signer) Option {
	return func(c *Client) {
		c.signer = s
	}
}

// WithNetwork sets the component used to pick a peer and broadcast.
func WithNetwork(n Broadcaster) Option {
	return func(c *Client) {
		c.network = n
	}
}

// NewClient creates a new API client for the node at baseURL, e.g.
// "https://node1.arknet.cloud/api/".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
		tickerURL:  TickerURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}
	c.conf.Store(connConfig{baseURL: baseURL})

	return c, nil
}

// NewClientFromHost creates a client for http(s)://host:port/api/.
func NewClientFromHost(host string, port int, useTLS bool, opts ...Option) (*Client, error) {
	return NewClient(hostURL(host, port, useTLS), opts...)
}

func hostURL(host string, port int, useTLS bool) string {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/", scheme, net.JoinHostPort(host, strconv.Itoa(port)))
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	return nil
}

func (c *Client) snapshot() connConfig {
	return c.conf.Load().(connConfig)
}

// update publishes a new snapshot derived from the current one.
func (c *Client) update(fn func(connConfig) connConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conf.Store(fn(c.snapshot()))
}

// UpdateBaseURL replaces the base URL verbatim. Protocol headers are kept.
func (c *Client) UpdateBaseURL(baseURL string) error {
	if err := validateBaseURL(baseURL); err != nil {
		return err
	}

	c.update(func(cfg connConfig) connConfig {
		cfg.baseURL = baseURL
		return cfg
	})
	return nil
}

// UpdateURL points the client at http(s)://host:port/api/. Protocol headers
// are kept.
func (c *Client) UpdateURL(host string, port int, useTLS bool) {
	baseURL := hostURL(host, port, useTLS)
	c.update(func(cfg connConfig) connConfig {
		cfg.baseURL = baseURL
		return cfg
	})
}

// UpdateHeader replaces the nethash, version and port sent with every node
// request.
func (c *Client) UpdateHeader(nethash, version string, port int) {
	c.update(func(cfg connConfig) connConfig {
		cfg.nethash = nethash
		cfg.version = version
		cfg.port = port
		return cfg
	})
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.snapshot().baseURL
}

// Nethash returns the configured nethash, empty if unset.
func (c *Client) Nethash() string {
	return c.snapshot().nethash
}

// Version returns the configured node version, empty if unset.
func (c *Client) Version() string {
	return c.snapshot().version
}

// Port returns the configured node port, 0 if unset.
func (c *Client) Port() int {
	return c.snapshot().port
}

// Headers returns the protocol headers for the current configuration.
func (c *Client) Headers() http.Header {
	return c.snapshot().headers()
}

func (cfg connConfig) headers() http.Header {
	h := make(http.Header)
	if cfg.nethash != "" {
		h.Set(HeaderNethash, cfg.nethash)
	}
	if cfg.version != "" {
		h.Set(HeaderVersion, cfg.version)
	}
	if cfg.port != 0 {
		h.Set(HeaderPort, strconv.Itoa(cfg.port))
	}
	return h
}

// endpoint joins path and query onto the snapshot's base URL.
func (cfg connConfig) endpoint(path string, query url.Values) string {
	base := cfg.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// fetch performs one GET and returns the body and status code. Only failures
// to get a response at all are returned as errors.
func (c *Client) fetch(ctx context.Context, endpoint string, header http.Header) ([]byte, int, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, &TransportError{URL: endpoint, Err: err}
	}
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("url", endpoint), zap.Error(err))
		return nil, 0, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("request done",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return body, resp.StatusCode, nil
}

// getEnvelope sends one GET to the node and decodes the payload under field.
// The connection config is captured once, before the request is built.
func getEnvelope[T any](ctx context.Context, c *Client, path string, query url.Values, field string) (*T, error) {
	cfg := c.snapshot()
	endpoint := cfg.endpoint(path, query)

	body, status, err := c.fetch(ctx, endpoint, cfg.headers())
	if err != nil {
		return nil, err
	}

	env, err := DecodeEnvelope[T](body, field)
	if err != nil {
		if status < 200 || status > 299 {
			return nil, &TransportError{URL: endpoint, StatusCode: status, Err: err}
		}
		c.logger.Debug("treating undecodable response as absent", zap.String("url", endpoint), zap.Error(err))
		return nil, nil
	}

	return env.Payload, nil
}

// first returns the first element of a decoded collection, nil when absent.
func first[T any](items *[]T, err error) (*T, error) {
	if err != nil || items == nil || len(*items) == 0 {
		return nil, err
	}
	item := (*items)[0]
	return &item, nil
}

// list dereferences a decoded collection.
func list[T any](items *[]T, err error) ([]T, error) {
	if err != nil || items == nil {
		return nil, err
	}
	return *items, nil
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
