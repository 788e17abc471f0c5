package containers

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Source retrieves container records. *Client implements it; tests and the
// view layer depend on the interface.
type Source interface {
	FetchAll(ctx context.Context) ([]Record, error)
	FetchByID(ctx context.Context, id int64) (Record, error)
}

// PayloadCache stores raw API payloads. A miss is (nil, false, nil).
type PayloadCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to the container HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	location  *time.Location
	cache     PayloadCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

const (
	defaultAPIURL    = "http://127.0.0.1:8080"
	defaultUserAgent = "quayside/0.1"
	defaultTimeout   = 10 * time.Second
	cacheNamespace   = "quayside/container"
	requestIDHeader  = "X-Request-ID"
)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLocation sets the location departure timestamps are normalized into.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithCache enables a read-through payload cache.
func WithCache(cache PayloadCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		location:  time.Local,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location returns the location departures are normalized into.
func (c *Client) Location() *time.Location {
	return c.location
}

type freshKey struct{}

// WithFresh marks ctx so the client skips the cache lookup and goes to the
// API. A successful response still replaces the cached payload.
func WithFresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

func isFresh(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshKey{}).(bool)
	return fresh
}

// FetchAll retrieves the full record set in API order.
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return fetchDecoded(ctx, c, c.baseURL.JoinPath("container"), DecodeRecords)
}

// FetchByID retrieves a single record by its rowidunh.
func (c *Client) FetchByID(ctx context.Context, id int64) (Record, error) {
	if c == nil {
		return Record{}, fmt.Errorf("client is nil")
	}
	return fetchDecoded(ctx, c, c.baseURL.JoinPath("container", strconv.FormatInt(id, 10)), DecodeRecord)
}

// fetchDecoded serves reqURL from the cache when possible and otherwise from
// the API. Only payloads that decode are written to the cache, and a cached
// payload that no longer decodes is refetched.
func fetchDecoded[T any](ctx context.Context, c *Client, reqURL *url.URL, decode func([]byte, *time.Location) (T, error)) (T, error) {
	target := reqURL.String()
	key := cacheKey(target)

	if cached, ok := c.cached(ctx, key, target); ok {
		value, err := decode(cached, c.location)
		if err == nil {
			return value, nil
		}
		c.logger.Warn("cached payload rejected", zap.String("url", target), zap.Error(err))
	}

	var zero T
	body, err := c.get(ctx, target)
	if err != nil {
		return zero, err
	}
	value, err := decode(body, c.location)
	if err != nil {
		return zero, err
	}
	c.store(ctx, key, target, body)
	return value, nil
}

func (c *Client) cached(ctx context.Context, key, target string) ([]byte, bool) {
	if c.cache == nil || isFresh(ctx) {
		return nil, false
	}
	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed", zap.String("url", target), zap.Error(err))
		return nil, false
	}
	if ok {
		c.logger.Debug("cache hit", zap.String("url", target))
	}
	return cached, ok
}

func (c *Client) store(ctx context.Context, key, target string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("cache store failed", zap.String("url", target), zap.Error(err))
	}
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("url", target),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &NetworkError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Info("request",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", requestID))

	if resp.StatusCode >= 400 {
		return nil, &NetworkError{URL: target, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// cacheKey derives a stable key for a request URL.
func cacheKey(target string) string {
	hash := md5.Sum([]byte(cacheNamespace))
	namespace := uuid.Must(uuid.FromBytes(hash[:]))
	return uuid.NewMD5(namespace, []byte(target)).String()
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
