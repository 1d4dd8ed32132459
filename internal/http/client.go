package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/faas-client/internal/constants"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an HTTP request.
//
// Only one of Body, RawBody and BodyFunc should be set. Body is JSON encoded.
// BodyFunc is called once per attempt so the payload can be sent again when a
// redirect is followed.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	RawQuery string
	Headers  map[string]string
	Body     interface{}
	RawBody  []byte
	BodyFunc func() (io.Reader, error)
}

// Response represents an HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// URL is the URL that produced this response, after redirects.
	URL string
}

// Client wraps a retryablehttp client with explicit redirect handling.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	maxRedirects int
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request logging.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithMaxRedirects bounds the number of redirect follow-ups per request.
// A negative value disables following.
func WithMaxRedirects(maxRedirects int) Option {
	return func(c *Client) {
		c.maxRedirects = maxRedirects
	}
}

// WithHTTPClient uses a copy of httpClient for transport. Its redirect policy
// is replaced so that redirects reach this client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient == nil {
			return
		}

		clone := *httpClient
		clone.CheckRedirect = stopRedirects
		c.httpClient.HTTPClient = &clone
	}
}

// NewClient creates a new HTTP client for baseURL.
//
// Retries are disabled and no timeout is set; callers cancel through the
// request context.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = 0
	retryClient.HTTPClient.CheckRedirect = stopRedirects

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		maxRedirects: faas.DefaultMaxRedirects,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request, following 301/302/307 redirects up to the configured
// bound with the same method, headers and payload. Non-2xx statuses are not
// errors; the response is returned as is.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.buildURL(req)
	requestID := uuid.NewString()

	payload, err := c.payload(req)
	if err != nil {
		return nil, err
	}

	for hop := 0; ; hop++ {
		resp, err := c.send(ctx, req, target, payload, requestID)
		if err != nil {
			return nil, err
		}

		if !isRedirect(resp.StatusCode) || c.maxRedirects < 0 {
			return resp, nil
		}

		if hop >= c.maxRedirects {
			return resp, fmt.Errorf("%s %s: %w (limit %d)", req.Method, target, faas.ErrTooManyRedirects, c.maxRedirects)
		}

		location := resp.Headers.Get(constants.HeaderLocation)
		if location == "" {
			return resp, fmt.Errorf("%s %s: %w", req.Method, target, faas.ErrMissingLocation)
		}

		next, err := resolveLocation(target, location)
		if err != nil {
			return resp, err
		}

		if c.logger != nil {
			c.logger.Info("Following redirect", map[string]interface{}{
				"request_id":  requestID,
				"method":      req.Method,
				"status_code": resp.StatusCode,
				"from":        target,
				"to":          next,
			})
		}

		target = next
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query, Headers: headers})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body, Headers: headers})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body, Headers: headers})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body, Headers: headers})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Headers: headers})
}

// payload converts the request body into a form retryablehttp can replay.
func (c *Client) payload(req *Request) (interface{}, error) {
	switch {
	case req.BodyFunc != nil:
		return retryablehttp.ReaderFunc(req.BodyFunc), nil
	case req.RawBody != nil:
		return req.RawBody, nil
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return encoded, nil
	default:
		return nil, nil
	}
}

func (c *Client) send(ctx context.Context, req *Request, target string, payload interface{}, requestID string) (*Response, error) {
	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if req.Body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.userAgent != "" && httpReq.Header.Get(constants.HeaderUserAgent) == "" {
		httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	}

	httpReq.Header.Set(constants.HeaderRequestID, requestID)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        target,
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, target, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id":  requestID,
			"method":      req.Method,
			"url":         target,
			"status_code": httpResp.StatusCode,
			"duration":    time.Since(start).String(),
			"bytes":       len(body),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		URL:        target,
	}, nil
}

func (c *Client) buildURL(req *Request) string {
	path := req.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	fullURL := c.baseURL + path

	switch {
	case len(req.Query) > 0:
		fullURL += "?" + req.Query.Encode()
	case req.RawQuery != "":
		fullURL += "?" + strings.TrimPrefix(req.RawQuery, "?")
	}

	return fullURL
}

func isRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect:
		return true
	default:
		return false
	}
}

func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parsing redirect location %q: %w", location, err)
	}

	return base.ResolveReference(ref).String(), nil
}

func stopRedirects(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func neverRetry(context.Context, *http.Response, error) (bool, error) {
	return false, nil
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFrom(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFrom(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFrom(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFrom(keysAndValues))
}

func fieldsFrom(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)
