package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const headerRequestID = "X-Request-ID"

// TokenSource returns the current access token, or "" for anonymous calls.
type TokenSource func(ctx context.Context) string

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int

	Tokens     TokenSource
	RequestIDs RequestIDGenerator
	Logger     *slog.Logger
	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// Client issues requests against the API root.
type Client struct {
	rc      *resty.Client
	limiter *rate.Limiter
	tokens  TokenSource
	ids     RequestIDGenerator
	logger  *slog.Logger
}

// New builds a Client. BaseURL is the API root, e.g.
// "http://localhost:8000/api/v1"; paths passed to the request methods are
// appended to it.
func New(opts Options) *Client {
	rc := resty.New()
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	}
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	rc.SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	c := &Client{
		rc:     rc,
		tokens: opts.Tokens,
		ids:    opts.RequestIDs,
		logger: opts.Logger,
	}
	if c.ids == nil {
		c.ids = UUIDv7Generator{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	rc.OnBeforeRequest(c.beforeRequest)
	rc.OnAfterResponse(c.afterResponse)
	return c
}

func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(r.Context()); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	if r.Header.Get(headerRequestID) == "" {
		r.SetHeader(headerRequestID, c.ids.Generate())
	}
	if c.tokens != nil {
		if tok := c.tokens(r.Context()); tok != "" {
			r.SetAuthToken(tok)
		}
	}
	c.logger.Debug("api request",
		"method", r.Method,
		"url", r.URL,
		"request_id", r.Header.Get(headerRequestID),
	)
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	c.logger.Debug("api response",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
		"request_id", resp.Request.Header.Get(headerRequestID),
	)
	return nil
}

// Get issues a GET with optional query parameters and decodes the response
// into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	r := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		r.SetQueryParams(query)
	}
	return c.do(r, http.MethodGet, path, out)
}

// Post sends body as JSON (nil sends no body).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	r := c.rc.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	return c.do(r, http.MethodPost, path, out)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(c.rc.R().SetContext(ctx).SetBody(body), http.MethodPatch, path, out)
}

// Delete issues a DELETE; the response body is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(c.rc.R().SetContext(ctx), http.MethodDelete, path, nil)
}

// PostForm sends form as multipart/form-data.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out any) error {
	return c.sendForm(ctx, http.MethodPost, path, form, out)
}

// PatchForm sends form as multipart/form-data with PATCH.
func (c *Client) PatchForm(ctx context.Context, path string, form *Form, out any) error {
	return c.sendForm(ctx, http.MethodPatch, path, form, out)
}

func (c *Client) sendForm(ctx context.Context, method, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	r := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body)
	return c.do(r, method, path, out)
}

func (c *Client) do(r *resty.Request, method, path string, out any) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return newError(method, path, resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
