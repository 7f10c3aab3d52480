// Package transport is the resty-backed HTTP layer for the LinkedIn client.
package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/blacktop/lipost/internal/linkedin"
	"github.com/blacktop/lipost/internal/logutil"
	"github.com/go-resty/resty/v2"
)

const (
	userAgent       = "lipost/1"
	restliHeader    = "X-Restli-Protocol-Version"
	restliVersion   = "2.0.0"
	redactedToken   = "Bearer [REDACTED]"
	defaultTimeout  = 30 * time.Second
	contentTypeJSON = "application/json"
)

// Config describes how to reach the API.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Debug   bool
}

// Client implements linkedin.Transport. Every request carries the bearer
// token from Config. Requests are never retried.
type Client struct {
	resty *resty.Client
}

var _ linkedin.Transport = (*Client)(nil)

// New builds a Client from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.Token).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetHeader(restliHeader, restliVersion).
		SetLogger(logutil.Logger()).
		SetDebug(cfg.Debug)

	r.OnRequestLog(func(l *resty.RequestLog) error {
		if l.Header.Get("Authorization") != "" {
			l.Header.Set("Authorization", redactedToken)
		}
		return nil
	})

	return &Client{resty: r}
}

// Get issues a GET against a path under the base URL.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(c.resty.R().SetContext(ctx), http.MethodGet, path)
}

// Post sends a JSON body to a path under the base URL.
func (c *Client) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentTypeJSON).
		SetBody(body)
	return c.do(req, http.MethodPost, path)
}

// PostBinary sends raw bytes to an absolute URL with the given headers.
func (c *Client) PostBinary(ctx context.Context, url string, data []byte, headers map[string]string) ([]byte, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(data)
	return c.do(req, http.MethodPost, url)
}

func (c *Client) do(req *resty.Request, method, target string) ([]byte, error) {
	logutil.Debugf("request: %s %s", method, target)
	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, &linkedin.TransportError{Method: method, URL: target, Err: err}
	}
	logutil.Debugf("response: %s %s status=%d", method, target, resp.StatusCode())

	if resp.IsError() {
		return nil, &linkedin.TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
		}
	}

	return resp.Body(), nil
}
