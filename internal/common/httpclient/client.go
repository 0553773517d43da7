// internal/common/httpclient/client.go

// Package httpclient wraps a single shared http.Client with the fixed header
// set and credential the upstream registry expects. All transport failures
// come back as the standardized error taxonomy; callers log and degrade to
// an absent result instead of aborting the batch.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"entsite/internal/common/errors"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	Timeout    time.Duration
	Credential string // opaque session credential, sent as Cookie
	UserAgent  string
}

// Response is the subset of an HTTP response the lookup stages consume.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client is a shared connection-reusing HTTP client. One instance is built
// at startup and injected into every stage.
type Client struct {
	httpClient *http.Client
	credential string
	userAgent  string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		credential: cfg.Credential,
		userAgent:  cfg.UserAgent,
	}
}

// PostJSON sends a JSON payload and returns the raw response body.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("marshal request payload: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, req)
}

// Get fetches a URL, advertising the given Accept header.
func (c *Client) Get(ctx context.Context, url, accept string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("build request: %v", err))
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*Response, error) {
	if c.credential != "" {
		req.Header.Set("Cookie", c.credential)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.8,zh-TW;q=0.7,zh-HK;q=0.5,en-US;q=0.3,en;q=0.2")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errors.NewTimeoutError(err.Error())
		}
		return nil, errors.NewNetworkError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("read response body: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewStatusError(resp.StatusCode, req.URL.String())
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func isTimeout(ctx context.Context, err error) bool {
	return ctx.Err() == context.DeadlineExceeded ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "deadline") ||
		strings.Contains(err.Error(), "Client.Timeout")
}
