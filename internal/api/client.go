// Package api is the HTTP client for the portfolio-monitoring backend.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/go-resty/resty/v2"
)

// Backend routes.
const (
	PathStats               = "/api/stats"
	PathRunMonitoring       = "/api/run-monitoring"
	PathCompanies           = "/api/companies"
	PathMentions            = "/api/mentions"
	PathCleanFalsePositives = "/api/clean-false-positives"
	PathSlackTest           = "/api/slack-test"
)

const userAgent = "company-tracker"

// Client talks to the dashboard backend. It never adds auth headers.
type Client struct {
	base string
	rest *resty.Client
	// slow is used for the monitoring trigger, which can run for minutes.
	slow *resty.Client
}

// Options configures a Client.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	MonitorTimeout time.Duration
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// NewClient creates a backend client. Zero timeouts fall back to 10s and 10m.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	monitorTimeout := opts.MonitorTimeout
	if monitorTimeout <= 0 {
		monitorTimeout = 10 * time.Minute
	}
	base := strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		base: base,
		rest: newResty(base, timeout, opts.Transport),
		slow: newResty(base, monitorTimeout, opts.Transport),
	}
}

func newResty(base string, timeout time.Duration, transport http.RoundTripper) *resty.Client {
	r := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)
	if transport != nil {
		r.SetTransport(transport)
	}
	return r
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

// FetchStats retrieves the current aggregate stats snapshot.
func (c *Client) FetchStats(ctx context.Context) (*StatsSnapshot, error) {
	var out StatsSnapshot
	if err := c.getJSON(ctx, c.rest, PathStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunMonitoring triggers a monitoring scan and waits for it to finish.
// A result with Success=false is a logical failure, not an error.
func (c *Client) RunMonitoring(ctx context.Context) (*MonitoringResult, error) {
	return c.trigger(ctx, c.slow, http.MethodGet, PathRunMonitoring)
}

// Companies lists the tracked portfolio companies.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var out []Company
	if err := c.getJSON(ctx, c.rest, PathCompanies, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mentions lists the most recent mentions, newest first.
func (c *Client) Mentions(ctx context.Context) ([]Mention, error) {
	var out []Mention
	if err := c.getJSON(ctx, c.rest, PathMentions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CleanFalsePositives asks the backend to drop mentions it now considers
// false positives.
func (c *Client) CleanFalsePositives(ctx context.Context) (*CleanResult, error) {
	resp, err := c.do(ctx, c.slow, http.MethodGet, PathCleanFalsePositives)
	if err != nil {
		return nil, err
	}

	var out CleanResult
	decodeErr := json.Unmarshal(resp.Body(), &out)
	if !resp.IsSuccess() {
		if decodeErr == nil && out.Message != "" {
			out.Success = false
			return &out, nil
		}
		return nil, statusError(resp, PathCleanFalsePositives)
	}
	if decodeErr != nil {
		return nil, malformed(decodeErr, PathCleanFalsePositives)
	}
	return &out, nil
}

// SlackTest asks the backend to send a test alert to its Slack webhook.
func (c *Client) SlackTest(ctx context.Context) (*MonitoringResult, error) {
	return c.trigger(ctx, c.rest, http.MethodPost, PathSlackTest)
}

// trigger calls an endpoint answering {success, message}. A non-2xx status
// whose body still carries a message is reported as a logical failure.
func (c *Client) trigger(ctx context.Context, r *resty.Client, method, path string) (*MonitoringResult, error) {
	resp, err := c.do(ctx, r, method, path)
	if err != nil {
		return nil, err
	}

	var out MonitoringResult
	decodeErr := json.Unmarshal(resp.Body(), &out)
	if !resp.IsSuccess() {
		if decodeErr == nil && out.Message != "" {
			out.Success = false
			return &out, nil
		}
		return nil, statusError(resp, path)
	}
	if decodeErr != nil {
		return nil, malformed(decodeErr, path)
	}
	return &out, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, r *resty.Client, path string, out interface{}) error {
	resp, err := c.do(ctx, r, http.MethodGet, path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return statusError(resp, path)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return malformed(err, path)
	}
	return nil
}

// do executes a request and maps transport failures to structured errors.
// Bodies are decoded by the caller: resty's SetResult skips non-JSON content
// types silently, and a non-JSON body must surface as an error here.
func (c *Client) do(ctx context.Context, r *resty.Client, method, path string) (*resty.Response, error) {
	resp, err := r.R().SetContext(ctx).Execute(method, path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHTTP,
			fmt.Sprintf("Couldn't reach %s%s", c.base, path),
			"Is the backend running? Check server.url or pass --server.")
	}
	return resp, nil
}

func statusError(resp *resty.Response, path string) error {
	body := strings.TrimSpace(resp.String())
	if len(body) > 200 {
		body = body[:197] + "..."
	}
	return errors.WrapWithCode(fmt.Errorf("status %d: %s", resp.StatusCode(), body), errors.ErrHTTP,
		fmt.Sprintf("Backend returned %s for %s", resp.Status(), path),
		"Check the backend logs.")
}

func malformed(err error, path string) error {
	return errors.WrapWithCode(err, errors.ErrHTTP,
		fmt.Sprintf("Unexpected response body from %s", path),
		"The backend didn't send valid JSON. Is server.url pointing at the right service?")
}
