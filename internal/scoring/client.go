package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/coolguy173/focus-app1/internal/domain"
)

// ErrReportFailed covers every way an outcome report can fail. Callers never
// retry and never inspect the cause; the running battle must not be disturbed
// by scoring trouble.
var ErrReportFailed = errors.New("outcome report failed")

// ErrLoginFailed indicates the server rejected the credentials.
var ErrLoginFailed = errors.New("login failed")

const (
	requestTimeout  = 10 * time.Second
	dispatchTimeout = 3 * time.Second
)

// Client talks to one scoring server on behalf of one logged-in user.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: requestTimeout,
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Login authenticates with the server and stores the session cookie. The
// server answers a successful form login with a redirect to the dashboard.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusSeeOther && resp.StatusCode != http.StatusFound {
		if resp.StatusCode == http.StatusUnauthorized {
			return ErrLoginFailed
		}
		return fmt.Errorf("%w: unexpected status %d", ErrLoginFailed, resp.StatusCode)
	}
	return nil
}

// ReportWin records a completed battle and returns the updated stats.
func (c *Client) ReportWin(ctx context.Context) (domain.Stats, error) {
	return c.report(ctx, "/api/session/win")
}

// ReportLoss records an abandoned battle and returns the updated stats.
func (c *Client) ReportLoss(ctx context.Context) (domain.Stats, error) {
	return c.report(ctx, "/api/session/loss")
}

// DispatchLoss sends a loss report on shutdown paths where nobody waits for
// the answer. It ignores the parent context's cancellation, uses its own
// short deadline, and swallows all errors.
func (c *Client) DispatchLoss(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()

	if _, err := c.report(ctx, "/api/session/loss"); err != nil {
		slog.Debug("Shutdown loss dispatch failed", "error", err)
	}
}

// Stats fetches the user's current counters.
func (c *Client) Stats(ctx context.Context) (domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats", nil)
	if err != nil {
		return domain.Stats{}, ErrReportFailed
	}
	return c.doStats(req)
}

func (c *Client) report(ctx context.Context, path string) (domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return domain.Stats{}, ErrReportFailed
	}
	return c.doStats(req)
}

func (c *Client) doStats(req *http.Request) (domain.Stats, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Stats{}, ErrReportFailed
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return domain.Stats{}, ErrReportFailed
	}

	var stats domain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return domain.Stats{}, ErrReportFailed
	}
	return stats, nil
}
