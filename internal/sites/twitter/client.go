package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/felores/agent-twitter-client/internal/core/domain"
	"github.com/felores/agent-twitter-client/internal/core/ports"
)

const DefaultBaseURL = "https://x.com/i/api"

// Config carries everything the client needs at construction time.
// Credentials are fixed for the lifetime of the client; there is no
// mutable global or post-construction re-authentication.
type Config struct {
	// Cookies are the session credentials, one "name=value; Domain=…"
	// string per token. Must be non-empty.
	Cookies []string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL   string
	UserAgent string
	// RequestsPerSecond paces outbound calls. Zero means the default of 1.
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// Client is the authenticated adapter for the platform API. It implements
// ports.TweetFetcher, ports.TimelineSource, ports.ProfileFetcher and
// ports.ChatProvider. Credentials are read-only after construction, so a
// single client is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	cookies    []*http.Cookie
	csrf       string
	HTTPClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	cookies, err := parseCookies(cfg.Cookies)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "agent-twitter-client/1.0"
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		cookies:    cookies,
		csrf:       csrfToken(cookies),
		HTTPClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(rps), 2),
		log:        cfg.Logger,
	}, nil
}

var (
	_ ports.TweetFetcher   = (*Client)(nil)
	_ ports.TimelineSource = (*Client)(nil)
	_ ports.ProfileFetcher = (*Client)(nil)
	_ ports.ChatProvider   = (*Client)(nil)
)

// doJSON issues one authenticated request and decodes the JSON response
// into out. A nil return with ok=false means the remote reported 404.
func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out any) (ok bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	if c.csrf != "" {
		req.Header.Set("x-csrf-token", c.csrf)
	}
	req.Header.Set("x-client-transaction-id", uuid.NewString())
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api request")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, fmt.Errorf("%w: status %d", domain.ErrAuth, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, fmt.Errorf("%w: status 429", domain.ErrRateLimited)
	case resp.StatusCode >= 500:
		return false, fmt.Errorf("%w: status %d", domain.ErrTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		msg, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("api request failed with status %d: %s", resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return true, nil
}
