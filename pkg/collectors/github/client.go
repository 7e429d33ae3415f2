// Package github fetches the public user listing from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v82/github"
)

const (
	// DefaultBaseURL is the public GitHub API root.
	DefaultBaseURL = "https://api.github.com/"

	// DefaultCount is the initial refresh count.
	DefaultCount = 30

	// MaxPerPage is the largest page the /users endpoint serves.
	MaxPerPage = 100

	defaultUserAgent = "dayboard"
)

// ErrInvalidCount is returned for a non-positive count.
var ErrInvalidCount = errors.New("count must be positive")

// User is one entry of the /users listing.
type User struct {
	Login     string `json:"login" yaml:"login"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

// Config selects the API endpoint. An empty BaseURL means api.github.com.
type Config struct {
	BaseURL   string
	UserAgent string
	Logger    *slog.Logger
}

// Client issues unauthenticated GET /users?per_page=<count> requests.
type Client struct {
	gh     *gh.Client
	logger *slog.Logger
}

// NewClient builds a Client. A nil httpClient uses http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	c := gh.NewClient(httpClient)

	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
		}
		c.BaseURL = u
	}

	c.UserAgent = defaultUserAgent
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{gh: c, logger: logger}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.gh.BaseURL.String() }

// ClampCount bounds count to MaxPerPage. Non-positive counts are rejected.
func ClampCount(count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > MaxPerPage {
		return MaxPerPage, nil
	}
	return count, nil
}

// ListUsers fetches up to count users in response order. Duplicate logins
// keep their first occurrence.
func (c *Client) ListUsers(ctx context.Context, count int) ([]User, error) {
	n, err := ClampCount(count)
	if err != nil {
		return nil, err
	}

	opts := &gh.UserListOptions{ListOptions: gh.ListOptions{PerPage: n}}
	raw, _, err := c.gh.Users.ListAll(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list users (per_page=%d): %w", n, err)
	}

	users := make([]User, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, u := range raw {
		if len(users) == n {
			break
		}
		login := u.GetLogin()
		if _, dup := seen[login]; dup {
			continue
		}
		seen[login] = struct{}{}
		users = append(users, User{Login: login, AvatarURL: u.GetAvatarURL()})
	}

	c.logger.Debug("users fetched", "per_page", n, "received", len(raw), "kept", len(users))
	return users, nil
}
