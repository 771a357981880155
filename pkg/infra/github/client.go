package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
)

const defaultBaseURL = "https://api.github.com"

// config holds internal client configuration
type config struct {
	token           string
	baseURL         string
	useCLIAuth      bool
	promptIfMissing bool
}

// Option is a functional option for client configuration
type Option func(*config)

// WithToken sets an explicit access token, skipping the resolution chain.
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL sets the API endpoint for GitHub Enterprise installations.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithCLIAuth enables falling back to `gh auth token` when no token is
// configured.
func WithCLIAuth(enabled bool) Option {
	return func(c *config) {
		c.useCLIAuth = enabled
	}
}

// WithPrompt enables an interactive token prompt as the last resort of the
// resolution chain. Only effective when stdin is a terminal.
func WithPrompt(enabled bool) Option {
	return func(c *config) {
		c.promptIfMissing = enabled
	}
}

type client struct {
	gh            *github.Client
	authenticated bool
}

// New creates a GitHub API client. The token is resolved via the
// authentication chain (explicit token, GITHUB_TOKEN / GH_TOKEN environment
// variables, GitHub CLI, interactive prompt). When no token resolves the
// client is created in unauthenticated state and every operation fails with
// an authentication error before reaching the API.
func New(ctx context.Context, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &config{
		baseURL:         defaultBaseURL,
		useCLIAuth:      true,
		promptIfMissing: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := ctxlog.From(ctx)

	token := resolveToken(ctx, cfg)
	if token == "" {
		logger.Warn("no GitHub token resolved, operations will fail until one is configured")
		return &client{gh: github.NewClient(nil)}, nil
	}

	gh := github.NewClient(nil).WithAuthToken(token)
	if cfg.baseURL != defaultBaseURL {
		var err error
		gh, err = gh.WithEnterpriseURLs(cfg.baseURL, cfg.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure enterprise base URL",
				goerr.V("base_url", cfg.baseURL))
		}
	}

	c := &client{gh: gh, authenticated: true}

	// Verify the token once. A bad credential degrades to unauthenticated
	// state instead of aborting startup; operations then report
	// AUTHENTICATION_ERROR envelopes.
	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		logger.Warn("GitHub token verification failed", "error", err)
		c.authenticated = false
		return c, nil
	}
	logger.Info("authenticated to GitHub", "login", user.GetLogin())

	return c, nil
}

// Authenticated implements interfaces.GitHubClient.
func (c *client) Authenticated() bool {
	return c.authenticated
}

// RateLimit returns the core API rate limit state.
func (c *client) RateLimit(ctx context.Context) (*github.Rate, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, classify(err, "rate limit")
	}
	return limits.Core, nil
}
