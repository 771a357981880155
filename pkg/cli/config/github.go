package config

import (
	"context"

	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub client configuration
type GitHub struct {
	Token        string
	BaseURL      string
	CLIAuth      bool
	Prompt       bool
	Repositories []string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token (falls back to GITHUB_TOKEN / GH_TOKEN, then gh CLI)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SHEARS_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("SHEARS_GITHUB_BASE_URL"),
		},
		&cli.BoolFlag{
			Name:        "github-cli-auth",
			Usage:       "Allow token discovery via the gh CLI",
			Value:       true,
			Destination: &c.CLIAuth,
			Sources:     cli.EnvVars("SHEARS_GITHUB_CLI_AUTH"),
		},
		&cli.BoolFlag{
			Name:        "github-prompt",
			Usage:       "Prompt for a token interactively when no other source yields one",
			Value:       true,
			Destination: &c.Prompt,
			Sources:     cli.EnvVars("SHEARS_GITHUB_PROMPT"),
		},
		&cli.StringSliceFlag{
			Name:        "repository",
			Aliases:     []string{"r"},
			Usage:       "Allowed repository (owner/name or URL, repeatable; empty allows all)",
			Destination: &c.Repositories,
			Sources:     cli.EnvVars("SHEARS_REPOSITORIES"),
		},
	}
}

// Configure builds a GitHub client from the configuration
func (c *GitHub) Configure(ctx context.Context) (interfaces.GitHubClient, error) {
	var opts []github.Option
	if c.Token != "" {
		opts = append(opts, github.WithToken(c.Token))
	}
	if c.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(c.BaseURL))
	}
	opts = append(opts,
		github.WithCLIAuth(c.CLIAuth),
		github.WithPrompt(c.Prompt),
	)

	return github.New(ctx, opts...)
}
