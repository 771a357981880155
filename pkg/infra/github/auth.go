package github

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"golang.org/x/term"
)

const cliAuthTimeout = 5 * time.Second

// resolveToken walks the authentication chain and returns the first token
// found, or an empty string. Order: explicit token, GITHUB_TOKEN / GH_TOKEN
// environment variables, GitHub CLI, interactive prompt.
func resolveToken(ctx context.Context, cfg *config) string {
	if cfg.token != "" {
		return cfg.token
	}

	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			ctxlog.From(ctx).Debug("using GitHub token from environment", "source", key)
			return v
		}
	}

	if cfg.useCLIAuth {
		if token := tokenFromCLI(ctx); token != "" {
			return token
		}
	}

	if cfg.promptIfMissing {
		if token := tokenFromPrompt(); token != "" {
			return token
		}
	}

	return ""
}

// tokenFromCLI asks the gh CLI for its stored token.
func tokenFromCLI(ctx context.Context) string {
	logger := ctxlog.From(ctx)

	cmdCtx, cancel := context.WithTimeout(ctx, cliAuthTimeout)
	defer cancel()

	out, err := exec.CommandContext(cmdCtx, "gh", "auth", "token").Output()
	if err != nil {
		logger.Debug("GitHub CLI token lookup failed", "error", err)
		return ""
	}

	token := strings.TrimSpace(string(out))
	if token != "" {
		logger.Debug("using GitHub token from gh CLI")
	}
	return token
}

// tokenFromPrompt asks the user for a token, without echo. Skipped when
// stdin is not a terminal.
func tokenFromPrompt() string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}

	fmt.Fprint(os.Stderr, "GitHub token: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
