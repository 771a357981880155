package usecase

import (
	"context"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func commitOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "list_commits",
			description: "List commits in a repository with optional filters for branch, path, author, and time range",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"sha": {
					Type:        gollem.TypeString,
					Description: "Branch or SHA to start listing from (default: default branch)",
				},
				"path": {
					Type:        gollem.TypeString,
					Description: "Only commits touching this path",
				},
				"author": {
					Type:        gollem.TypeString,
					Description: "Filter by author username or email",
				},
				"since": {
					Type:        gollem.TypeString,
					Description: "Only commits after this timestamp (RFC 3339)",
				},
				"until": {
					Type:        gollem.TypeString,
					Description: "Only commits before this timestamp (RFC 3339)",
				},
				"limit": limitParam(),
			},
			handler: handleListCommits,
		},
		{
			name:        "get_commit",
			description: "Get a single commit with its stats, optionally including the changed files",
			scope:       types.ScopeRepository,
			required:    []string{"sha"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"sha": {
					Type:        gollem.TypeString,
					Description: "Commit SHA (full or abbreviated)",
				},
				"include_files": {
					Type:        gollem.TypeBoolean,
					Description: "Include the list of changed files (default: true)",
				},
			},
			handler: handleGetCommit,
		},
	}
}

func handleListCommits(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.CommitsListOptions{
		SHA:         p.String("sha", ""),
		Path:        p.String("path", ""),
		Author:      p.String("author", ""),
		ListOptions: github.ListOptions{PerPage: limit},
	}
	if v := p.String("since", ""); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, invalidTimestamp("since", v, err)
		}
		opts.Since = ts
	}
	if v := p.String("until", ""); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, invalidTimestamp("until", v, err)
		}
		opts.Until = ts
	}

	commits, err := gh.ListCommits(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(commits))
	for _, commit := range commits {
		if len(list) >= limit {
			break
		}
		list = append(list, commitToMap(commit))
	}

	return map[string]any{
		"repository": ref.String(),
		"count":      len(list),
		"commits":    list,
	}, nil
}

func handleGetCommit(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	commit, err := gh.GetCommit(ctx, ref.Owner, ref.Name, p.String("sha", ""))
	if err != nil {
		return nil, err
	}

	output := commitToMap(commit)
	output["repository"] = ref.String()
	output["additions"] = commit.GetStats().GetAdditions()
	output["deletions"] = commit.GetStats().GetDeletions()
	output["total_changes"] = commit.GetStats().GetTotal()

	if p.Bool("include_files", true) {
		files := make([]any, 0, len(commit.Files))
		for _, file := range commit.Files {
			files = append(files, commitFileToMap(file))
		}
		output["files"] = files
	}

	return output, nil
}
