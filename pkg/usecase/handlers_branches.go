package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func branchOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "list_branches",
			description: "List branches in a repository, optionally only protected ones",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"protected": {
					Type:        gollem.TypeBoolean,
					Description: "Only protected branches",
				},
				"limit": limitParam(),
			},
			handler: handleListBranches,
		},
		{
			name:        "get_branch",
			description: "Get a single branch with its head commit and protection state",
			scope:       types.ScopeRepository,
			required:    []string{"branch"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"branch": {
					Type:        gollem.TypeString,
					Description: "Branch name",
				},
			},
			handler: handleGetBranch,
		},
		{
			name:        "create_branch",
			description: "Create a branch from an existing ref (default: the repository's default branch)",
			scope:       types.ScopeRepository,
			required:    []string{"branch"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"branch": {
					Type:        gollem.TypeString,
					Description: "Name of the branch to create",
				},
				"from_ref": {
					Type:        gollem.TypeString,
					Description: "Branch, tag, or SHA to branch from (default: default branch)",
				},
			},
			handler: handleCreateBranch,
		},
		{
			name:        "compare_branches",
			description: "Compare two branches or refs: ahead/behind counts, commits, and changed files",
			scope:       types.ScopeRepository,
			required:    []string{"base", "head"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"base": {
					Type:        gollem.TypeString,
					Description: "Base branch or ref",
				},
				"head": {
					Type:        gollem.TypeString,
					Description: "Head branch or ref",
				},
				"include_commits": {
					Type:        gollem.TypeBoolean,
					Description: "Include the commit list (default: true)",
				},
				"include_files": {
					Type:        gollem.TypeBoolean,
					Description: "Include the changed file list (default: false)",
				},
			},
			handler: handleCompareBranches,
		},
	}
}

func handleListBranches(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	}
	if p.Has("protected") {
		opts.Protected = github.Ptr(p.Bool("protected", false))
	}

	branches, err := gh.ListBranches(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(branches))
	for _, branch := range branches {
		if len(list) >= limit {
			break
		}
		list = append(list, branchToMap(branch))
	}

	return map[string]any{
		"repository": ref.String(),
		"count":      len(list),
		"branches":   list,
	}, nil
}

func handleGetBranch(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	branch, err := gh.GetBranch(ctx, ref.Owner, ref.Name, p.String("branch", ""))
	if err != nil {
		return nil, err
	}

	output := branchToMap(branch)
	output["repository"] = ref.String()
	output["commit_message"] = branch.GetCommit().GetCommit().GetMessage()
	output["commit_author"] = branch.GetCommit().GetCommit().GetAuthor().GetName()
	output["commit_date"] = timestamp(branch.GetCommit().GetCommit().GetAuthor().GetDate())
	return output, nil
}

func handleCreateBranch(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	fromRef := p.String("from_ref", "")
	if fromRef == "" {
		repo, err := gh.GetRepository(ctx, ref.Owner, ref.Name)
		if err != nil {
			return nil, err
		}
		fromRef = repo.GetDefaultBranch()
	}

	// Resolve the source to a SHA. Branch names take priority; a raw SHA
	// passes through GetRef unharmed only when it is a ref, so fall back to
	// treating from_ref as a commit SHA on lookup failure.
	sha := fromRef
	if source, err := gh.GetRef(ctx, ref.Owner, ref.Name, "refs/heads/"+fromRef); err == nil {
		sha = source.GetObject().GetSHA()
	} else if source, err := gh.GetRef(ctx, ref.Owner, ref.Name, "refs/tags/"+fromRef); err == nil {
		sha = source.GetObject().GetSHA()
	}

	branch := p.String("branch", "")
	created, err := gh.CreateRef(ctx, ref.Owner, ref.Name, &github.Reference{
		Ref:    github.Ptr("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"repository": ref.String(),
		"branch":     branch,
		"ref":        created.GetRef(),
		"sha":        created.GetObject().GetSHA(),
		"from_ref":   fromRef,
	}, nil
}

func handleCompareBranches(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	base := p.String("base", "")
	head := p.String("head", "")

	cmp, err := gh.CompareCommits(ctx, ref.Owner, ref.Name, base, head)
	if err != nil {
		return nil, err
	}

	output := map[string]any{
		"repository":    ref.String(),
		"base":          base,
		"head":          head,
		"status":        cmp.GetStatus(),
		"ahead_by":      cmp.GetAheadBy(),
		"behind_by":     cmp.GetBehindBy(),
		"total_commits": cmp.GetTotalCommits(),
	}

	if p.Bool("include_commits", true) {
		commits := make([]any, 0, len(cmp.Commits))
		for _, commit := range cmp.Commits {
			commits = append(commits, commitToMap(commit))
		}
		output["commits"] = commits
	}

	if p.Bool("include_files", false) {
		files := make([]any, 0, len(cmp.Files))
		for _, file := range cmp.Files {
			files = append(files, commitFileToMap(file))
		}
		output["files"] = files
	}

	return output, nil
}
