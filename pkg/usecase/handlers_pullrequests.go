package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func pullRequestOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "list_pull_requests",
			description: "List pull requests in a repository with optional filters for state and branches",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"state": {
					Type:        gollem.TypeString,
					Description: "Filter by PR state (default: open)",
					Enum:        []string{"open", "closed", "all"},
				},
				"head": {
					Type:        gollem.TypeString,
					Description: "Filter by head branch ('user:branch')",
				},
				"base": {
					Type:        gollem.TypeString,
					Description: "Filter by base branch",
				},
				"sort": {
					Type:        gollem.TypeString,
					Description: "Sort field (default: created)",
					Enum:        []string{"created", "updated", "popularity", "long-running"},
				},
				"direction": {
					Type:        gollem.TypeString,
					Description: "Sort direction (default: desc)",
					Enum:        []string{"asc", "desc"},
				},
				"limit": limitParam(),
			},
			handler: handleListPullRequests,
		},
		{
			name:        "get_pull_request",
			description: "Get a pull request with full details, optionally including changed files, reviews, and commits",
			scope:       types.ScopeRepository,
			required:    []string{"pull_number"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"pull_number": {
					Type:        gollem.TypeInteger,
					Description: "Pull request number",
				},
				"include_files": {
					Type:        gollem.TypeBoolean,
					Description: "Include list of changed files (default: true)",
				},
				"include_reviews": {
					Type:        gollem.TypeBoolean,
					Description: "Include reviews (default: true)",
				},
				"include_commits": {
					Type:        gollem.TypeBoolean,
					Description: "Include list of commits (default: false)",
				},
			},
			handler: handleGetPullRequest,
		},
		{
			name:        "create_pull_request",
			description: "Open a pull request from a head branch into a base branch",
			scope:       types.ScopeRepository,
			required:    []string{"title", "head", "base"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"title": {
					Type:        gollem.TypeString,
					Description: "Pull request title",
				},
				"head": {
					Type:        gollem.TypeString,
					Description: "Branch containing the changes",
				},
				"base": {
					Type:        gollem.TypeString,
					Description: "Branch to merge into",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "Pull request body (supports Markdown)",
				},
				"draft": {
					Type:        gollem.TypeBoolean,
					Description: "Create as draft PR (default: false)",
				},
				"maintainer_can_modify": {
					Type:        gollem.TypeBoolean,
					Description: "Allow maintainers to modify the PR (default: true)",
				},
			},
			handler: handleCreatePullRequest,
		},
		{
			name:        "update_pull_request",
			description: "Update a pull request's title, body, state, or base branch",
			scope:       types.ScopeRepository,
			required:    []string{"pull_number"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"pull_number": {
					Type:        gollem.TypeInteger,
					Description: "Pull request number",
				},
				"title": {
					Type:        gollem.TypeString,
					Description: "New title",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "New body (supports Markdown)",
				},
				"state": {
					Type:        gollem.TypeString,
					Description: "New state",
					Enum:        []string{"open", "closed"},
				},
				"base": {
					Type:        gollem.TypeString,
					Description: "New base branch",
				},
			},
			handler: handleUpdatePullRequest,
		},
		{
			name:        "merge_pull_request",
			description: "Merge a pull request using merge, squash, or rebase",
			scope:       types.ScopeRepository,
			required:    []string{"pull_number"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"pull_number": {
					Type:        gollem.TypeInteger,
					Description: "Pull request number",
				},
				"merge_method": {
					Type:        gollem.TypeString,
					Description: "Merge method (default: merge)",
					Enum:        []string{"merge", "squash", "rebase"},
				},
				"commit_title": {
					Type:        gollem.TypeString,
					Description: "Custom commit title for the merge",
				},
				"commit_message": {
					Type:        gollem.TypeString,
					Description: "Custom commit message for the merge",
				},
				"sha": {
					Type:        gollem.TypeString,
					Description: "SHA the PR head must match to allow the merge",
				},
				"delete_branch": {
					Type:        gollem.TypeBoolean,
					Description: "Delete the head branch after merging (default: false)",
				},
			},
			handler: handleMergePullRequest,
		},
		{
			name:        "review_pull_request",
			description: "Submit a review on a pull request: approve, request changes, or comment, with optional inline comments",
			scope:       types.ScopeRepository,
			required:    []string{"pull_number", "event"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"pull_number": {
					Type:        gollem.TypeInteger,
					Description: "Pull request number",
				},
				"event": {
					Type:        gollem.TypeString,
					Description: "Review action",
					Enum:        []string{"APPROVE", "REQUEST_CHANGES", "COMMENT"},
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "Review body (required for REQUEST_CHANGES and COMMENT)",
				},
				"comments": {
					Type:        gollem.TypeArray,
					Description: "Inline comments on specific lines",
					Items: &gollem.Parameter{
						Type: gollem.TypeObject,
						Properties: map[string]*gollem.Parameter{
							"path": {
								Type:        gollem.TypeString,
								Description: "File path to comment on",
							},
							"line": {
								Type:        gollem.TypeInteger,
								Description: "Line number in the file",
							},
							"side": {
								Type:        gollem.TypeString,
								Description: "Side of the diff",
								Enum:        []string{"LEFT", "RIGHT"},
							},
							"body": {
								Type:        gollem.TypeString,
								Description: "Comment body",
							},
						},
						Required: []string{"path", "body"},
					},
				},
			},
			handler: handleReviewPullRequest,
		},
	}
}

func handleListPullRequests(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.PullRequestListOptions{
		State:       p.String("state", "open"),
		Head:        p.String("head", ""),
		Base:        p.String("base", ""),
		Sort:        p.String("sort", "created"),
		Direction:   p.String("direction", "desc"),
		ListOptions: github.ListOptions{PerPage: limit},
	}

	prs, err := gh.ListPullRequests(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(prs))
	for _, pr := range prs {
		if len(list) >= limit {
			break
		}
		list = append(list, pullRequestToMap(pr))
	}

	return map[string]any{
		"repository":    ref.String(),
		"state":         opts.State,
		"count":         len(list),
		"pull_requests": list,
	}, nil
}

func handleGetPullRequest(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	number := p.Int("pull_number", 0)

	pr, err := gh.GetPullRequest(ctx, ref.Owner, ref.Name, number)
	if err != nil {
		return nil, err
	}

	output := pullRequestToMap(pr)
	output["repository"] = ref.String()
	output["body"] = pr.GetBody()
	output["mergeable"] = pr.GetMergeable()
	output["additions"] = pr.GetAdditions()
	output["deletions"] = pr.GetDeletions()
	output["changed_files"] = pr.GetChangedFiles()

	if p.Bool("include_files", true) {
		files, err := gh.ListPullRequestFiles(ctx, ref.Owner, ref.Name, number, &github.ListOptions{PerPage: 100})
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(files))
		for _, file := range files {
			list = append(list, commitFileToMap(file))
		}
		output["files"] = list
	}

	if p.Bool("include_reviews", true) {
		reviews, err := gh.ListPullRequestReviews(ctx, ref.Owner, ref.Name, number, &github.ListOptions{PerPage: 100})
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(reviews))
		for _, review := range reviews {
			list = append(list, reviewToMap(review))
		}
		output["reviews"] = list
	}

	if p.Bool("include_commits", false) {
		commits, err := gh.ListPullRequestCommits(ctx, ref.Owner, ref.Name, number, &github.ListOptions{PerPage: 100})
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(commits))
		for _, commit := range commits {
			list = append(list, commitToMap(commit))
		}
		output["commits"] = list
	}

	return output, nil
}

func handleCreatePullRequest(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	req := &github.NewPullRequest{
		Title:               github.Ptr(p.String("title", "")),
		Head:                github.Ptr(p.String("head", "")),
		Base:                github.Ptr(p.String("base", "")),
		Draft:               github.Ptr(p.Bool("draft", false)),
		MaintainerCanModify: github.Ptr(p.Bool("maintainer_can_modify", true)),
	}
	if p.Has("body") {
		req.Body = github.Ptr(p.String("body", ""))
	}

	pr, err := gh.CreatePullRequest(ctx, ref.Owner, ref.Name, req)
	if err != nil {
		return nil, err
	}

	output := pullRequestToMap(pr)
	output["repository"] = ref.String()
	return output, nil
}

func handleUpdatePullRequest(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	update := &github.PullRequest{}
	if p.Has("title") {
		update.Title = github.Ptr(p.String("title", ""))
	}
	if p.Has("body") {
		update.Body = github.Ptr(p.String("body", ""))
	}
	if p.Has("state") {
		update.State = github.Ptr(p.String("state", ""))
	}
	if p.Has("base") {
		update.Base = &github.PullRequestBranch{Ref: github.Ptr(p.String("base", ""))}
	}

	pr, err := gh.EditPullRequest(ctx, ref.Owner, ref.Name, p.Int("pull_number", 0), update)
	if err != nil {
		return nil, err
	}

	output := pullRequestToMap(pr)
	output["repository"] = ref.String()
	return output, nil
}

func handleMergePullRequest(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	number := p.Int("pull_number", 0)

	opts := &github.PullRequestOptions{
		MergeMethod: p.String("merge_method", "merge"),
		CommitTitle: p.String("commit_title", ""),
		SHA:         p.String("sha", ""),
	}

	result, err := gh.MergePullRequest(ctx, ref.Owner, ref.Name, number, p.String("commit_message", ""), opts)
	if err != nil {
		return nil, err
	}

	output := map[string]any{
		"repository":  ref.String(),
		"pull_number": number,
		"merged":      result.GetMerged(),
		"sha":         result.GetSHA(),
		"message":     result.GetMessage(),
	}

	// The merge is already committed at this point, so a branch cleanup
	// failure must not turn the result into an error.
	if p.Bool("delete_branch", false) && result.GetMerged() {
		output["branch_deleted"] = false
		if branch, err := deleteMergedBranch(ctx, gh, ref, number); err != nil {
			ctxlog.From(ctx).Warn("merged but failed to delete head branch",
				"repository", ref.String(), "pull_number", number, "error", err)
		} else if branch != "" {
			output["branch_deleted"] = true
			output["deleted_branch"] = branch
		}
	}

	return output, nil
}

func deleteMergedBranch(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, number int) (string, error) {
	pr, err := gh.GetPullRequest(ctx, ref.Owner, ref.Name, number)
	if err != nil {
		return "", err
	}
	branch := pr.GetHead().GetRef()
	if branch == "" {
		return "", nil
	}
	if err := gh.DeleteBranchRef(ctx, ref.Owner, ref.Name, branch); err != nil {
		return "", err
	}
	return branch, nil
}

func handleReviewPullRequest(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	event := p.String("event", "")
	body := p.String("body", "")
	if body == "" && event != "APPROVE" {
		return nil, goerr.New("body is required for REQUEST_CHANGES and COMMENT reviews",
			goerr.T(types.ErrTagValidation), goerr.V("event", event))
	}

	review := &github.PullRequestReviewRequest{
		Event: github.Ptr(event),
	}
	if body != "" {
		review.Body = github.Ptr(body)
	}

	for _, raw := range p.ObjectSlice("comments") {
		comment := model.Params(raw)
		draft := &github.DraftReviewComment{
			Path: github.Ptr(comment.String("path", "")),
			Body: github.Ptr(comment.String("body", "")),
		}
		if comment.Has("line") {
			draft.Line = github.Ptr(comment.Int("line", 0))
		}
		if comment.Has("side") {
			draft.Side = github.Ptr(comment.String("side", ""))
		}
		if comment.Has("position") {
			draft.Position = github.Ptr(comment.Int("position", 0))
		}
		review.Comments = append(review.Comments, draft)
	}

	created, err := gh.CreatePullRequestReview(ctx, ref.Owner, ref.Name, p.Int("pull_number", 0), review)
	if err != nil {
		return nil, err
	}

	output := reviewToMap(created)
	output["repository"] = ref.String()
	output["pull_number"] = p.Int("pull_number", 0)
	return output, nil
}
