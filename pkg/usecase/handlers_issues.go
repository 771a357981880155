package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func issueOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "list_issues",
			description: "List issues in a repository with optional filters for state, labels, assignee, and creator",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"state": {
					Type:        gollem.TypeString,
					Description: "Filter by issue state (default: open)",
					Enum:        []string{"open", "closed", "all"},
				},
				"labels": {
					Type:        gollem.TypeArray,
					Description: "Filter by labels (must have all specified labels)",
					Items:       &gollem.Parameter{Type: gollem.TypeString},
				},
				"assignee": {
					Type:        gollem.TypeString,
					Description: "Filter by assignee username ('none' for unassigned, '*' for any assigned)",
				},
				"creator": {
					Type:        gollem.TypeString,
					Description: "Filter by issue creator username",
				},
				"mentioned": {
					Type:        gollem.TypeString,
					Description: "Filter by username mentioned in the issue",
				},
				"sort": {
					Type:        gollem.TypeString,
					Description: "Sort field (default: created)",
					Enum:        []string{"created", "updated", "comments"},
				},
				"direction": {
					Type:        gollem.TypeString,
					Description: "Sort direction (default: desc)",
					Enum:        []string{"asc", "desc"},
				},
				"limit": limitParam(),
			},
			handler: handleListIssues,
		},
		{
			name:        "get_issue",
			description: "Get a single issue with full details, optionally including its comments",
			scope:       types.ScopeRepository,
			required:    []string{"issue_number"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"issue_number": {
					Type:        gollem.TypeInteger,
					Description: "Issue number",
				},
				"include_comments": {
					Type:        gollem.TypeBoolean,
					Description: "Include issue comments in the response (default: false)",
				},
				"comments_limit": {
					Type:        gollem.TypeInteger,
					Description: "Maximum number of comments to return (default: 10)",
				},
			},
			handler: handleGetIssue,
		},
		{
			name:        "create_issue",
			description: "Create a new issue with optional labels, assignees, and milestone",
			scope:       types.ScopeRepository,
			required:    []string{"title"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"title": {
					Type:        gollem.TypeString,
					Description: "Issue title",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "Issue body (supports Markdown)",
				},
				"labels": {
					Type:        gollem.TypeArray,
					Description: "Labels to add to the issue",
					Items:       &gollem.Parameter{Type: gollem.TypeString},
				},
				"assignees": {
					Type:        gollem.TypeArray,
					Description: "Usernames to assign to the issue",
					Items:       &gollem.Parameter{Type: gollem.TypeString},
				},
				"milestone": {
					Type:        gollem.TypeInteger,
					Description: "Milestone number to associate with the issue",
				},
			},
			handler: handleCreateIssue,
		},
		{
			name:        "update_issue",
			description: "Update an issue's title, body, state, labels, assignees, or milestone",
			scope:       types.ScopeRepository,
			required:    []string{"issue_number"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"issue_number": {
					Type:        gollem.TypeInteger,
					Description: "Issue number",
				},
				"title": {
					Type:        gollem.TypeString,
					Description: "New issue title",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "New issue body (supports Markdown)",
				},
				"state": {
					Type:        gollem.TypeString,
					Description: "New issue state",
					Enum:        []string{"open", "closed"},
				},
				"labels": {
					Type:        gollem.TypeArray,
					Description: "Labels to set (replaces existing labels)",
					Items:       &gollem.Parameter{Type: gollem.TypeString},
				},
				"assignees": {
					Type:        gollem.TypeArray,
					Description: "Usernames to assign (replaces existing assignees)",
					Items:       &gollem.Parameter{Type: gollem.TypeString},
				},
				"milestone": {
					Type:        gollem.TypeInteger,
					Description: "Milestone number (0 removes the milestone)",
				},
			},
			handler: handleUpdateIssue,
		},
		{
			name:        "comment_issue",
			description: "Add a comment to an issue or pull request",
			scope:       types.ScopeRepository,
			required:    []string{"issue_number", "body"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"issue_number": {
					Type:        gollem.TypeInteger,
					Description: "Issue or pull request number",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "Comment body (supports Markdown)",
				},
			},
			handler: handleCommentIssue,
		},
	}
}

func handleListIssues(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.IssueListByRepoOptions{
		State:       p.String("state", "open"),
		Labels:      p.StringSlice("labels"),
		Assignee:    p.String("assignee", ""),
		Creator:     p.String("creator", ""),
		Mentioned:   p.String("mentioned", ""),
		Sort:        p.String("sort", "created"),
		Direction:   p.String("direction", "desc"),
		ListOptions: github.ListOptions{PerPage: limit},
	}

	issues, err := gh.ListIssues(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(issues))
	for _, issue := range issues {
		// The issues API returns pull requests as issues; skip them
		if issue.IsPullRequest() {
			continue
		}
		if len(list) >= limit {
			break
		}
		list = append(list, issueToMap(issue))
	}

	return map[string]any{
		"repository": ref.String(),
		"state":      opts.State,
		"count":      len(list),
		"issues":     list,
	}, nil
}

func handleGetIssue(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	number := p.Int("issue_number", 0)

	issue, err := gh.GetIssue(ctx, ref.Owner, ref.Name, number)
	if err != nil {
		return nil, err
	}

	output := issueToMap(issue)
	output["repository"] = ref.String()
	output["body"] = issue.GetBody()

	if p.Bool("include_comments", false) {
		limit := clampLimit(p.Int("comments_limit", 10))
		comments, err := gh.ListIssueComments(ctx, ref.Owner, ref.Name, number, &github.IssueListCommentsOptions{
			ListOptions: github.ListOptions{PerPage: limit},
		})
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(comments))
		for _, comment := range comments {
			if len(list) >= limit {
				break
			}
			list = append(list, issueCommentToMap(comment))
		}
		output["comments_list"] = list
	}

	return output, nil
}

func handleCreateIssue(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(p.String("title", "")),
	}
	if p.Has("body") {
		req.Body = github.Ptr(p.String("body", ""))
	}
	if labels := p.StringSlice("labels"); len(labels) > 0 {
		req.Labels = &labels
	}
	if assignees := p.StringSlice("assignees"); len(assignees) > 0 {
		req.Assignees = &assignees
	}
	if p.Has("milestone") {
		req.Milestone = github.Ptr(p.Int("milestone", 0))
	}

	issue, err := gh.CreateIssue(ctx, ref.Owner, ref.Name, req)
	if err != nil {
		return nil, err
	}

	output := issueToMap(issue)
	output["repository"] = ref.String()
	return output, nil
}

func handleUpdateIssue(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	req := &github.IssueRequest{}
	if p.Has("title") {
		req.Title = github.Ptr(p.String("title", ""))
	}
	if p.Has("body") {
		req.Body = github.Ptr(p.String("body", ""))
	}
	if p.Has("state") {
		req.State = github.Ptr(p.String("state", ""))
	}
	if p.Has("labels") {
		labels := p.StringSlice("labels")
		req.Labels = &labels
	}
	if p.Has("assignees") {
		assignees := p.StringSlice("assignees")
		req.Assignees = &assignees
	}
	if p.Has("milestone") {
		req.Milestone = github.Ptr(p.Int("milestone", 0))
	}

	issue, err := gh.EditIssue(ctx, ref.Owner, ref.Name, p.Int("issue_number", 0), req)
	if err != nil {
		return nil, err
	}

	output := issueToMap(issue)
	output["repository"] = ref.String()
	return output, nil
}

func handleCommentIssue(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	comment, err := gh.CreateIssueComment(ctx, ref.Owner, ref.Name, p.Int("issue_number", 0), &github.IssueComment{
		Body: github.Ptr(p.String("body", "")),
	})
	if err != nil {
		return nil, err
	}

	output := issueCommentToMap(comment)
	output["repository"] = ref.String()
	output["issue_number"] = p.Int("issue_number", 0)
	return output, nil
}

// clampLimit bounds a caller-supplied item limit to 1..100.
func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > 100 {
		return 100
	}
	return limit
}
