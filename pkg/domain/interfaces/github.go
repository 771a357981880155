package interfaces

import (
	"context"

	"github.com/google/go-github/v75/github"
)

// GitHubClient defines the GitHub API surface the operation handlers need.
// Implementations classify API failures into the error taxonomy (tagged
// errors); handlers never inspect raw transport errors.
type GitHubClient interface {
	// Authenticated reports whether the client resolved a usable token.
	// Operations must not be attempted against an unauthenticated client.
	Authenticated() bool

	// RateLimit returns the current core API rate limit state.
	RateLimit(ctx context.Context) (*github.Rate, error)

	// Issues
	ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	ListIssueComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, error)
	CreateIssue(ctx context.Context, owner, repo string, req *github.IssueRequest) (*github.Issue, error)
	EditIssue(ctx context.Context, owner, repo string, number int, req *github.IssueRequest) (*github.Issue, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, error)

	// Pull requests
	ListPullRequests(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	CreatePullRequest(ctx context.Context, owner, repo string, req *github.NewPullRequest) (*github.PullRequest, error)
	EditPullRequest(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, error)
	MergePullRequest(ctx context.Context, owner, repo string, number int, message string, opts *github.PullRequestOptions) (*github.PullRequestMergeResult, error)
	CreatePullRequestReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, error)
	ListPullRequestFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, error)
	ListPullRequestCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, error)
	ListPullRequestReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, error)

	// Repositories
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	ListRepositoriesByUser(ctx context.Context, owner string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error)
	CreateRepository(ctx context.Context, org string, repo *github.Repository) (*github.Repository, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, error)
	DeleteBranchRef(ctx context.Context, owner, repo, branch string) error

	// Commits
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error)

	// Branches
	ListBranches(ctx context.Context, owner, repo string, opts *github.BranchListOptions) ([]*github.Branch, error)
	GetBranch(ctx context.Context, owner, repo, branch string) (*github.Branch, error)
	GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, error)
	CreateRef(ctx context.Context, owner, repo string, ref *github.Reference) (*github.Reference, error)
	CompareCommits(ctx context.Context, owner, repo, base, head string) (*github.CommitsComparison, error)

	// Releases and tags
	ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, error)
	GetRelease(ctx context.Context, owner, repo string, id int64) (*github.RepositoryRelease, error)
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, error)
	CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error)
	ListTags(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryTag, error)
	CreateTag(ctx context.Context, owner, repo string, tag *github.Tag) (*github.Tag, error)

	// Actions
	ListWorkflows(ctx context.Context, owner, repo string, opts *github.ListOptions) (*github.Workflows, error)
	GetWorkflowByID(ctx context.Context, owner, repo string, id int64) (*github.Workflow, error)
	GetWorkflowByFileName(ctx context.Context, owner, repo, fileName string) (*github.Workflow, error)
	DispatchWorkflowByID(ctx context.Context, owner, repo string, id int64, req github.CreateWorkflowDispatchEventRequest) error
	DispatchWorkflowByFileName(ctx context.Context, owner, repo, fileName string, req github.CreateWorkflowDispatchEventRequest) error
	ListWorkflowRuns(ctx context.Context, owner, repo string, opts *github.ListWorkflowRunsOptions) (*github.WorkflowRuns, error)
	GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*github.WorkflowRun, error)
	ListWorkflowJobs(ctx context.Context, owner, repo string, runID int64, opts *github.ListWorkflowJobsOptions) (*github.Jobs, error)
	CancelWorkflowRun(ctx context.Context, owner, repo string, runID int64) error
	RerunWorkflow(ctx context.Context, owner, repo string, runID int64) error
	RerunFailedJobs(ctx context.Context, owner, repo string, runID int64) error
}
