package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
)

// Issue operations

func (c *client) ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
	issues, _, err := c.gh.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return issues, nil
}

func (c *client) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, classify(err, "issue", goerr.V("repository", owner+"/"+repo), goerr.V("issue_number", number))
	}
	return issue, nil
}

func (c *client) ListIssueComments(ctx context.Context, owner, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, error) {
	comments, _, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, classify(err, "issue", goerr.V("repository", owner+"/"+repo), goerr.V("issue_number", number))
	}
	return comments, nil
}

func (c *client) CreateIssue(ctx context.Context, owner, repo string, req *github.IssueRequest) (*github.Issue, error) {
	issue, _, err := c.gh.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return issue, nil
}

func (c *client) EditIssue(ctx context.Context, owner, repo string, number int, req *github.IssueRequest) (*github.Issue, error) {
	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, req)
	if err != nil {
		return nil, classify(err, "issue", goerr.V("repository", owner+"/"+repo), goerr.V("issue_number", number))
	}
	return issue, nil
}

func (c *client) CreateIssueComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, error) {
	created, _, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return nil, classify(err, "issue", goerr.V("repository", owner+"/"+repo), goerr.V("issue_number", number))
	}
	return created, nil
}

// Pull request operations

func (c *client) ListPullRequests(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, error) {
	prs, _, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return prs, nil
}

func (c *client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return pr, nil
}

func (c *client) CreatePullRequest(ctx context.Context, owner, repo string, req *github.NewPullRequest) (*github.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return pr, nil
}

func (c *client) EditPullRequest(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, error) {
	updated, _, err := c.gh.PullRequests.Edit(ctx, owner, repo, number, pr)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return updated, nil
}

func (c *client) MergePullRequest(ctx context.Context, owner, repo string, number int, message string, opts *github.PullRequestOptions) (*github.PullRequestMergeResult, error) {
	result, _, err := c.gh.PullRequests.Merge(ctx, owner, repo, number, message, opts)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return result, nil
}

func (c *client) CreatePullRequestReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, error) {
	created, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, review)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return created, nil
}

func (c *client) ListPullRequestFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, error) {
	files, _, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return files, nil
}

func (c *client) ListPullRequestCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, error) {
	commits, _, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return commits, nil
}

func (c *client) ListPullRequestReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, error) {
	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, classify(err, "pull request", goerr.V("repository", owner+"/"+repo), goerr.V("pull_number", number))
	}
	return reviews, nil
}

// Repository operations

func (c *client) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return repository, nil
}

func (c *client) ListRepositoriesByUser(ctx context.Context, owner string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error) {
	repos, _, err := c.gh.Repositories.ListByUser(ctx, owner, opts)
	if err != nil {
		return nil, classify(err, "user", goerr.V("owner", owner))
	}
	return repos, nil
}

func (c *client) CreateRepository(ctx context.Context, org string, repo *github.Repository) (*github.Repository, error) {
	created, _, err := c.gh.Repositories.Create(ctx, org, repo)
	if err != nil {
		return nil, classify(err, "organization", goerr.V("organization", org))
	}
	return created, nil
}

func (c *client) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, error) {
	file, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, nil, classify(err, "path", goerr.V("repository", owner+"/"+repo), goerr.V("path", path))
	}
	return file, dir, nil
}

func (c *client) DeleteBranchRef(ctx context.Context, owner, repo, branch string) error {
	if _, err := c.gh.Git.DeleteRef(ctx, owner, repo, "refs/heads/"+branch); err != nil {
		return classify(err, "branch", goerr.V("repository", owner+"/"+repo), goerr.V("branch", branch))
	}
	return nil
}

// Commit operations

func (c *client) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, error) {
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return commits, nil
}

func (c *client) GetCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	commit, _, err := c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, classify(err, "commit", goerr.V("repository", owner+"/"+repo), goerr.V("sha", sha))
	}
	return commit, nil
}

// Branch operations

func (c *client) ListBranches(ctx context.Context, owner, repo string, opts *github.BranchListOptions) ([]*github.Branch, error) {
	branches, _, err := c.gh.Repositories.ListBranches(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return branches, nil
}

func (c *client) GetBranch(ctx context.Context, owner, repo, branch string) (*github.Branch, error) {
	b, _, err := c.gh.Repositories.GetBranch(ctx, owner, repo, branch, 3)
	if err != nil {
		return nil, classify(err, "branch", goerr.V("repository", owner+"/"+repo), goerr.V("branch", branch))
	}
	return b, nil
}

func (c *client) GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, error) {
	reference, _, err := c.gh.Git.GetRef(ctx, owner, repo, ref)
	if err != nil {
		return nil, classify(err, "ref", goerr.V("repository", owner+"/"+repo), goerr.V("ref", ref))
	}
	return reference, nil
}

func (c *client) CreateRef(ctx context.Context, owner, repo string, ref *github.Reference) (*github.Reference, error) {
	created, _, err := c.gh.Git.CreateRef(ctx, owner, repo, github.CreateRef{
		Ref: ref.GetRef(),
		SHA: ref.GetObject().GetSHA(),
	})
	if err != nil {
		return nil, classify(err, "ref", goerr.V("repository", owner+"/"+repo))
	}
	return created, nil
}

func (c *client) CompareCommits(ctx context.Context, owner, repo, base, head string) (*github.CommitsComparison, error) {
	cmp, _, err := c.gh.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		return nil, classify(err, "branch",
			goerr.V("repository", owner+"/"+repo), goerr.V("base", base), goerr.V("head", head))
	}
	return cmp, nil
}

// Release and tag operations

func (c *client) ListReleases(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryRelease, error) {
	releases, _, err := c.gh.Repositories.ListReleases(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return releases, nil
}

func (c *client) GetRelease(ctx context.Context, owner, repo string, id int64) (*github.RepositoryRelease, error) {
	release, _, err := c.gh.Repositories.GetRelease(ctx, owner, repo, id)
	if err != nil {
		return nil, classify(err, "release", goerr.V("repository", owner+"/"+repo), goerr.V("release_id", id))
	}
	return release, nil
}

func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error) {
	release, _, err := c.gh.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, classify(err, "release", goerr.V("repository", owner+"/"+repo), goerr.V("tag", tag))
	}
	return release, nil
}

func (c *client) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, error) {
	release, _, err := c.gh.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, classify(err, "release", goerr.V("repository", owner+"/"+repo))
	}
	return release, nil
}

func (c *client) CreateRelease(ctx context.Context, owner, repo string, release *github.RepositoryRelease) (*github.RepositoryRelease, error) {
	created, _, err := c.gh.Repositories.CreateRelease(ctx, owner, repo, release)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return created, nil
}

func (c *client) ListTags(ctx context.Context, owner, repo string, opts *github.ListOptions) ([]*github.RepositoryTag, error) {
	tags, _, err := c.gh.Repositories.ListTags(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return tags, nil
}

func (c *client) CreateTag(ctx context.Context, owner, repo string, tag *github.Tag) (*github.Tag, error) {
	created, _, err := c.gh.Git.CreateTag(ctx, owner, repo, github.CreateTag{
		Tag:     tag.GetTag(),
		Message: tag.GetMessage(),
		Object:  tag.GetObject().GetSHA(),
		Type:    tag.GetObject().GetType(),
		Tagger:  tag.Tagger,
	})
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return created, nil
}

// Actions operations

func (c *client) ListWorkflows(ctx context.Context, owner, repo string, opts *github.ListOptions) (*github.Workflows, error) {
	workflows, _, err := c.gh.Actions.ListWorkflows(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return workflows, nil
}

func (c *client) GetWorkflowByID(ctx context.Context, owner, repo string, id int64) (*github.Workflow, error) {
	workflow, _, err := c.gh.Actions.GetWorkflowByID(ctx, owner, repo, id)
	if err != nil {
		return nil, classify(err, "workflow", goerr.V("repository", owner+"/"+repo), goerr.V("workflow_id", id))
	}
	return workflow, nil
}

func (c *client) GetWorkflowByFileName(ctx context.Context, owner, repo, fileName string) (*github.Workflow, error) {
	workflow, _, err := c.gh.Actions.GetWorkflowByFileName(ctx, owner, repo, fileName)
	if err != nil {
		return nil, classify(err, "workflow", goerr.V("repository", owner+"/"+repo), goerr.V("workflow_id", fileName))
	}
	return workflow, nil
}

func (c *client) DispatchWorkflowByID(ctx context.Context, owner, repo string, id int64, req github.CreateWorkflowDispatchEventRequest) error {
	if _, err := c.gh.Actions.CreateWorkflowDispatchEventByID(ctx, owner, repo, id, req); err != nil {
		return classify(err, "workflow", goerr.V("repository", owner+"/"+repo), goerr.V("workflow_id", id))
	}
	return nil
}

func (c *client) DispatchWorkflowByFileName(ctx context.Context, owner, repo, fileName string, req github.CreateWorkflowDispatchEventRequest) error {
	if _, err := c.gh.Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, fileName, req); err != nil {
		return classify(err, "workflow", goerr.V("repository", owner+"/"+repo), goerr.V("workflow_id", fileName))
	}
	return nil
}

func (c *client) ListWorkflowRuns(ctx context.Context, owner, repo string, opts *github.ListWorkflowRunsOptions) (*github.WorkflowRuns, error) {
	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
	if err != nil {
		return nil, classify(err, "repository", goerr.V("repository", owner+"/"+repo))
	}
	return runs, nil
}

func (c *client) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*github.WorkflowRun, error) {
	run, _, err := c.gh.Actions.GetWorkflowRunByID(ctx, owner, repo, runID)
	if err != nil {
		return nil, classify(err, "workflow run", goerr.V("repository", owner+"/"+repo), goerr.V("run_id", runID))
	}
	return run, nil
}

func (c *client) ListWorkflowJobs(ctx context.Context, owner, repo string, runID int64, opts *github.ListWorkflowJobsOptions) (*github.Jobs, error) {
	jobs, _, err := c.gh.Actions.ListWorkflowJobs(ctx, owner, repo, runID, opts)
	if err != nil {
		return nil, classify(err, "workflow run", goerr.V("repository", owner+"/"+repo), goerr.V("run_id", runID))
	}
	return jobs, nil
}

func (c *client) CancelWorkflowRun(ctx context.Context, owner, repo string, runID int64) error {
	if _, err := c.gh.Actions.CancelWorkflowRunByID(ctx, owner, repo, runID); err != nil {
		return classify(err, "workflow run", goerr.V("repository", owner+"/"+repo), goerr.V("run_id", runID))
	}
	return nil
}

func (c *client) RerunWorkflow(ctx context.Context, owner, repo string, runID int64) error {
	if _, err := c.gh.Actions.RerunWorkflowByID(ctx, owner, repo, runID); err != nil {
		return classify(err, "workflow run", goerr.V("repository", owner+"/"+repo), goerr.V("run_id", runID))
	}
	return nil
}

func (c *client) RerunFailedJobs(ctx context.Context, owner, repo string, runID int64) error {
	if _, err := c.gh.Actions.RerunFailedJobsByID(ctx, owner, repo, runID); err != nil {
		return classify(err, "workflow run", goerr.V("repository", owner+"/"+repo), goerr.V("run_id", runID))
	}
	return nil
}
