package usecase_test

import (
	"context"
	"testing"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
	"github.com/m-mizutani/shears/pkg/usecase"
)

// handlerMock records the request structs handlers build so their parameter
// mapping can be asserted.
type handlerMock struct {
	interfaces.GitHubClient

	createdIssue      *github.IssueRequest
	getRepository     *github.Repository
	releaseByTag      string
	releaseByID       int64
	latestReleases    int
	dispatchedID      int64
	dispatchedFile    string
	dispatchedReq     github.CreateWorkflowDispatchEventRequest
	pullRequest       *github.PullRequest
	getPullRequestErr error
	deleteBranchErr   error
	deletedBranch     string
}

func (m *handlerMock) Authenticated() bool { return true }

func (m *handlerMock) CreateIssue(ctx context.Context, owner, repo string, req *github.IssueRequest) (*github.Issue, error) {
	m.createdIssue = req
	return &github.Issue{Number: github.Ptr(7), Title: req.Title, State: github.Ptr("open")}, nil
}

func (m *handlerMock) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	return m.getRepository, nil
}

func (m *handlerMock) GetRelease(ctx context.Context, owner, repo string, id int64) (*github.RepositoryRelease, error) {
	m.releaseByID = id
	return &github.RepositoryRelease{ID: github.Ptr(id), TagName: github.Ptr("v1.0.0")}, nil
}

func (m *handlerMock) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, error) {
	m.releaseByTag = tag
	return &github.RepositoryRelease{ID: github.Ptr(int64(1)), TagName: github.Ptr(tag)}, nil
}

func (m *handlerMock) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, error) {
	m.latestReleases++
	return &github.RepositoryRelease{ID: github.Ptr(int64(5)), TagName: github.Ptr("v2.0.0")}, nil
}

func (m *handlerMock) MergePullRequest(ctx context.Context, owner, repo string, number int, message string, opts *github.PullRequestOptions) (*github.PullRequestMergeResult, error) {
	return &github.PullRequestMergeResult{
		Merged: github.Ptr(true),
		SHA:    github.Ptr("abc123"),
	}, nil
}

func (m *handlerMock) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	if m.getPullRequestErr != nil {
		return nil, m.getPullRequestErr
	}
	return m.pullRequest, nil
}

func (m *handlerMock) DeleteBranchRef(ctx context.Context, owner, repo, branch string) error {
	if m.deleteBranchErr != nil {
		return m.deleteBranchErr
	}
	m.deletedBranch = branch
	return nil
}

func (m *handlerMock) DispatchWorkflowByID(ctx context.Context, owner, repo string, id int64, req github.CreateWorkflowDispatchEventRequest) error {
	m.dispatchedID = id
	m.dispatchedReq = req
	return nil
}

func (m *handlerMock) DispatchWorkflowByFileName(ctx context.Context, owner, repo, fileName string, req github.CreateWorkflowDispatchEventRequest) error {
	m.dispatchedFile = fileName
	m.dispatchedReq = req
	return nil
}

func dispatchOK(t *testing.T, mock interfaces.GitHubClient, operation string, params model.Params) *model.Result {
	t.Helper()

	d := usecase.NewDispatcher(mock, newPolicy(t))
	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation:  operation,
		Parameters: params,
	})
	gt.NoError(t, err)
	return result
}

func TestCreateIssue_ParameterMapping(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "create_issue", model.Params{
		"repository": "octocat/Hello-World",
		"title":      "crash on startup",
		"body":       "stack trace attached",
		"labels":     []any{"bug", "p1"},
		"assignees":  []any{"octocat"},
	})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["number"], 7)

	gt.Value(t, mock.createdIssue).NotNil()
	gt.Equal(t, mock.createdIssue.GetTitle(), "crash on startup")
	gt.Equal(t, mock.createdIssue.GetBody(), "stack trace attached")
	gt.Equal(t, *mock.createdIssue.Labels, []string{"bug", "p1"})
	gt.Equal(t, *mock.createdIssue.Assignees, []string{"octocat"})
	// Not provided, must stay unset
	gt.Equal(t, mock.createdIssue.Milestone, nil)
}

func TestGetRelease_ByIDOrTag(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "get_release", model.Params{
		"repository": "octocat/Hello-World",
		"release_id": float64(99),
	})
	gt.True(t, result.Success)
	gt.Equal(t, mock.releaseByID, int64(99))

	result = dispatchOK(t, mock, "get_release", model.Params{
		"repository": "octocat/Hello-World",
		"tag_name":   "v1.0.0",
	})
	gt.True(t, result.Success)
	gt.Equal(t, mock.releaseByTag, "v1.0.0")
}

func TestGetRelease_MissingSelector(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "get_release", model.Params{
		"repository": "octocat/Hello-World",
	})

	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
}

func TestGetRelease_LatestTag(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "get_release", model.Params{
		"repository": "octocat/Hello-World",
		"tag_name":   "latest",
	})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["tag_name"], "v2.0.0")
	gt.Equal(t, mock.latestReleases, 1)
	// Must not be looked up as a literal tag
	gt.Equal(t, mock.releaseByTag, "")
}

func TestMergePullRequest_DeleteBranch(t *testing.T) {
	mock := &handlerMock{
		pullRequest: &github.PullRequest{
			Head: &github.PullRequestBranch{Ref: github.Ptr("feature/login")},
		},
	}

	result := dispatchOK(t, mock, "merge_pull_request", model.Params{
		"repository":    "octocat/Hello-World",
		"pull_number":   float64(12),
		"delete_branch": true,
	})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["merged"], true)
	gt.Equal(t, result.Output["branch_deleted"], true)
	gt.Equal(t, result.Output["deleted_branch"], "feature/login")
	gt.Equal(t, mock.deletedBranch, "feature/login")
}

func TestMergePullRequest_BranchCleanupFailureKeepsSuccess(t *testing.T) {
	// The merge itself committed, so cleanup failures must not flip the
	// result to an error.
	cases := map[string]*handlerMock{
		"head lookup fails": {
			getPullRequestErr: goerr.New("pull request lookup failed"),
		},
		"ref deletion fails": {
			pullRequest: &github.PullRequest{
				Head: &github.PullRequestBranch{Ref: github.Ptr("feature/login")},
			},
			deleteBranchErr: goerr.New("ref deletion failed"),
		},
	}

	for name, mock := range cases {
		t.Run(name, func(t *testing.T) {
			result := dispatchOK(t, mock, "merge_pull_request", model.Params{
				"repository":    "octocat/Hello-World",
				"pull_number":   float64(12),
				"delete_branch": true,
			})

			gt.True(t, result.Success)
			gt.Equal(t, result.Output["merged"], true)
			gt.Equal(t, result.Output["branch_deleted"], false)
			_, reported := result.Output["deleted_branch"]
			gt.Equal(t, reported, false)
		})
	}
}

func TestTriggerWorkflow_NumericID(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "trigger_workflow", model.Params{
		"repository":  "octocat/Hello-World",
		"workflow_id": float64(12345),
		"ref":         "main",
		"inputs":      map[string]any{"env": "staging"},
	})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["triggered"], true)
	gt.Equal(t, mock.dispatchedID, int64(12345))
	gt.Equal(t, mock.dispatchedReq.Ref, "main")
	gt.Equal(t, mock.dispatchedReq.Inputs["env"], "staging")
	gt.Equal(t, mock.dispatchedFile, "")
}

func TestTriggerWorkflow_FileName(t *testing.T) {
	mock := &handlerMock{}

	result := dispatchOK(t, mock, "trigger_workflow", model.Params{
		"repository":  "octocat/Hello-World",
		"workflow_id": "ci.yml",
		"ref":         "main",
	})

	gt.True(t, result.Success)
	gt.Equal(t, mock.dispatchedFile, "ci.yml")
	gt.Equal(t, mock.dispatchedID, int64(0))
}

func TestTriggerWorkflow_DefaultBranchFallback(t *testing.T) {
	mock := &handlerMock{
		getRepository: &github.Repository{DefaultBranch: github.Ptr("develop")},
	}

	result := dispatchOK(t, mock, "trigger_workflow", model.Params{
		"repository":  "octocat/Hello-World",
		"workflow_id": "ci.yml",
	})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["ref"], "develop")
	gt.Equal(t, mock.dispatchedReq.Ref, "develop")
}
