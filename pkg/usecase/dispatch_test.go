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

// mockClient stubs the GitHub API surface. Only the overridden methods are
// usable; calling anything else panics via the embedded nil interface, which
// doubles as a check that handlers stay off the network in rejection paths.
type mockClient struct {
	interfaces.GitHubClient

	authenticated bool

	getIssueFunc   func(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	listIssuesFunc func(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error)
	listReposFunc  func(ctx context.Context, owner string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error)

	calls []string
}

func (m *mockClient) Authenticated() bool {
	return m.authenticated
}

func (m *mockClient) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	m.calls = append(m.calls, "GetIssue:"+owner+"/"+repo)
	return m.getIssueFunc(ctx, owner, repo, number)
}

func (m *mockClient) ListIssues(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
	m.calls = append(m.calls, "ListIssues:"+owner+"/"+repo)
	return m.listIssuesFunc(ctx, owner, repo, opts)
}

func (m *mockClient) ListRepositoriesByUser(ctx context.Context, owner string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error) {
	m.calls = append(m.calls, "ListRepositoriesByUser:"+owner)
	return m.listReposFunc(ctx, owner, opts)
}

func newPolicy(t *testing.T, entries ...string) *model.AccessPolicy {
	t.Helper()
	policy, err := model.NewAccessPolicy(entries)
	gt.NoError(t, err)
	return policy
}

func TestDispatch_UnknownOperation(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "destroy_repository",
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
	gt.String(t, result.Error.Message).Contains("unknown operation")
	gt.String(t, result.Error.Message).Contains("get_issue")
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_EmptyOperation(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
}

func TestDispatch_MissingRequiredParams(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository": "octocat/Hello-World",
		},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
	gt.String(t, result.Error.Message).Contains("issue_number")
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_Unauthenticated(t *testing.T) {
	mock := &mockClient{authenticated: false}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository":   "octocat/Hello-World",
			"issue_number": 1,
		},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeAuthentication)
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_RepositoryDenied(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t, "octocat/Hello-World"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository":   "someone/else",
			"issue_number": 1,
		},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodePermissionDenied)
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_InvalidRepositoryIdentifier(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository":   "not a repo",
			"issue_number": 1,
		},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_AllowedIdentifierForms(t *testing.T) {
	// An allow-list entry and a request identifier in different forms must
	// still match.
	mock := &mockClient{
		authenticated: true,
		getIssueFunc: func(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
			return &github.Issue{
				Number: github.Ptr(42),
				Title:  github.Ptr("found"),
				State:  github.Ptr("open"),
			}, nil
		},
	}
	d := usecase.NewDispatcher(mock, newPolicy(t, "octocat/Hello-World"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository":   "git@github.com:OCTOCAT/hello-world.git",
			"issue_number": 42,
		},
	})

	gt.NoError(t, err)
	gt.True(t, result.Success)
	gt.Equal(t, result.Output["number"], 42)
	gt.Equal(t, len(mock.calls), 1)
}

func TestDispatch_OmittedRepositoryUnbounded(t *testing.T) {
	mock := &mockClient{authenticated: true}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation:  "list_issues",
		Parameters: model.Params{},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
	gt.Equal(t, len(mock.calls), 0)
}

func TestDispatch_FanOut(t *testing.T) {
	mock := &mockClient{
		authenticated: true,
		listIssuesFunc: func(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
			return []*github.Issue{
				{Number: github.Ptr(1), Title: github.Ptr(owner + " issue"), State: github.Ptr("open")},
			}, nil
		},
	}
	d := usecase.NewDispatcher(mock, newPolicy(t, "zeta/repo", "alpha/repo"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation:  "list_issues",
		Parameters: model.Params{},
	})

	gt.NoError(t, err)
	gt.True(t, result.Success)
	gt.Equal(t, result.Output["repository_count"], 2)
	gt.Equal(t, len(mock.calls), 2)

	// Results follow the canonical allow-list order regardless of which
	// goroutine finished first.
	results := result.Output["results"].([]any)
	gt.Equal(t, len(results), 2)
	first := results[0].(map[string]any)
	second := results[1].(map[string]any)
	gt.Equal(t, first["repository"], "alpha/repo")
	gt.Equal(t, second["repository"], "zeta/repo")
}

func TestDispatch_FanOutPartialFailure(t *testing.T) {
	mock := &mockClient{
		authenticated: true,
		listIssuesFunc: func(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
			if owner == "broken" {
				return nil, goerr.New("repository not found",
					goerr.T(types.ErrTagRepoNotFound))
			}
			return nil, nil
		},
	}
	d := usecase.NewDispatcher(mock, newPolicy(t, "broken/repo", "working/repo"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation:  "list_issues",
		Parameters: model.Params{},
	})

	gt.NoError(t, err)
	gt.True(t, result.Success)

	results := result.Output["results"].([]any)
	gt.Equal(t, len(results), 2)

	broken := results[0].(map[string]any)
	gt.Equal(t, broken["repository"], "broken/repo")
	detail := broken["error"].(*model.ErrorDetail)
	gt.Equal(t, detail.Code, types.ErrCodeRepoNotFound)

	working := results[1].(map[string]any)
	gt.Equal(t, working["repository"], "working/repo")
	gt.Equal(t, working["error"], nil)
}

func TestDispatch_FanOutAuthFailureAborts(t *testing.T) {
	mock := &mockClient{
		authenticated: true,
		listIssuesFunc: func(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
			return nil, goerr.New("bad credentials", goerr.T(types.ErrTagAuth))
		},
	}
	d := usecase.NewDispatcher(mock, newPolicy(t, "alpha/repo", "zeta/repo"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation:  "list_issues",
		Parameters: model.Params{},
	})

	gt.NoError(t, err)
	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeAuthentication)
}

func TestDispatch_UserScopeSkipsRepositoryResolution(t *testing.T) {
	mock := &mockClient{
		authenticated: true,
		listReposFunc: func(ctx context.Context, owner string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, error) {
			return []*github.Repository{
				{Name: github.Ptr("Hello-World"), FullName: github.Ptr(owner + "/Hello-World")},
			}, nil
		},
	}
	// Bounded policy must not fan out a user-level operation.
	d := usecase.NewDispatcher(mock, newPolicy(t, "octocat/Hello-World"))

	result, err := d.Dispatch(context.Background(), &model.DispatchRequest{
		Operation: "list_repositories",
		Parameters: model.Params{
			"owner": "octocat",
		},
	})

	gt.NoError(t, err)
	gt.True(t, result.Success)
	gt.Equal(t, len(mock.calls), 1)
	gt.Equal(t, mock.calls[0], "ListRepositoriesByUser:octocat")
}

func TestDispatch_CancelledContext(t *testing.T) {
	mock := &mockClient{
		authenticated: true,
		getIssueFunc: func(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
			return nil, ctx.Err()
		},
	}
	d := usecase.NewDispatcher(mock, newPolicy(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := d.Dispatch(ctx, &model.DispatchRequest{
		Operation: "get_issue",
		Parameters: model.Params{
			"repository":   "octocat/Hello-World",
			"issue_number": 1,
		},
	})

	gt.Error(t, err)
	gt.Equal(t, result, nil)
}

func TestDispatcher_Operations(t *testing.T) {
	d := usecase.NewDispatcher(&mockClient{}, newPolicy(t))

	ops := d.Operations()
	gt.Equal(t, len(ops), 34)

	// Sorted by name
	for i := 1; i < len(ops); i++ {
		gt.True(t, ops[i-1].Name < ops[i].Name)
	}

	names := make(map[string]model.OperationInfo, len(ops))
	for _, op := range ops {
		names[op.Name] = op
	}

	gt.Equal(t, names["create_issue"].Required, []string{"title"})
	gt.Equal(t, names["list_repositories"].Scope, types.ScopeUser)
	gt.Equal(t, names["get_issue"].Scope, types.ScopeRepository)
}

func TestDispatcher_Schema(t *testing.T) {
	d := usecase.NewDispatcher(&mockClient{}, newPolicy(t))

	schema := d.Schema("create_pull_request")
	gt.Value(t, schema).NotNil()
	gt.Equal(t, schema.Required, []string{"title", "head", "base"})
	gt.Value(t, schema.Properties["title"]).NotNil()

	gt.Equal(t, d.Schema("no_such_operation"), nil)
}
