package tool_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/controller/tool"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// mockDispatcher returns canned envelopes and records requests.
type mockDispatcher struct {
	result *model.Result
	err    error
	ops    []model.OperationInfo
	reqs   []*model.DispatchRequest
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req *model.DispatchRequest) (*model.Result, error) {
	m.reqs = append(m.reqs, req)
	return m.result, m.err
}

func (m *mockDispatcher) Operations() []model.OperationInfo {
	return m.ops
}

func (m *mockDispatcher) Schema(operation string) *model.ParameterSchema {
	return nil
}

func TestGitHub_Spec(t *testing.T) {
	mock := &mockDispatcher{
		ops: []model.OperationInfo{
			{Name: "get_issue", Scope: types.ScopeRepository},
			{Name: "list_issues", Scope: types.ScopeRepository},
			{Name: "list_repositories", Scope: types.ScopeUser},
		},
	}

	spec := tool.New(mock).Spec()

	gt.Equal(t, spec.Name, "github")
	gt.Equal(t, spec.Required, []string{"operation", "parameters"})

	operation := spec.Parameters["operation"]
	gt.Value(t, operation).NotNil()
	gt.Equal(t, operation.Enum, []string{"get_issue", "list_issues", "list_repositories"})
}

func TestGitHub_RunSuccess(t *testing.T) {
	mock := &mockDispatcher{
		result: model.NewSuccess(map[string]any{"number": 42}),
	}

	out, err := tool.New(mock).Run(context.Background(), map[string]any{
		"operation": "get_issue",
		"parameters": map[string]any{
			"repository":   "octocat/Hello-World",
			"issue_number": float64(42),
		},
	})

	gt.NoError(t, err)
	gt.Equal(t, out["success"], true)

	output := out["output"].(map[string]any)
	gt.Equal(t, output["number"], 42)

	gt.Equal(t, len(mock.reqs), 1)
	gt.Equal(t, mock.reqs[0].Operation, "get_issue")
	gt.Equal(t, mock.reqs[0].Parameters.Int("issue_number", 0), 42)
}

func TestGitHub_RunFailureEnvelope(t *testing.T) {
	mock := &mockDispatcher{
		result: model.NewFailure(types.ErrCodePermissionDenied, "repository not in allowed list", map[string]any{
			"repository": "someone/else",
		}),
	}

	out, err := tool.New(mock).Run(context.Background(), map[string]any{
		"operation":  "get_issue",
		"parameters": map[string]any{"repository": "someone/else"},
	})

	// Domain failures surface in the envelope, not as a tool error.
	gt.NoError(t, err)
	gt.Equal(t, out["success"], false)

	errMap := out["error"].(map[string]any)
	gt.Equal(t, errMap["code"], "PERMISSION_DENIED")
	gt.Equal(t, errMap["message"], "repository not in allowed list")
}

func TestGitHub_RunCancellation(t *testing.T) {
	mock := &mockDispatcher{err: context.Canceled}

	out, err := tool.New(mock).Run(context.Background(), map[string]any{
		"operation":  "get_issue",
		"parameters": map[string]any{},
	})

	gt.Error(t, err)
	gt.Equal(t, out, nil)
}

func TestGitHub_RunMissingOperation(t *testing.T) {
	mock := &mockDispatcher{
		result: model.NewFailure(types.ErrCodeValidation, "missing required field: operation", nil),
	}

	out, err := tool.New(mock).Run(context.Background(), map[string]any{})

	gt.NoError(t, err)
	gt.Equal(t, out["success"], false)
	gt.Equal(t, mock.reqs[0].Operation, "")
}
