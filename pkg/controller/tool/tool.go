package tool

import (
	"context"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
)

const description = `Interact with GitHub repositories and resources. When repositories are configured in settings, many operations can query across ALL configured repos automatically. Otherwise, specify a repository parameter to target a specific repo. Supports 34 operations for issues, PRs, commits, branches, workflows, releases, and more.

Cross-Repository Queries (when repositories configured):
- list_issues: Find issues across all your configured repos (filter by assignee, creator, labels)
- list_pull_requests: Find PRs across all your repos (filter by state, author)

Repository-Specific Operations:
- All operations work on a specific repository when 'repository' parameter is provided
- Examples: get_commit, create_branch, trigger_workflow, merge_pull_request

User-Level Operations:
- list_repositories: List repos for a user/org
- create_repository: Create a new repo`

// GitHub is the unified tool exposed to the agent framework: a single
// "github" tool whose operation parameter selects one of the registered
// GitHub operations.
type GitHub struct {
	dispatcher interfaces.Dispatcher
}

// New creates the unified GitHub tool backed by the given dispatcher.
func New(dispatcher interfaces.Dispatcher) *GitHub {
	return &GitHub{dispatcher: dispatcher}
}

// Spec implements gollem.Tool.
func (t *GitHub) Spec() gollem.ToolSpec {
	ops := t.dispatcher.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}

	return gollem.ToolSpec{
		Name:        "github",
		Description: description,
		Parameters: map[string]*gollem.Parameter{
			"operation": {
				Type:        gollem.TypeString,
				Description: "The GitHub operation to perform",
				Enum:        names,
			},
			"parameters": {
				Type:        gollem.TypeObject,
				Description: "Parameters for the specific operation (schema varies by operation)",
			},
		},
		Required: []string{"operation", "parameters"},
	}
}

// Run implements gollem.Tool. Every failure except context cancellation is
// reported inside the returned envelope.
func (t *GitHub) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	req := &model.DispatchRequest{}
	if op, ok := args["operation"].(string); ok {
		req.Operation = op
	}
	if params, ok := args["parameters"].(map[string]any); ok {
		req.Parameters = model.Params(params)
	}

	result, err := t.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	return envelopeToMap(result), nil
}

func envelopeToMap(result *model.Result) map[string]any {
	out := map[string]any{"success": result.Success}
	if result.Output != nil {
		out["output"] = result.Output
	}
	if result.Error != nil {
		errMap := map[string]any{
			"code":    string(result.Error.Code),
			"message": result.Error.Message,
		}
		if result.Error.Details != nil {
			errMap["details"] = result.Error.Details
		}
		out["error"] = errMap
	}
	return out
}
