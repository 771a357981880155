package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func actionsOperations() []*descriptor {
	workflowIDParam := &gollem.Parameter{
		Type:        gollem.TypeString,
		Description: "Workflow ID (numeric) or workflow file name (e.g. 'ci.yml')",
	}
	runIDParam := &gollem.Parameter{
		Type:        gollem.TypeInteger,
		Description: "Workflow run ID",
	}

	return []*descriptor{
		{
			name:        "list_workflows",
			description: "List GitHub Actions workflows defined in a repository",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"limit":      limitParam(),
			},
			handler: handleListWorkflows,
		},
		{
			name:        "get_workflow",
			description: "Get a workflow by ID or file name",
			scope:       types.ScopeRepository,
			required:    []string{"workflow_id"},
			params: map[string]*gollem.Parameter{
				"repository":  repoParam(),
				"workflow_id": workflowIDParam,
			},
			handler: handleGetWorkflow,
		},
		{
			name:        "trigger_workflow",
			description: "Trigger a workflow_dispatch event for a workflow on a given ref",
			scope:       types.ScopeRepository,
			required:    []string{"workflow_id"},
			params: map[string]*gollem.Parameter{
				"repository":  repoParam(),
				"workflow_id": workflowIDParam,
				"ref": {
					Type:        gollem.TypeString,
					Description: "Branch or tag to run on (default: default branch)",
				},
				"inputs": {
					Type:        gollem.TypeObject,
					Description: "Workflow dispatch inputs",
				},
			},
			handler: handleTriggerWorkflow,
		},
		{
			name:        "list_workflow_runs",
			description: "List workflow runs with optional filters for status, branch, and actor",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"status": {
					Type:        gollem.TypeString,
					Description: "Filter by run status or conclusion (e.g. 'completed', 'in_progress', 'failure')",
				},
				"branch": {
					Type:        gollem.TypeString,
					Description: "Filter by head branch",
				},
				"actor": {
					Type:        gollem.TypeString,
					Description: "Filter by the user who triggered the run",
				},
				"limit": limitParam(),
			},
			handler: handleListWorkflowRuns,
		},
		{
			name:        "get_workflow_run",
			description: "Get a workflow run, optionally including its jobs",
			scope:       types.ScopeRepository,
			required:    []string{"run_id"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"run_id":     runIDParam,
				"include_jobs": {
					Type:        gollem.TypeBoolean,
					Description: "Include the run's jobs (default: false)",
				},
			},
			handler: handleGetWorkflowRun,
		},
		{
			name:        "cancel_workflow_run",
			description: "Cancel an in-progress workflow run",
			scope:       types.ScopeRepository,
			required:    []string{"run_id"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"run_id":     runIDParam,
			},
			handler: handleCancelWorkflowRun,
		},
		{
			name:        "rerun_workflow",
			description: "Re-run a workflow run, optionally only its failed jobs",
			scope:       types.ScopeRepository,
			required:    []string{"run_id"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"run_id":     runIDParam,
				"failed_jobs_only": {
					Type:        gollem.TypeBoolean,
					Description: "Only re-run failed jobs (default: false)",
				},
			},
			handler: handleRerunWorkflow,
		},
	}
}

func handleListWorkflows(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	workflows, err := gh.ListWorkflows(ctx, ref.Owner, ref.Name, &github.ListOptions{PerPage: limit})
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(workflows.Workflows))
	for _, workflow := range workflows.Workflows {
		if len(list) >= limit {
			break
		}
		list = append(list, workflowToMap(workflow))
	}

	return map[string]any{
		"repository": ref.String(),
		"total":      workflows.GetTotalCount(),
		"count":      len(list),
		"workflows":  list,
	}, nil
}

// getWorkflow resolves workflow_id as a numeric ID or a file name.
func getWorkflow(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (*github.Workflow, error) {
	if id, ok := workflowNumericID(p); ok {
		return gh.GetWorkflowByID(ctx, ref.Owner, ref.Name, id)
	}
	fileName := p.String("workflow_id", "")
	if fileName == "" {
		return nil, goerr.New("workflow_id must be a numeric ID or a workflow file name",
			goerr.T(types.ErrTagValidation))
	}
	return gh.GetWorkflowByFileName(ctx, ref.Owner, ref.Name, fileName)
}

// workflowNumericID extracts workflow_id when it is numeric. JSON numbers
// and numeric strings both count.
func workflowNumericID(p model.Params) (int64, bool) {
	switch v := p["workflow_id"].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

func handleGetWorkflow(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	workflow, err := getWorkflow(ctx, gh, ref, p)
	if err != nil {
		return nil, err
	}

	output := workflowToMap(workflow)
	output["repository"] = ref.String()
	output["created_at"] = timestamp(workflow.GetCreatedAt())
	output["updated_at"] = timestamp(workflow.GetUpdatedAt())
	return output, nil
}

func handleTriggerWorkflow(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	dispatchRef := p.String("ref", "")
	if dispatchRef == "" {
		repo, err := gh.GetRepository(ctx, ref.Owner, ref.Name)
		if err != nil {
			return nil, err
		}
		dispatchRef = repo.GetDefaultBranch()
	}

	req := github.CreateWorkflowDispatchEventRequest{
		Ref:    dispatchRef,
		Inputs: p.Object("inputs"),
	}

	if id, ok := workflowNumericID(p); ok {
		if err := gh.DispatchWorkflowByID(ctx, ref.Owner, ref.Name, id, req); err != nil {
			return nil, err
		}
	} else {
		if err := gh.DispatchWorkflowByFileName(ctx, ref.Owner, ref.Name, p.String("workflow_id", ""), req); err != nil {
			return nil, err
		}
	}

	return map[string]any{
		"repository":  ref.String(),
		"workflow_id": p["workflow_id"],
		"ref":         dispatchRef,
		"triggered":   true,
	}, nil
}

func handleListWorkflowRuns(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.ListWorkflowRunsOptions{
		Status:      p.String("status", ""),
		Branch:      p.String("branch", ""),
		Actor:       p.String("actor", ""),
		ListOptions: github.ListOptions{PerPage: limit},
	}

	runs, err := gh.ListWorkflowRuns(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		if len(list) >= limit {
			break
		}
		list = append(list, workflowRunToMap(run))
	}

	return map[string]any{
		"repository": ref.String(),
		"total":      runs.GetTotalCount(),
		"count":      len(list),
		"runs":       list,
	}, nil
}

func handleGetWorkflowRun(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	runID := p.Int64("run_id", 0)

	run, err := gh.GetWorkflowRun(ctx, ref.Owner, ref.Name, runID)
	if err != nil {
		return nil, err
	}

	output := workflowRunToMap(run)
	output["repository"] = ref.String()

	if p.Bool("include_jobs", false) {
		jobs, err := gh.ListWorkflowJobs(ctx, ref.Owner, ref.Name, runID, &github.ListWorkflowJobsOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		})
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(jobs.Jobs))
		for _, job := range jobs.Jobs {
			list = append(list, workflowJobToMap(job))
		}
		output["jobs"] = list
	}

	return output, nil
}

func handleCancelWorkflowRun(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	runID := p.Int64("run_id", 0)

	if err := gh.CancelWorkflowRun(ctx, ref.Owner, ref.Name, runID); err != nil {
		return nil, err
	}

	return map[string]any{
		"repository": ref.String(),
		"run_id":     runID,
		"cancelled":  true,
	}, nil
}

func handleRerunWorkflow(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	runID := p.Int64("run_id", 0)
	failedOnly := p.Bool("failed_jobs_only", false)

	var err error
	if failedOnly {
		err = gh.RerunFailedJobs(ctx, ref.Owner, ref.Name, runID)
	} else {
		err = gh.RerunWorkflow(ctx, ref.Owner, ref.Name, runID)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"repository":       ref.String(),
		"run_id":           runID,
		"rerun":            true,
		"failed_jobs_only": failedOnly,
	}, nil
}
