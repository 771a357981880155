package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
	"github.com/m-mizutani/shears/pkg/utils/async"
)

// dispatcher routes dispatch requests to operation handlers. All fields are
// immutable after construction; concurrent Dispatch calls share no mutable
// state.
type dispatcher struct {
	gh       interfaces.GitHubClient
	policy   *model.AccessPolicy
	registry map[string]*descriptor
}

// NewDispatcher creates the operation dispatcher. The registry is built
// once here; the policy and client are shared read-only.
func NewDispatcher(gh interfaces.GitHubClient, policy *model.AccessPolicy) interfaces.Dispatcher {
	return &dispatcher{
		gh:       gh,
		policy:   policy,
		registry: newRegistry(),
	}
}

// Dispatch implements interfaces.Dispatcher. Every failure except context
// cancellation is reported inside the envelope; no error from the GitHub
// client or a handler escapes as a raw error.
func (d *dispatcher) Dispatch(ctx context.Context, req *model.DispatchRequest) (*model.Result, error) {
	logger := ctxlog.From(ctx)

	if req.Operation == "" {
		return model.NewFailure(types.ErrCodeValidation, "missing required field: operation", nil), nil
	}

	desc, ok := d.registry[req.Operation]
	if !ok {
		return model.NewFailure(types.ErrCodeValidation,
			"unknown operation: "+req.Operation+". Available operations: "+strings.Join(operationNames(d.registry), ", "),
			map[string]any{"operation": req.Operation}), nil
	}

	params := req.Parameters
	if params == nil {
		params = model.Params{}
	}

	if missing := missingParams(desc, params); len(missing) > 0 {
		return model.NewFailure(types.ErrCodeValidation,
			"missing required parameter(s): "+strings.Join(missing, ", "),
			map[string]any{"operation": desc.name, "missing": missing}), nil
	}

	if !d.gh.Authenticated() {
		return model.NewFailure(types.ErrCodeAuthentication,
			"GitHub client is not authenticated, configure a token", nil), nil
	}

	logger.Debug("dispatching GitHub operation", "operation", desc.name)

	if desc.scope == types.ScopeUser {
		return d.invoke(ctx, desc, model.RepoRef{}, params)
	}

	if params.Has("repository") {
		ref, err := model.ParseRepoRef(params.String("repository", ""))
		if err != nil {
			return model.NewFailureFromError(err), nil
		}
		if !d.policy.Allows(ref) {
			return model.NewFailure(types.ErrCodePermissionDenied,
				"repository not in allowed list: "+ref.String(),
				map[string]any{"repository": ref.String(), "allowed": allowedNames(d.policy)}), nil
		}
		return d.invoke(ctx, desc, ref, params)
	}

	if !d.policy.Bounded() {
		return model.NewFailure(types.ErrCodeValidation,
			"repository parameter is required when no repository allow-list is configured",
			map[string]any{"operation": desc.name}), nil
	}

	return d.fanOut(ctx, desc, params)
}

// invoke runs a single handler call and wraps its outcome.
func (d *dispatcher) invoke(ctx context.Context, desc *descriptor, ref model.RepoRef, params model.Params) (*model.Result, error) {
	output, err := desc.handler(ctx, d.gh, ref, params)
	if err != nil {
		if cancelled(ctx, err) {
			return nil, err
		}
		ctxlog.From(ctx).Warn("GitHub operation failed", "operation", desc.name, "error", err)
		return model.NewFailureFromError(err), nil
	}
	return model.NewSuccess(output), nil
}

// fanOut runs the operation once per allowed repository. Calls run
// concurrently, but results are slotted by the pre-sorted allow-list index
// so output ordering is deterministic. Per-repository failures aggregate as
// per-item errors; an authentication failure aborts the whole call since it
// would recur identically everywhere.
func (d *dispatcher) fanOut(ctx context.Context, desc *descriptor, params model.Params) (*model.Result, error) {
	refs := d.policy.Allowed()
	items := make([]map[string]any, len(refs))

	err := async.Each(ctx, len(refs), func(taskCtx context.Context, i int) error {
		ref := refs[i]
		output, err := desc.handler(taskCtx, d.gh, ref, params)
		if err != nil {
			if cancelled(taskCtx, err) {
				return err
			}
			if goerr.HasTag(err, types.ErrTagAuth) {
				return err
			}
			detail := model.NewFailureFromError(err)
			items[i] = map[string]any{
				"repository": ref.String(),
				"error":      detail.Error,
			}
			return nil
		}
		items[i] = map[string]any{
			"repository": ref.String(),
			"output":     output,
		}
		return nil
	})

	if err != nil {
		if cancelled(ctx, err) {
			return nil, err
		}
		return model.NewFailureFromError(err), nil
	}

	results := make([]any, len(items))
	for i, item := range items {
		results[i] = item
	}

	return model.NewSuccess(map[string]any{
		"operation":        desc.name,
		"repository_count": len(refs),
		"results":          results,
	}), nil
}

// Operations implements interfaces.Dispatcher.
func (d *dispatcher) Operations() []model.OperationInfo {
	infos := make([]model.OperationInfo, 0, len(d.registry))
	for _, name := range operationNames(d.registry) {
		desc := d.registry[name]
		infos = append(infos, model.OperationInfo{
			Name:        desc.name,
			Description: desc.description,
			Scope:       desc.scope,
			Required:    desc.required,
		})
	}
	return infos
}

// Schema implements interfaces.Dispatcher.
func (d *dispatcher) Schema(operation string) *model.ParameterSchema {
	desc, ok := d.registry[operation]
	if !ok {
		return nil
	}
	return &model.ParameterSchema{
		Properties: desc.params,
		Required:   desc.required,
	}
}

func missingParams(desc *descriptor, params model.Params) []string {
	var missing []string
	for _, key := range desc.required {
		if !params.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

func allowedNames(policy *model.AccessPolicy) []string {
	refs := policy.Allowed()
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.String()
	}
	return names
}

// cancelled reports whether err (or the context itself) represents caller
// cancellation rather than an operation failure.
func cancelled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
