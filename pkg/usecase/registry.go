package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// handlerFunc executes one operation against a resolved target. For
// repository-scoped operations ref is the canonical target; user-level
// handlers ignore it.
type handlerFunc func(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error)

// descriptor is one entry of the operation registry: the static metadata of
// an operation plus its handler. Built once at startup, read-only afterwards.
type descriptor struct {
	name        string
	description string
	scope       types.OperationScope
	required    []string // required parameters, "repository" excluded
	params      map[string]*gollem.Parameter
	handler     handlerFunc
}

// newRegistry assembles the full operation table. Operation names are
// unique across categories; the table is immutable after construction.
func newRegistry() map[string]*descriptor {
	registry := make(map[string]*descriptor)

	for _, group := range [][]*descriptor{
		issueOperations(),
		pullRequestOperations(),
		repositoryOperations(),
		commitOperations(),
		branchOperations(),
		releaseOperations(),
		actionsOperations(),
	} {
		for _, d := range group {
			registry[d.name] = d
		}
	}

	return registry
}

// operationNames returns the registry keys sorted ascending.
func operationNames(registry map[string]*descriptor) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// repoParam is the shared "repository" parameter schema attached to every
// repository-scoped operation.
func repoParam() *gollem.Parameter {
	return &gollem.Parameter{
		Type:        gollem.TypeString,
		Description: "Repository as 'owner/repo' or a GitHub URL. Omit to query all configured repositories.",
	}
}

func limitParam() *gollem.Parameter {
	return &gollem.Parameter{
		Type:        gollem.TypeInteger,
		Description: "Maximum number of items to return (1-100)",
	}
}

func invalidTimestamp(key, value string, err error) error {
	return goerr.Wrap(err, key+" must be an RFC 3339 timestamp",
		goerr.T(types.ErrTagValidation), goerr.V(key, value))
}
