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

func repositoryOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "get_repository",
			description: "Get repository metadata: description, default branch, visibility, and counters",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
			},
			handler: handleGetRepository,
		},
		{
			name:        "get_file_content",
			description: "Read a file from a repository at an optional ref, with optional base64 decoding",
			scope:       types.ScopeRepository,
			required:    []string{"path"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"path": {
					Type:        gollem.TypeString,
					Description: "File path within the repository",
				},
				"ref": {
					Type:        gollem.TypeString,
					Description: "Branch, tag, or commit SHA (default: default branch)",
				},
				"decode": {
					Type:        gollem.TypeBoolean,
					Description: "Return decoded text content instead of base64 (default: true)",
				},
			},
			handler: handleGetFileContent,
		},
		{
			name:        "list_repository_contents",
			description: "List files and directories at a path within a repository",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"path": {
					Type:        gollem.TypeString,
					Description: "Directory path (default: repository root)",
				},
				"ref": {
					Type:        gollem.TypeString,
					Description: "Branch, tag, or commit SHA (default: default branch)",
				},
			},
			handler: handleListRepositoryContents,
		},
		{
			name:        "list_repositories",
			description: "List repositories belonging to a user or organization",
			scope:       types.ScopeUser,
			required:    []string{"owner"},
			params: map[string]*gollem.Parameter{
				"owner": {
					Type:        gollem.TypeString,
					Description: "Username or organization name",
				},
				"type": {
					Type:        gollem.TypeString,
					Description: "Repository type filter (default: all)",
					Enum:        []string{"all", "owner", "member"},
				},
				"sort": {
					Type:        gollem.TypeString,
					Description: "Sort field (default: full_name)",
					Enum:        []string{"created", "updated", "pushed", "full_name"},
				},
				"direction": {
					Type:        gollem.TypeString,
					Description: "Sort direction",
					Enum:        []string{"asc", "desc"},
				},
				"limit": limitParam(),
			},
			handler: handleListRepositories,
		},
		{
			name:        "create_repository",
			description: "Create a new repository for the authenticated user or an organization",
			scope:       types.ScopeUser,
			required:    []string{"name"},
			params: map[string]*gollem.Parameter{
				"name": {
					Type:        gollem.TypeString,
					Description: "Repository name",
				},
				"description": {
					Type:        gollem.TypeString,
					Description: "Repository description",
				},
				"private": {
					Type:        gollem.TypeBoolean,
					Description: "Create as private repository (default: false)",
				},
				"organization": {
					Type:        gollem.TypeString,
					Description: "Organization to create the repository in (default: authenticated user)",
				},
				"auto_init": {
					Type:        gollem.TypeBoolean,
					Description: "Initialize with an empty README (default: false)",
				},
				"gitignore_template": {
					Type:        gollem.TypeString,
					Description: "Gitignore template name (e.g. 'Go', 'Python')",
				},
				"license_template": {
					Type:        gollem.TypeString,
					Description: "License template keyword (e.g. 'mit', 'apache-2.0')",
				},
			},
			handler: handleCreateRepository,
		},
	}
}

func handleGetRepository(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, _ model.Params) (map[string]any, error) {
	repo, err := gh.GetRepository(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, err
	}

	output := repositoryToMap(repo)
	output["topics"] = repo.Topics
	output["created_at"] = timestamp(repo.GetCreatedAt())
	output["pushed_at"] = timestamp(repo.GetPushedAt())
	return output, nil
}

func handleGetFileContent(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	opts := &github.RepositoryContentGetOptions{Ref: p.String("ref", "")}

	path := p.String("path", "")
	file, _, err := gh.GetContents(ctx, ref.Owner, ref.Name, path, opts)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, goerr.New("path is a directory, use list_repository_contents",
			goerr.T(types.ErrTagValidation), goerr.V("path", path))
	}

	output := contentToMap(file)
	output["repository"] = ref.String()

	if p.Bool("decode", true) {
		content, err := file.GetContent()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decode file content",
				goerr.T(types.ErrTagValidation), goerr.V("path", path))
		}
		output["content"] = content
		output["encoding"] = "utf-8"
	} else {
		if file.Content != nil {
			output["content"] = *file.Content
		}
		output["encoding"] = file.GetEncoding()
	}

	return output, nil
}

func handleListRepositoryContents(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	path := p.String("path", "")
	opts := &github.RepositoryContentGetOptions{Ref: p.String("ref", "")}

	file, dir, err := gh.GetContents(ctx, ref.Owner, ref.Name, path, opts)
	if err != nil {
		return nil, err
	}

	var entries []any
	if dir != nil {
		entries = make([]any, 0, len(dir))
		for _, entry := range dir {
			entries = append(entries, contentToMap(entry))
		}
	} else if file != nil {
		entries = []any{contentToMap(file)}
	}

	return map[string]any{
		"repository": ref.String(),
		"path":       path,
		"count":      len(entries),
		"entries":    entries,
	}, nil
}

func handleListRepositories(ctx context.Context, gh interfaces.GitHubClient, _ model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	opts := &github.RepositoryListByUserOptions{
		Type:        p.String("type", ""),
		Sort:        p.String("sort", ""),
		Direction:   p.String("direction", ""),
		ListOptions: github.ListOptions{PerPage: limit},
	}

	repos, err := gh.ListRepositoriesByUser(ctx, p.String("owner", ""), opts)
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(repos))
	for _, repo := range repos {
		if len(list) >= limit {
			break
		}
		list = append(list, repositoryToMap(repo))
	}

	return map[string]any{
		"owner":        p.String("owner", ""),
		"count":        len(list),
		"repositories": list,
	}, nil
}

func handleCreateRepository(ctx context.Context, gh interfaces.GitHubClient, _ model.RepoRef, p model.Params) (map[string]any, error) {
	repo := &github.Repository{
		Name:    github.Ptr(p.String("name", "")),
		Private: github.Ptr(p.Bool("private", false)),
	}
	if p.Has("description") {
		repo.Description = github.Ptr(p.String("description", ""))
	}
	if p.Has("auto_init") {
		repo.AutoInit = github.Ptr(p.Bool("auto_init", false))
	}
	if p.Has("gitignore_template") {
		repo.GitignoreTemplate = github.Ptr(p.String("gitignore_template", ""))
	}
	if p.Has("license_template") {
		repo.LicenseTemplate = github.Ptr(p.String("license_template", ""))
	}

	created, err := gh.CreateRepository(ctx, p.String("organization", ""), repo)
	if err != nil {
		return nil, err
	}

	output := repositoryToMap(created)
	output["clone_url"] = created.GetCloneURL()
	output["ssh_url"] = created.GetSSHURL()
	return output, nil
}
