package usecase

import (
	"context"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func releaseOperations() []*descriptor {
	return []*descriptor{
		{
			name:        "list_releases",
			description: "List releases in a repository, optionally including drafts and prereleases",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"include_drafts": {
					Type:        gollem.TypeBoolean,
					Description: "Include draft releases (default: false)",
				},
				"include_prereleases": {
					Type:        gollem.TypeBoolean,
					Description: "Include prereleases (default: true)",
				},
				"limit": limitParam(),
			},
			handler: handleListReleases,
		},
		{
			name:        "get_release",
			description: "Get a release by ID or by tag name (one of release_id or tag_name is required)",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"release_id": {
					Type:        gollem.TypeInteger,
					Description: "Release ID",
				},
				"tag_name": {
					Type:        gollem.TypeString,
					Description: "Tag name of the release, or \"latest\" for the latest published release",
				},
			},
			handler: handleGetRelease,
		},
		{
			name:        "create_release",
			description: "Create a release for a tag, optionally as draft or prerelease with generated notes",
			scope:       types.ScopeRepository,
			required:    []string{"tag_name"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"tag_name": {
					Type:        gollem.TypeString,
					Description: "Tag to release (created if missing)",
				},
				"name": {
					Type:        gollem.TypeString,
					Description: "Release title (default: tag name)",
				},
				"body": {
					Type:        gollem.TypeString,
					Description: "Release notes (supports Markdown)",
				},
				"draft": {
					Type:        gollem.TypeBoolean,
					Description: "Create as draft (default: false)",
				},
				"prerelease": {
					Type:        gollem.TypeBoolean,
					Description: "Mark as prerelease (default: false)",
				},
				"target_commitish": {
					Type:        gollem.TypeString,
					Description: "Commitish the tag is created from (default: default branch)",
				},
				"generate_release_notes": {
					Type:        gollem.TypeBoolean,
					Description: "Auto-generate release notes (default: false)",
				},
			},
			handler: handleCreateRelease,
		},
		{
			name:        "list_tags",
			description: "List tags in a repository",
			scope:       types.ScopeRepository,
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"limit":      limitParam(),
			},
			handler: handleListTags,
		},
		{
			name:        "create_tag",
			description: "Create a lightweight or annotated tag pointing at a commit",
			scope:       types.ScopeRepository,
			required:    []string{"tag"},
			params: map[string]*gollem.Parameter{
				"repository": repoParam(),
				"tag": {
					Type:        gollem.TypeString,
					Description: "Tag name",
				},
				"message": {
					Type:        gollem.TypeString,
					Description: "Tag message; creates an annotated tag when given",
				},
				"object_sha": {
					Type:        gollem.TypeString,
					Description: "SHA to tag (default: head of the default branch)",
				},
				"tagger_name": {
					Type:        gollem.TypeString,
					Description: "Tagger name for annotated tags",
				},
				"tagger_email": {
					Type:        gollem.TypeString,
					Description: "Tagger email for annotated tags",
				},
			},
			handler: handleCreateTag,
		},
	}
}

func handleListReleases(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))
	includeDrafts := p.Bool("include_drafts", false)
	includePrereleases := p.Bool("include_prereleases", true)

	releases, err := gh.ListReleases(ctx, ref.Owner, ref.Name, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(releases))
	for _, release := range releases {
		if release.GetDraft() && !includeDrafts {
			continue
		}
		if release.GetPrerelease() && !includePrereleases {
			continue
		}
		if len(list) >= limit {
			break
		}
		list = append(list, releaseToMap(release))
	}

	return map[string]any{
		"repository": ref.String(),
		"count":      len(list),
		"releases":   list,
	}, nil
}

func handleGetRelease(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	var release *github.RepositoryRelease
	var err error

	switch {
	case p.Has("release_id"):
		release, err = gh.GetRelease(ctx, ref.Owner, ref.Name, p.Int64("release_id", 0))
	case p.Has("tag_name"):
		if tag := p.String("tag_name", ""); tag == "latest" {
			release, err = gh.GetLatestRelease(ctx, ref.Owner, ref.Name)
		} else {
			release, err = gh.GetReleaseByTag(ctx, ref.Owner, ref.Name, tag)
		}
	default:
		return nil, goerr.New("either release_id or tag_name is required",
			goerr.T(types.ErrTagValidation))
	}
	if err != nil {
		return nil, err
	}

	output := releaseToMap(release)
	output["repository"] = ref.String()
	output["body"] = release.GetBody()
	return output, nil
}

func handleCreateRelease(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(p.String("tag_name", "")),
		Draft:      github.Ptr(p.Bool("draft", false)),
		Prerelease: github.Ptr(p.Bool("prerelease", false)),
	}
	if p.Has("name") {
		release.Name = github.Ptr(p.String("name", ""))
	}
	if p.Has("body") {
		release.Body = github.Ptr(p.String("body", ""))
	}
	if p.Has("target_commitish") {
		release.TargetCommitish = github.Ptr(p.String("target_commitish", ""))
	}
	if p.Bool("generate_release_notes", false) {
		release.GenerateReleaseNotes = github.Ptr(true)
	}

	created, err := gh.CreateRelease(ctx, ref.Owner, ref.Name, release)
	if err != nil {
		return nil, err
	}

	output := releaseToMap(created)
	output["repository"] = ref.String()
	return output, nil
}

func handleListTags(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	limit := clampLimit(p.Int("limit", 30))

	tags, err := gh.ListTags(ctx, ref.Owner, ref.Name, &github.ListOptions{PerPage: limit})
	if err != nil {
		return nil, err
	}

	list := make([]any, 0, len(tags))
	for _, tag := range tags {
		if len(list) >= limit {
			break
		}
		list = append(list, repositoryTagToMap(tag))
	}

	return map[string]any{
		"repository": ref.String(),
		"count":      len(list),
		"tags":       list,
	}, nil
}

func handleCreateTag(ctx context.Context, gh interfaces.GitHubClient, ref model.RepoRef, p model.Params) (map[string]any, error) {
	tagName := p.String("tag", "")

	sha := p.String("object_sha", "")
	if sha == "" {
		repo, err := gh.GetRepository(ctx, ref.Owner, ref.Name)
		if err != nil {
			return nil, err
		}
		head, err := gh.GetRef(ctx, ref.Owner, ref.Name, "refs/heads/"+repo.GetDefaultBranch())
		if err != nil {
			return nil, err
		}
		sha = head.GetObject().GetSHA()
	}

	annotated := p.Has("message")
	if annotated {
		tag := &github.Tag{
			Tag:     github.Ptr(tagName),
			Message: github.Ptr(p.String("message", "")),
			Object:  &github.GitObject{SHA: github.Ptr(sha), Type: github.Ptr("commit")},
		}
		if p.Has("tagger_name") || p.Has("tagger_email") {
			tag.Tagger = &github.CommitAuthor{
				Name:  github.Ptr(p.String("tagger_name", "")),
				Email: github.Ptr(p.String("tagger_email", "")),
				Date:  &github.Timestamp{Time: time.Now().UTC()},
			}
		}
		created, err := gh.CreateTag(ctx, ref.Owner, ref.Name, tag)
		if err != nil {
			return nil, err
		}
		sha = created.GetSHA()
	}

	// Both tag kinds need a ref; annotated tags point the ref at the tag
	// object, lightweight ones directly at the commit.
	created, err := gh.CreateRef(ctx, ref.Owner, ref.Name, &github.Reference{
		Ref:    github.Ptr("refs/tags/" + tagName),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	})
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"repository": ref.String(),
		"tag":        tagName,
		"sha":        created.GetObject().GetSHA(),
		"annotated":  annotated,
	}, nil
}
