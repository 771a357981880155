package usecase

import (
	"time"

	"github.com/google/go-github/v75/github"
)

// Converters from go-github objects to envelope output maps. Field names
// follow the tool's output contract, not go-github's JSON tags.

func timestamp(ts github.Timestamp) any {
	if ts.IsZero() {
		return nil
	}
	return ts.Time.Format(time.RFC3339)
}

func issueToMap(issue *github.Issue) map[string]any {
	labels := make([]any, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	assignees := make([]any, 0, len(issue.Assignees))
	for _, user := range issue.Assignees {
		assignees = append(assignees, user.GetLogin())
	}

	return map[string]any{
		"number":     issue.GetNumber(),
		"title":      issue.GetTitle(),
		"state":      issue.GetState(),
		"author":     issue.GetUser().GetLogin(),
		"created_at": timestamp(issue.GetCreatedAt()),
		"updated_at": timestamp(issue.GetUpdatedAt()),
		"closed_at":  timestamp(issue.GetClosedAt()),
		"labels":     labels,
		"assignees":  assignees,
		"comments":   issue.GetComments(),
		"url":        issue.GetHTMLURL(),
	}
}

func issueCommentToMap(comment *github.IssueComment) map[string]any {
	return map[string]any{
		"id":         comment.GetID(),
		"author":     comment.GetUser().GetLogin(),
		"body":       comment.GetBody(),
		"created_at": timestamp(comment.GetCreatedAt()),
		"updated_at": timestamp(comment.GetUpdatedAt()),
		"url":        comment.GetHTMLURL(),
	}
}

func pullRequestToMap(pr *github.PullRequest) map[string]any {
	return map[string]any{
		"number":     pr.GetNumber(),
		"title":      pr.GetTitle(),
		"state":      pr.GetState(),
		"author":     pr.GetUser().GetLogin(),
		"head":       pr.GetHead().GetRef(),
		"base":       pr.GetBase().GetRef(),
		"draft":      pr.GetDraft(),
		"merged":     pr.GetMerged(),
		"created_at": timestamp(pr.GetCreatedAt()),
		"updated_at": timestamp(pr.GetUpdatedAt()),
		"url":        pr.GetHTMLURL(),
	}
}

func commitFileToMap(file *github.CommitFile) map[string]any {
	return map[string]any{
		"filename":  file.GetFilename(),
		"status":    file.GetStatus(),
		"additions": file.GetAdditions(),
		"deletions": file.GetDeletions(),
		"changes":   file.GetChanges(),
	}
}

func reviewToMap(review *github.PullRequestReview) map[string]any {
	return map[string]any{
		"id":           review.GetID(),
		"author":       review.GetUser().GetLogin(),
		"state":        review.GetState(),
		"body":         review.GetBody(),
		"submitted_at": timestamp(review.GetSubmittedAt()),
	}
}

func repositoryToMap(repo *github.Repository) map[string]any {
	return map[string]any{
		"full_name":      repo.GetFullName(),
		"description":    repo.GetDescription(),
		"private":        repo.GetPrivate(),
		"default_branch": repo.GetDefaultBranch(),
		"language":       repo.GetLanguage(),
		"stars":          repo.GetStargazersCount(),
		"forks":          repo.GetForksCount(),
		"open_issues":    repo.GetOpenIssuesCount(),
		"archived":       repo.GetArchived(),
		"url":            repo.GetHTMLURL(),
	}
}

func contentToMap(content *github.RepositoryContent) map[string]any {
	return map[string]any{
		"name": content.GetName(),
		"path": content.GetPath(),
		"type": content.GetType(),
		"size": content.GetSize(),
		"sha":  content.GetSHA(),
	}
}

func commitToMap(commit *github.RepositoryCommit) map[string]any {
	return map[string]any{
		"sha":     commit.GetSHA(),
		"message": commit.GetCommit().GetMessage(),
		"author":  commit.GetCommit().GetAuthor().GetName(),
		"login":   commit.GetAuthor().GetLogin(),
		"date":    timestamp(commit.GetCommit().GetAuthor().GetDate()),
		"url":     commit.GetHTMLURL(),
	}
}

func branchToMap(branch *github.Branch) map[string]any {
	return map[string]any{
		"name":      branch.GetName(),
		"sha":       branch.GetCommit().GetSHA(),
		"protected": branch.GetProtected(),
	}
}

func releaseToMap(release *github.RepositoryRelease) map[string]any {
	return map[string]any{
		"id":           release.GetID(),
		"tag_name":     release.GetTagName(),
		"name":         release.GetName(),
		"draft":        release.GetDraft(),
		"prerelease":   release.GetPrerelease(),
		"author":       release.GetAuthor().GetLogin(),
		"created_at":   timestamp(release.GetCreatedAt()),
		"published_at": timestamp(release.GetPublishedAt()),
		"assets":       len(release.Assets),
		"url":          release.GetHTMLURL(),
	}
}

func repositoryTagToMap(tag *github.RepositoryTag) map[string]any {
	return map[string]any{
		"name": tag.GetName(),
		"sha":  tag.GetCommit().GetSHA(),
	}
}

func workflowToMap(workflow *github.Workflow) map[string]any {
	return map[string]any{
		"id":    workflow.GetID(),
		"name":  workflow.GetName(),
		"path":  workflow.GetPath(),
		"state": workflow.GetState(),
		"url":   workflow.GetHTMLURL(),
	}
}

func workflowRunToMap(run *github.WorkflowRun) map[string]any {
	return map[string]any{
		"id":         run.GetID(),
		"name":       run.GetName(),
		"run_number": run.GetRunNumber(),
		"event":      run.GetEvent(),
		"status":     run.GetStatus(),
		"conclusion": run.GetConclusion(),
		"branch":     run.GetHeadBranch(),
		"sha":        run.GetHeadSHA(),
		"created_at": timestamp(run.GetCreatedAt()),
		"updated_at": timestamp(run.GetUpdatedAt()),
		"url":        run.GetHTMLURL(),
	}
}

func workflowJobToMap(job *github.WorkflowJob) map[string]any {
	return map[string]any{
		"id":           job.GetID(),
		"name":         job.GetName(),
		"status":       job.GetStatus(),
		"conclusion":   job.GetConclusion(),
		"started_at":   timestamp(job.GetStartedAt()),
		"completed_at": timestamp(job.GetCompletedAt()),
	}
}
