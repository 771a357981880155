package github

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// classify converts a go-github error into a tagged error so the envelope
// builder can map it to an error code. The resource argument names the
// entity the failed call targeted ("repository", "issue", ...), which
// selects the not-found tag for 404 responses.
func classify(err error, resource string, values ...goerr.Option) error {
	if err == nil {
		return nil
	}

	// go-github reports 202 Accepted (async operations such as run
	// cancellation) as an error value.
	var acceptedErr *github.AcceptedError
	if errors.As(err, &acceptedErr) {
		return nil
	}

	opts := make([]goerr.Option, 0, len(values)+2)
	opts = append(opts, values...)

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		opts = append(opts,
			goerr.T(types.ErrTagRateLimit),
			goerr.V("reset", rateErr.Rate.Reset.Time.Format(time.RFC3339)),
		)
		return goerr.Wrap(err, "GitHub API rate limit exceeded", opts...)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		if abuseErr.RetryAfter != nil {
			opts = append(opts, goerr.V("retry_after", abuseErr.RetryAfter.String()))
		}
		opts = append(opts, goerr.T(types.ErrTagRateLimit))
		return goerr.Wrap(err, "GitHub API secondary rate limit exceeded", opts...)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			opts = append(opts, goerr.T(types.ErrTagAuth))
			return goerr.Wrap(err, "GitHub authentication failed", opts...)

		case http.StatusForbidden:
			if strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
				opts = append(opts, goerr.T(types.ErrTagRateLimit))
				return goerr.Wrap(err, "GitHub API rate limit exceeded", opts...)
			}
			opts = append(opts, goerr.T(types.ErrTagPermission))
			return goerr.Wrap(err, "insufficient permissions", opts...)

		case http.StatusNotFound:
			opts = append(opts, notFoundTag(resource), goerr.V("resource", resource))
			return goerr.Wrap(err, resource+" not found", opts...)

		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			opts = append(opts, goerr.T(types.ErrTagValidation))
			return goerr.Wrap(err, "GitHub API rejected the request", opts...)
		}
	}

	return goerr.Wrap(err, "GitHub API call failed", opts...)
}

func notFoundTag(resource string) goerr.Option {
	switch resource {
	case "repository":
		return goerr.T(types.ErrTagRepoNotFound)
	case "issue":
		return goerr.T(types.ErrTagIssueNotFound)
	default:
		return goerr.T(types.ErrTagResourceNotFound)
	}
}
