package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// newHealthHandler returns a handler that reports service health and the
// current GitHub API rate limit state.
func newHealthHandler(gh interfaces.GitHubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := &model.HealthStatus{
			Status:        "healthy",
			Service:       "shears",
			Version:       types.Version,
			Authenticated: gh.Authenticated(),
		}

		if rate, err := gh.RateLimit(r.Context()); err != nil {
			ctxlog.From(r.Context()).Warn("Failed to fetch rate limit", "error", err)
		} else if rate != nil {
			status.RateLimit = &model.RateLimitStatus{
				Limit:     rate.Limit,
				Remaining: rate.Remaining,
				Reset:     rate.Reset.Time.Format(time.RFC3339),
			}
		}

		writeJSON(r.Context(), w, http.StatusOK, status)
	}
}
