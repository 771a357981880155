package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// RepoRef is the canonical identity of a repository. Both fields are
// non-empty and contain no path separators. The host part of URL-style
// identifiers is discarded: an enterprise base URL selects the API endpoint,
// not the canonical key.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns the canonical "owner/name" form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// Key returns the lowercased canonical form used for allow-list matching.
// GitHub treats owner and repository names as case-insensitive.
func (r RepoRef) Key() string {
	return strings.ToLower(r.Owner) + "/" + strings.ToLower(r.Name)
}

// ParseRepoRef normalizes a repository identifier into a RepoRef. Accepted
// forms:
//
//	https://<host>/<owner>/<name>[.git]
//	git@<host>:<owner>/<name>[.git]
//	<owner>/<name>
func ParseRepoRef(s string) (RepoRef, error) {
	raw := s
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
		// Drop the host
		if idx := strings.Index(s, "/"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
	case strings.HasPrefix(s, "git@"):
		if idx := strings.Index(s, ":"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
	}

	s = strings.TrimSuffix(strings.TrimSuffix(s, "/"), ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return RepoRef{}, goerr.New("invalid repository identifier, expected owner/repo or a GitHub URL",
			goerr.T(types.ErrTagValidation), goerr.V("repository", raw))
	}

	owner := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if owner == "" || name == "" {
		return RepoRef{}, goerr.New("repository owner and name must not be empty",
			goerr.T(types.ErrTagValidation), goerr.V("repository", raw))
	}

	return RepoRef{Owner: owner, Name: name}, nil
}
