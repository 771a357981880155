package types

import "github.com/m-mizutani/goerr/v2"

// ErrorCode identifies the kind of failure carried by a result envelope.
// The set is fixed; every error leaving the dispatcher maps to exactly one code.
type ErrorCode string

const (
	ErrCodeAuthentication   ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeRepoNotFound     ErrorCode = "REPOSITORY_NOT_FOUND"
	ErrCodeIssueNotFound    ErrorCode = "ISSUE_NOT_FOUND"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeRateLimit        ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnexpected       ErrorCode = "UNEXPECTED_ERROR"
)

// Error tags classify errors at the point they occur. The envelope builder
// translates tags into ErrorCode values; untagged errors become
// ErrCodeUnexpected.
var (
	ErrTagAuth             = goerr.NewTag("authentication")
	ErrTagRepoNotFound     = goerr.NewTag("repository_not_found")
	ErrTagIssueNotFound    = goerr.NewTag("issue_not_found")
	ErrTagResourceNotFound = goerr.NewTag("resource_not_found")
	ErrTagRateLimit        = goerr.NewTag("rate_limit")
	ErrTagPermission       = goerr.NewTag("permission")
	ErrTagValidation       = goerr.NewTag("validation")
)
