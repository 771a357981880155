package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// Result is the uniform envelope returned by every operation. Exactly one of
// Output and Error is set, matching Success.
type Result struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
	Error   *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed operation.
type ErrorDetail struct {
	Code    types.ErrorCode `json:"code"`
	Message string          `json:"message"`
	Details map[string]any  `json:"details,omitempty"`
}

// NewSuccess builds a success envelope.
func NewSuccess(output map[string]any) *Result {
	return &Result{Success: true, Output: output}
}

// NewFailure builds an error envelope with an explicit code.
func NewFailure(code types.ErrorCode, message string, details map[string]any) *Result {
	return &Result{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// tagCode pairs an error tag with an envelope code. goerr/v2 does not
// export its tag type, so the concrete type is captured by inference.
type tagCode[T any] struct {
	tag  T
	code types.ErrorCode
}

func tagCodeOf[T any](tag T, code types.ErrorCode) tagCode[T] {
	return tagCode[T]{tag: tag, code: code}
}

func tagCodeList[T any](entries ...tagCode[T]) []tagCode[T] {
	return entries
}

// tagCodes maps error tags to envelope codes. Order matters: the first
// matching tag wins.
var tagCodes = tagCodeList(
	tagCodeOf(types.ErrTagAuth, types.ErrCodeAuthentication),
	tagCodeOf(types.ErrTagRepoNotFound, types.ErrCodeRepoNotFound),
	tagCodeOf(types.ErrTagIssueNotFound, types.ErrCodeIssueNotFound),
	tagCodeOf(types.ErrTagResourceNotFound, types.ErrCodeResourceNotFound),
	tagCodeOf(types.ErrTagRateLimit, types.ErrCodeRateLimit),
	tagCodeOf(types.ErrTagPermission, types.ErrCodePermissionDenied),
	tagCodeOf(types.ErrTagValidation, types.ErrCodeValidation),
)

// ErrorCodeOf resolves the envelope code for an error from its tags.
func ErrorCodeOf(err error) types.ErrorCode {
	for _, tc := range tagCodes {
		if goerr.HasTag(err, tc.tag) {
			return tc.code
		}
	}
	return types.ErrCodeUnexpected
}

// NewFailureFromError converts an error into an error envelope. The code
// comes from the error's tags, the details from its goerr values.
func NewFailureFromError(err error) *Result {
	var details map[string]any
	if values := goerr.Values(err); len(values) > 0 {
		details = values
	}
	return NewFailure(ErrorCodeOf(err), err.Error(), details)
}
