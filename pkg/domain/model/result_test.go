package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

func TestNewSuccess(t *testing.T) {
	result := model.NewSuccess(map[string]any{"number": 42})

	gt.True(t, result.Success)
	gt.Equal(t, result.Output["number"], 42)
	gt.Equal(t, result.Error, nil)
}

func TestNewFailure(t *testing.T) {
	result := model.NewFailure(types.ErrCodeValidation, "missing parameter", map[string]any{
		"missing": []string{"title"},
	})

	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Output, nil)
	gt.Value(t, result.Error).NotNil()
	gt.Equal(t, result.Error.Code, types.ErrCodeValidation)
	gt.Equal(t, result.Error.Message, "missing parameter")
}

func TestErrorCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ErrorCode
	}{
		{
			name: "authentication tag",
			err:  goerr.New("bad credentials", goerr.T(types.ErrTagAuth)),
			want: types.ErrCodeAuthentication,
		},
		{
			name: "repository not found tag",
			err:  goerr.New("not found", goerr.T(types.ErrTagRepoNotFound)),
			want: types.ErrCodeRepoNotFound,
		},
		{
			name: "issue not found tag",
			err:  goerr.New("not found", goerr.T(types.ErrTagIssueNotFound)),
			want: types.ErrCodeIssueNotFound,
		},
		{
			name: "generic resource not found tag",
			err:  goerr.New("not found", goerr.T(types.ErrTagResourceNotFound)),
			want: types.ErrCodeResourceNotFound,
		},
		{
			name: "rate limit tag",
			err:  goerr.New("slow down", goerr.T(types.ErrTagRateLimit)),
			want: types.ErrCodeRateLimit,
		},
		{
			name: "permission tag",
			err:  goerr.New("forbidden", goerr.T(types.ErrTagPermission)),
			want: types.ErrCodePermissionDenied,
		},
		{
			name: "validation tag",
			err:  goerr.New("bad input", goerr.T(types.ErrTagValidation)),
			want: types.ErrCodeValidation,
		},
		{
			name: "untagged error",
			err:  goerr.New("boom"),
			want: types.ErrCodeUnexpected,
		},
		{
			name: "tag survives wrapping",
			err:  goerr.Wrap(goerr.New("nope", goerr.T(types.ErrTagPermission)), "outer"),
			want: types.ErrCodePermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, model.ErrorCodeOf(tt.err), tt.want)
		})
	}
}

func TestNewFailureFromError(t *testing.T) {
	err := goerr.New("issue not found",
		goerr.T(types.ErrTagIssueNotFound),
		goerr.V("issue_number", 123),
	)

	result := model.NewFailureFromError(err)

	gt.Equal(t, result.Success, false)
	gt.Equal(t, result.Error.Code, types.ErrCodeIssueNotFound)
	gt.Equal(t, result.Error.Details["issue_number"], 123)
}
