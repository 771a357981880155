package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/shears/pkg/domain/model"
)

func TestParams_JSONCoercion(t *testing.T) {
	// Parameters arrive as decoded JSON, so numbers are float64 and arrays
	// are []any.
	var p model.Params
	raw := `{
		"title": "bug report",
		"issue_number": 42,
		"draft": true,
		"labels": ["bug", "p1"],
		"comments": [{"path": "main.go", "body": "nit"}]
	}`
	gt.NoError(t, json.Unmarshal([]byte(raw), &p))

	gt.Equal(t, p.String("title", ""), "bug report")
	gt.Equal(t, p.Int("issue_number", 0), 42)
	gt.Equal(t, p.Int64("issue_number", 0), int64(42))
	gt.True(t, p.Bool("draft", false))
	gt.Equal(t, p.StringSlice("labels"), []string{"bug", "p1"})

	comments := p.ObjectSlice("comments")
	gt.Equal(t, len(comments), 1)
	gt.Equal(t, comments[0]["path"], "main.go")
}

func TestParams_Defaults(t *testing.T) {
	p := model.Params{"present": "value", "null": nil}

	gt.Equal(t, p.String("absent", "fallback"), "fallback")
	gt.Equal(t, p.Int("absent", 30), 30)
	gt.Equal(t, p.Bool("absent", true), true)
	gt.Equal(t, len(p.StringSlice("absent")), 0)

	gt.True(t, p.Has("present"))
	gt.Equal(t, p.Has("absent"), false)
	gt.Equal(t, p.Has("null"), false)
}

func TestParams_WrongType(t *testing.T) {
	p := model.Params{"issue_number": "not-a-number"}

	gt.Equal(t, p.Int("issue_number", -1), -1)
	gt.Equal(t, p.Bool("issue_number", false), false)
}
