package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/shears/pkg/controller/http"
	"github.com/m-mizutani/shears/pkg/domain/model"
)

func TestRequestLoggerFlowsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	dispatcher := &mockDispatcher{
		result: model.NewSuccess(map[string]any{"number": float64(42)}),
	}
	server, err := controller.NewServer(ctx, dispatcher, &mockGitHub{}, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	body := `{"operation":"get_issue","parameters":{"repository":"octocat/Hello-World","issue_number":42}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/dispatch", strings.NewReader(body))
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	logs := buf.String()
	gt.String(t, logs).Contains("HTTP request")
	gt.String(t, logs).Contains("request_id=")

	// Handler-side log lines pick up the request-scoped logger from the
	// request context, so they carry the request ID too.
	gt.String(t, logs).Contains("Dispatched operation")
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		gt.String(t, line).Contains("request_id=")
	}
}
