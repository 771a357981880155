package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shears/pkg/domain/interfaces"
	"github.com/m-mizutani/shears/pkg/domain/model"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// DispatchHandler handles operation dispatch requests
type DispatchHandler struct {
	dispatcher interfaces.Dispatcher
}

// NewDispatchHandler creates a new DispatchHandler
func NewDispatchHandler(dispatcher interfaces.Dispatcher) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: dispatcher,
	}
}

// Handle processes dispatch requests
func (h *DispatchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var req model.DispatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("Failed to parse request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to parse request body"), http.StatusBadRequest)
		return
	}

	result, err := h.dispatcher.Dispatch(ctx, &req)
	if err != nil {
		// Only context cancellation surfaces here
		if errors.Is(err, ctx.Err()) {
			writeError(ctx, w, err, http.StatusServiceUnavailable)
			return
		}
		logger.Error("Dispatch failed", "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	logger.Info("Dispatched operation",
		"operation", req.Operation,
		"success", result.Success,
	)

	if !result.Success && result.Error.Code == types.ErrCodeUnexpected {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("operation", req.Operation)
			sentry.CaptureMessage(result.Error.Message)
		})
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// ListOperations returns the operation catalog
func (h *DispatchHandler) ListOperations(w http.ResponseWriter, r *http.Request) {
	ops := h.dispatcher.Operations()

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"operations": ops,
	})
}
