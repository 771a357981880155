package interfaces

import (
	"context"

	"github.com/m-mizutani/shears/pkg/domain/model"
)

// Dispatcher routes a named operation to its handler and wraps the outcome
// in a result envelope. The returned error is non-nil only when the context
// is cancelled; every other failure is reported inside the envelope.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *model.DispatchRequest) (*model.Result, error)

	// Operations returns the catalog sorted by operation name.
	Operations() []model.OperationInfo

	// Schema returns the declared parameter schema of one operation, or nil
	// if the operation is unknown.
	Schema(operation string) *model.ParameterSchema
}
