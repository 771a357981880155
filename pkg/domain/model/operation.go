package model

import (
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/shears/pkg/domain/types"
)

// OperationInfo describes one entry of the operation catalog as exposed by
// the operations listing surfaces (CLI command, HTTP endpoint, tool spec).
type OperationInfo struct {
	Name        string               `json:"operation"`
	Description string               `json:"description"`
	Scope       types.OperationScope `json:"scope"`
	Required    []string             `json:"required,omitempty"`
}

// ParameterSchema is the declared parameter schema of an operation,
// expressed in the agent framework's parameter model.
type ParameterSchema struct {
	Properties map[string]*gollem.Parameter
	Required   []string
}
