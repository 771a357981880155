package types

// OperationScope describes how an operation resolves its target.
type OperationScope string

const (
	// ScopeRepository targets a single repository given via the "repository"
	// parameter, or fans out across the configured allow-list when omitted.
	ScopeRepository OperationScope = "repository"

	// ScopeUser targets the authenticated account or an explicitly supplied
	// owner/organization; no repository resolution happens.
	ScopeUser OperationScope = "user"
)
