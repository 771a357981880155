package model

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Status        string           `json:"status"`
	Service       string           `json:"service"`
	Version       string           `json:"version"`
	Authenticated bool             `json:"authenticated"`
	RateLimit     *RateLimitStatus `json:"rate_limit,omitempty"`
}

// RateLimitStatus reports the core API rate limit state
type RateLimitStatus struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     string `json:"reset"`
}
