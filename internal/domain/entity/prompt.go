package entity

import "time"

// AIResponse is the raw completion returned by an upstream provider.
type AIResponse struct {
	Content    string        `json:"content"`
	Model      string        `json:"model"` // Which model actually answered?
	TokenCount int           `json:"token_count"`
	Latency    time.Duration `json:"latency_ms"`
}

// RateLimitStatus is the outcome of a single limiter check.
type RateLimitStatus struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
}
