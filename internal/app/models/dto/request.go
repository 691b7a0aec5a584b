package dto

// ListRequest carries the raw pagination query parameters. Both values are
// kept as strings so malformed input can be rejected explicitly rather than
// silently defaulted.
type ListRequest struct {
	Page  string `form:"page"`
	Limit string `form:"limit"`
}
