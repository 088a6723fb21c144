package http

import "unfurl/internal/model"

// UnfurlRequest is the body of POST /v1/unfurl.
type UnfurlRequest struct {
	URL string `json:"url"`
}

// UnfurlResponse is the success/failure envelope for unfurl results.
type UnfurlResponse struct {
	Success bool           `json:"success"`
	Data    *model.Preview `json:"data,omitempty"`
	Code    string         `json:"code,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ErrorResponse is the generic error envelope shared by all endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
}

// LookupsResponse wraps the lookup history listing.
type LookupsResponse struct {
	Success bool           `json:"success"`
	Data    []model.Lookup `json:"data"`
}
