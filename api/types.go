package api

import "cleanplan/core/types"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

// VersionResponse is returned by GET /version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}

// CityRulesResponse is returned by GET /api/v1/pricing/cities
type CityRulesResponse struct {
	Cities []types.CityRule `json:"cities"`
	Count  int              `json:"count"`
}
