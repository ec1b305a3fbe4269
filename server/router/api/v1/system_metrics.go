package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/chronoparse/internal/observability"
)

// MetricsOverviewResponse represents the overview response of recognizer metrics
type MetricsOverviewResponse struct {
	TotalRequests int64   `json:"total_requests"`
	SuccessRate   float64 `json:"success_rate"`
	P50LatencyUs  int64   `json:"p50_latency_us"`
	P95LatencyUs  int64   `json:"p95_latency_us"`
	ErrorCount    int64   `json:"error_count"`
	EntityCount   int64   `json:"entity_count"`
	ParseFailed   int64   `json:"parse_failed"`

	Cultures    map[string]*observability.CultureMetricsSnapshot `json:"cultures,omitempty"`
	EntityTypes map[string]*observability.EntityMetricsSnapshot  `json:"entity_types,omitempty"`
}

// GetMetricsOverview returns the recognizer metrics overview.
// GET /api/v1/metrics
// Pass detail=false to omit the per culture and per type breakdown.
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snap := s.Recognizer.Metrics().Snapshot()
	resp := MetricsOverviewResponse{
		TotalRequests: snap.RequestTotal,
		SuccessRate:   snap.SuccessRate(),
		P50LatencyUs:  snap.DurationP50Us,
		P95LatencyUs:  snap.DurationP95Us,
		ErrorCount:    snap.RequestFailed,
		EntityCount:   snap.EntityTotal,
		ParseFailed:   snap.ParseFailed,
	}
	if c.QueryParam("detail") != "false" {
		resp.Cultures = snap.Cultures
		resp.EntityTypes = snap.EntityTypes
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetMetrics clears the recognizer metrics.
// DELETE /api/v1/metrics
func (s *APIV1Service) ResetMetrics(c echo.Context) error {
	s.Recognizer.Metrics().Reset()
	return c.NoContent(http.StatusNoContent)
}
