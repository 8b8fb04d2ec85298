package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/officehours/server/timezone"
)

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health reports that the process is up.
// GET /health
func (s *APIV1Service) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Message: "Agent service is running"})
}

// DebugVectorResponse describes the knowledge store.
type DebugVectorResponse struct {
	Status     string `json:"status"`
	Documents  int    `json:"documents"`
	Dimensions int    `json:"dimensions"`
	Driver     string `json:"driver"`
}

// DebugVector reports knowledge store stats.
// GET /debug/vector
func (s *APIV1Service) DebugVector(c echo.Context) error {
	stats, err := s.Service.Stats(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, DebugVectorResponse{
		Status:     "vector ok",
		Documents:  stats.Documents,
		Dimensions: stats.Dimensions,
		Driver:     stats.Driver,
	})
}

// ListRegionsResponse is the configured region table.
type ListRegionsResponse struct {
	Regions []timezone.Region `json:"regions"`
}

// ListRegions returns the region names queries are matched against.
// GET /regions
func (s *APIV1Service) ListRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, ListRegionsResponse{Regions: s.Resolver.Regions()})
}
