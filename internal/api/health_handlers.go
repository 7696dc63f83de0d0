package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	// Lives outside /api so load balancers reach it without a session.
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, s.handleHealth)
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status string `json:"status" doc:"Always ok while the process serves"`
	Time   string `json:"time" doc:"Server time, RFC 3339"`
}

// HealthOutput wraps the health response.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthResponse{
			Status: "ok",
			Time:   time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
