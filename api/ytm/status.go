package handler

import (
	"net/http"

	"ytm-service/internal/app"
	"ytm-service/internal/ytm"
)

var statusHandler = app.Endpoint(func(s *ytm.Server) http.HandlerFunc { return s.Status() })

// Status is the serverless entry point for GET /api/ytm/status.
func Status(w http.ResponseWriter, r *http.Request) {
	statusHandler(w, r)
}
