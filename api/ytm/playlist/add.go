package handler

import (
	"net/http"

	"ytm-service/internal/app"
	"ytm-service/internal/ytm"
)

var addHandler = app.Endpoint(func(s *ytm.Server) http.HandlerFunc { return s.PlaylistAdd() })

// Add is the serverless entry point for POST /api/ytm/playlist/add.
func Add(w http.ResponseWriter, r *http.Request) {
	addHandler(w, r)
}
