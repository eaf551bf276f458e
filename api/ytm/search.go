package handler

import (
	"net/http"

	"ytm-service/internal/app"
	"ytm-service/internal/ytm"
)

var searchHandler = app.Endpoint(func(s *ytm.Server) http.HandlerFunc { return s.Search() })

// Search is the serverless entry point for POST /api/ytm/search.
func Search(w http.ResponseWriter, r *http.Request) {
	searchHandler(w, r)
}
