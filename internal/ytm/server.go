package ytm

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const defaultMaxBodyBytes = 1 << 20

type Server struct {
	svc          *Service
	maxBodyBytes int64
}

func NewServer(svc *Service, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Server{svc: svc, maxBodyBytes: maxBodyBytes}
}

// Search, PlaylistAdd and Status are the endpoint handlers with CORS applied,
// ready to be mounted on a router or served standalone.
func (s *Server) Search() http.HandlerFunc {
	return withCORS(methodsMutating, s.HandleSearch, http.MethodPost)
}

func (s *Server) PlaylistAdd() http.HandlerFunc {
	return withCORS(methodsMutating, s.HandlePlaylistAdd, http.MethodPost)
}

func (s *Server) Status() http.HandlerFunc {
	return withCORS(methodsStatus, s.HandleStatus, http.MethodGet, http.MethodPost)
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HandleHealth)
	r.HandleFunc("/api/ytm/search", s.Search())
	r.HandleFunc("/api/ytm/playlist/add", s.PlaylistAdd())
	r.HandleFunc("/api/ytm/status", s.Status())
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "ytm-service",
	})
}
