package ytm

import "net/http"

// HandleStatus reports credential presence only; it is not rate limited and
// never contacts the upstream. GET and POST are answered alike and any body
// is ignored.
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Configured: s.svc.Configured()})
}
