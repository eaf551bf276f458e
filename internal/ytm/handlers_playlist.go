package ytm

import "net/http"

func (s *Server) HandlePlaylistAdd(w http.ResponseWriter, r *http.Request) {
	credPath, err := s.svc.Admit(CounterPlaylistAdd)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := decodeBody(w, r, s.maxBodyBytes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	m, err := sanitizePlaylistMutation(body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.svc.AddToPlaylist(r.Context(), credPath, m); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PlaylistAddResponse{Success: true})
}
