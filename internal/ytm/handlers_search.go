package ytm

import "net/http"

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	credPath, err := s.svc.Admit(CounterSearch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := decodeBody(w, r, s.maxBodyBytes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	query, err := sanitizeQuery(body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	results, err := s.svc.Search(r.Context(), credPath, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
