package ytm

type SearchResult struct {
	Title    string   `json:"title"`
	Artists  []string `json:"artists"`
	VideoID  string   `json:"videoId"`
	Duration string   `json:"duration"`
	Category string   `json:"category"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type PlaylistAddResponse struct {
	Success bool `json:"success"`
}

type StatusResponse struct {
	Configured bool `json:"configured"`
}

// PlaylistMutation is a sanitized playlist-add request.
type PlaylistMutation struct {
	PlaylistID string
	VideoIDs   []string
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
