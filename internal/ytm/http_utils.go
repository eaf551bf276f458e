package ytm

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
)

const (
	methodsMutating = "POST, OPTIONS"
	methodsStatus   = "GET, POST, OPTIONS"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the error taxonomy onto status codes and bodies.
func writeServiceError(w http.ResponseWriter, err error) {
	var ie *inputError
	var ue *UpstreamError
	switch {
	case errors.Is(err, ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, msgRateLimited)
	case errors.Is(err, ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, codeNotConfigured)
	case errors.Is(err, ErrClientUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error:  codeNotConfigured,
			Detail: ErrClientUnavailable.Error(),
		})
	case errors.Is(err, ErrInvalidJSON):
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.msg)
	case errors.As(err, &ue):
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  ue.Message,
			Detail: ue.Detail(),
		})
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// withCORS answers preflight with 204, rejects verbs not in methods and
// stamps the open origin header on everything else.
func withCORS(allowMethods string, next http.HandlerFunc, methods ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if !slices.Contains(methods, r.Method) {
			w.Header().Set("Allow", allowMethods)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

// decodeBody reads a JSON object. An empty body decodes to an empty object;
// anything that is not exactly one JSON object is ErrInvalidJSON.
func decodeBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]any, error) {
	if r.Body == nil {
		return map[string]any{}, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		return nil, ErrInvalidJSON
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrInvalidJSON
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidJSON
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidJSON
	}
	return body, nil
}
