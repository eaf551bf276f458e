package ytm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStatus(t *testing.T) {
	for _, tc := range []struct {
		blob string
		want bool
	}{
		{blob: "", want: false},
		{blob: "not even json", want: true},
	} {
		env := newTestEnv(t, tc.blob)
		rr := httptest.NewRecorder()

		env.srv.Status()(rr, httptest.NewRequest(http.MethodGet, "/api/ytm/status", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, tc.want, resp.Configured)
	}
}

func TestHandleStatusAcceptsPost(t *testing.T) {
	env := newTestEnv(t, testBlob)
	r := chi.NewRouter()
	env.srv.Routes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ytm/status", strings.NewReader(`not json`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"configured":true}`, rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/ytm/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rr.Header().Get("Allow"))
}

func TestStatusIsNotRateLimited(t *testing.T) {
	env := newTestEnv(t, testBlob)
	for i := 0; i < 100; i++ {
		rr := httptest.NewRecorder()
		env.srv.Status()(rr, httptest.NewRequest(http.MethodGet, "/api/ytm/status", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
	assert.Equal(t, int64(0), env.limiter.Count(CounterSearch))
	assert.Equal(t, int64(0), env.limiter.Count(CounterPlaylistAdd))
}

func TestRoutesPreflight(t *testing.T) {
	env := newTestEnv(t, testBlob)
	r := chi.NewRouter()
	env.srv.Routes(r)

	cases := map[string]string{
		"/api/ytm/search":       "POST, OPTIONS",
		"/api/ytm/playlist/add": "POST, OPTIONS",
		"/api/ytm/status":       "GET, POST, OPTIONS",
	}
	for path, methods := range cases {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, path, nil))

			assert.Equal(t, http.StatusNoContent, rr.Code)
			assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, methods, rr.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization", rr.Header().Get("Access-Control-Allow-Headers"))
			assert.Empty(t, rr.Body.String())
		})
	}

	assert.Equal(t, int64(0), env.limiter.Count(CounterSearch), "preflight is not counted")
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t, "")
	rr := httptest.NewRecorder()

	env.srv.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
	assert.Contains(t, rr.Body.String(), "ytm-service")
}
