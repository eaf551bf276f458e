package ytm

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"ytm-service/internal/credential"
	"ytm-service/internal/limiter"
	"ytm-service/internal/ytmusic"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Search(ctx context.Context, query string, limit int) ([]ytmusic.Track, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ytmusic.Track), args.Error(1)
}

func (m *MockClient) AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error {
	args := m.Called(ctx, playlistID, videoIDs)
	return args.Error(0)
}

type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) RecordPlaylistAdd(ctx context.Context, playlistID string, videoIDs []string, failure error) error {
	args := m.Called(ctx, playlistID, videoIDs, failure)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

const testBlob = `{"access_token":"tok"}`

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testEnv struct {
	client   *MockClient
	limiter  *limiter.Limiter
	credPath string
	svc      *Service
	srv      *Server
}

// newTestEnv wires a Service around a MockClient. An empty blob leaves the
// credential unconfigured.
func newTestEnv(t *testing.T, blob string, opts ...Option) *testEnv {
	t.Helper()
	env := &testEnv{
		client:   new(MockClient),
		credPath: filepath.Join(t.TempDir(), "ytm_oauth.json"),
		limiter: limiter.New(map[string]int64{
			CounterSearch:      50,
			CounterPlaylistAdd: 20,
		}),
	}
	factory := func(path string) (Client, error) {
		return env.client, nil
	}
	opts = append([]Option{WithLogger(quietLogger)}, opts...)
	env.svc = NewService(env.limiter, credential.New(blob, env.credPath, quietLogger), factory, opts...)
	env.srv = NewServer(env.svc, 0)
	return env
}
