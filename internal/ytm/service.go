package ytm

import (
	"context"
	"errors"
	"log/slog"

	"ytm-service/internal/credential"
	"ytm-service/internal/limiter"
	"ytm-service/internal/ytmusic"
)

const (
	CounterSearch      = "search"
	CounterPlaylistAdd = "playlist_add"

	searchLimit = 5
)

// Client is the slice of the account API the endpoints use.
type Client interface {
	Search(ctx context.Context, query string, limit int) ([]ytmusic.Track, error)
	AddPlaylistItems(ctx context.Context, playlistID string, videoIDs []string) error
}

// ClientFactory builds a Client from a materialized credential file.
// Returning ErrClientUnavailable reports that no client can be built at all.
type ClientFactory func(credentialPath string) (Client, error)

type Service struct {
	limiter   *limiter.Limiter
	creds     *credential.Materializer
	newClient ClientFactory
	cache     SearchCache
	events    EventPublisher
	audit     AuditLog
	logger    *slog.Logger
}

type Option func(*Service)

func WithSearchCache(c SearchCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Service) { s.events = p }
}

func WithAuditLog(a AuditLog) Option {
	return func(s *Service) { s.audit = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(l *limiter.Limiter, creds *credential.Materializer, newClient ClientFactory, opts ...Option) *Service {
	s := &Service{
		limiter:   l,
		creds:     creds,
		newClient: newClient,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a credential blob is present.
func (s *Service) Configured() bool {
	return s.creds.Configured()
}

// Admit runs the checks every mutating request passes before its payload is
// looked at: the endpoint's counter first, then credential materialization.
func (s *Service) Admit(counter string) (string, error) {
	if !s.limiter.Allow(counter) {
		s.logger.Warn("rate limit exceeded", "counter", counter, "count", s.limiter.Count(counter))
		return "", ErrRateLimited
	}
	path, ok := s.creds.Materialize()
	if !ok {
		return "", ErrNotConfigured
	}
	return path, nil
}

// Search returns at most five projected results for an already sanitized query.
func (s *Service) Search(ctx context.Context, credentialPath, query string) ([]SearchResult, error) {
	if s.cache != nil {
		results, ok, err := s.cache.Get(ctx, query)
		if err != nil {
			s.logger.Warn("search cache read failed", "err", err)
		} else if ok {
			return results, nil
		}
	}

	client, err := s.client(credentialPath, msgSearchFailed)
	if err != nil {
		return nil, err
	}
	tracks, err := client.Search(ctx, query, searchLimit)
	if err != nil {
		s.logger.Error("ytmusic search failed", "err", err)
		return nil, &UpstreamError{Message: msgSearchFailed, Err: err}
	}

	results := projectResults(tracks)
	if s.cache != nil {
		if err := s.cache.Set(ctx, query, results); err != nil {
			s.logger.Warn("search cache write failed", "err", err)
		}
	}
	return results, nil
}

// AddToPlaylist dispatches a sanitized mutation, then audits and announces it.
func (s *Service) AddToPlaylist(ctx context.Context, credentialPath string, m PlaylistMutation) error {
	client, err := s.client(credentialPath, msgPlaylistAddFailed)
	if err != nil {
		return err
	}

	if err := client.AddPlaylistItems(ctx, m.PlaylistID, m.VideoIDs); err != nil {
		s.logger.Error("ytmusic add playlist items failed", "playlist_id", m.PlaylistID, "err", err)
		s.recordAudit(ctx, m, err)
		return &UpstreamError{Message: msgPlaylistAddFailed, Err: err}
	}

	s.recordAudit(ctx, m, nil)
	if s.events != nil {
		payload := map[string]any{
			"playlistId": m.PlaylistID,
			"videoIds":   m.VideoIDs,
		}
		if err := s.events.Publish(ctx, eventPlaylistItemsAdded, payload); err != nil {
			s.logger.Warn("publish playlist event failed", "err", err)
		}
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, m PlaylistMutation, failure error) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordPlaylistAdd(ctx, m.PlaylistID, m.VideoIDs, failure); err != nil {
		s.logger.Warn("audit write failed", "err", err)
	}
}

func (s *Service) client(credentialPath, failMsg string) (Client, error) {
	if s.newClient == nil {
		return nil, ErrClientUnavailable
	}
	c, err := s.newClient(credentialPath)
	if errors.Is(err, ErrClientUnavailable) {
		return nil, ErrClientUnavailable
	}
	if err != nil {
		s.logger.Error("ytmusic client init failed", "err", err)
		return nil, &UpstreamError{Message: failMsg, Err: err}
	}
	return c, nil
}

func projectResults(tracks []ytmusic.Track) []SearchResult {
	if len(tracks) > searchLimit {
		tracks = tracks[:searchLimit]
	}
	out := make([]SearchResult, 0, len(tracks))
	for _, t := range tracks {
		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		out = append(out, SearchResult{
			Title:    t.Title,
			Artists:  artists,
			VideoID:  t.VideoID,
			Duration: t.Duration,
			Category: t.Category,
		})
	}
	return out
}
