package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCredentialPath = "/tmp/ytm_oauth.json"
	DefaultAPIBaseURL     = "https://www.googleapis.com/youtube/v3"
)

type Config struct {
	Port string

	CredentialBlob string
	CredentialPath string

	APIBaseURL   string
	ClientID     string
	ClientSecret string

	SearchRateLimit   int
	PlaylistRateLimit int
	MaxBodyBytes      int64

	RedisURL       string
	SearchCacheTTL time.Duration
	EventsChannel  string

	DatabaseURL string

	LogLevel  string
	LogFormat string
}

// Load reads the process environment once. Callers pass the result down
// instead of reading env vars ad hoc.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "3010"),
		CredentialBlob:    os.Getenv("YTM_OAUTH_JSON"),
		CredentialPath:    getenv("YTM_OAUTH_PATH", DefaultCredentialPath),
		APIBaseURL:        strings.TrimRight(getenv("YTM_API_BASE_URL", DefaultAPIBaseURL), "/"),
		ClientID:          getenv("YTM_CLIENT_ID", ""),
		ClientSecret:      getenv("YTM_CLIENT_SECRET", ""),
		SearchRateLimit:   getenvInt("SEARCH_RATE_LIMIT", 50),
		PlaylistRateLimit: getenvInt("PLAYLIST_RATE_LIMIT", 20),
		MaxBodyBytes:      int64(getenvInt("MAX_BODY_BYTES", 1<<20)),
		RedisURL:          getenv("REDIS_URL", ""),
		SearchCacheTTL:    getenvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		EventsChannel:     getenv("EVENTS_CHANNEL", "broadcast"),
		DatabaseURL:       getenv("DATABASE_URL", ""),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "json"),
	}

	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, errors.New("config: YTM_API_BASE_URL must be an absolute URL")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	raw := getenv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
