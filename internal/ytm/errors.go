package ytm

import (
	"errors"
	"fmt"
)

const (
	codeNotConfigured    = "YTM_NOT_CONFIGURED"
	msgRateLimited       = "Rate limit exceeded"
	msgInvalidJSON       = "Invalid JSON"
	msgSearchFailed      = "Search failed"
	msgPlaylistAddFailed = "Add to playlist failed"

	maxDetailLen = 200
)

var (
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrNotConfigured     = errors.New("ytmusic credential not configured")
	ErrClientUnavailable = errors.New("ytmusic client unavailable")
	ErrInvalidJSON       = errors.New("invalid JSON body")
)

// inputError carries the 400 message shown to the caller.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

// UpstreamError wraps anything that went wrong talking to the account API.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("%s: %v", e.Message, e.Err) }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Detail is the upstream error text cut to the length returned to callers.
func (e *UpstreamError) Detail() string {
	return truncate(e.Err.Error(), maxDetailLen)
}

// truncate keeps the first n characters of s, counting code points.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
