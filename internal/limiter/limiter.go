// Package limiter implements the per-process request ceilings guarding the
// mutating endpoints.
//
// Counters never reset and never saturate: every call increments, and a call
// is allowed only while the post-increment value is within the ceiling. The
// state lives for the lifetime of the process and is not shared between
// instances.
package limiter

import "sync/atomic"

type counter struct {
	n       atomic.Int64
	ceiling int64
}

// Limiter holds one independent counter per endpoint.
type Limiter struct {
	counters map[string]*counter
}

// New builds a Limiter from counter IDs and their ceilings. The set of IDs is
// fixed after construction.
func New(ceilings map[string]int64) *Limiter {
	l := &Limiter{counters: make(map[string]*counter, len(ceilings))}
	for id, c := range ceilings {
		l.counters[id] = &counter{ceiling: c}
	}
	return l
}

// Allow increments the counter and reports whether the request fits under
// the ceiling. Unknown IDs are always rejected.
func (l *Limiter) Allow(id string) bool {
	c, ok := l.counters[id]
	if !ok {
		return false
	}
	return c.n.Add(1) <= c.ceiling
}

// Count returns how many requests the counter has seen, rejected ones included.
func (l *Limiter) Count(id string) int64 {
	c, ok := l.counters[id]
	if !ok {
		return 0
	}
	return c.n.Load()
}

// Ceiling returns the configured ceiling, or 0 for unknown IDs.
func (l *Limiter) Ceiling(id string) int64 {
	c, ok := l.counters[id]
	if !ok {
		return 0
	}
	return c.ceiling
}
