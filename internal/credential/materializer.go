// Package credential writes the configured account credential to a file the
// upstream client can load.
package credential

import (
	"log/slog"
	"os"
	"path/filepath"
)

type Materializer struct {
	blob   string
	path   string
	logger *slog.Logger
}

func New(blob, path string, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{blob: blob, path: path, logger: logger}
}

// Configured reports whether a credential blob was supplied. It does not check
// that the upstream accepts it.
func (m *Materializer) Configured() bool {
	return m.blob != ""
}

// Path is the well-known location the blob is written to.
func (m *Materializer) Path() string {
	return m.path
}

// Materialize writes the blob verbatim to Path and returns it. A missing blob
// and a failed write are both reported as ok == false.
func (m *Materializer) Materialize() (string, bool) {
	if !m.Configured() {
		return "", false
	}
	if err := writeAtomic(m.path, []byte(m.blob)); err != nil {
		m.logger.Warn("credential write failed", "path", m.path, "err", err)
		return "", false
	}
	return m.path, true
}

// writeAtomic replaces path through a rename so concurrent readers never see
// a truncated file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ytm-credential-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}
