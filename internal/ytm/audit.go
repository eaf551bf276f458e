package ytm

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the audit log needs; pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type AuditLog interface {
	RecordPlaylistAdd(ctx context.Context, playlistID string, videoIDs []string, failure error) error
}

type PostgresAuditLog struct {
	db    DB
	newID func() uuid.UUID
}

func NewPostgresAuditLog(db DB) *PostgresAuditLog {
	return &PostgresAuditLog{db: db, newID: uuid.New}
}

func (a *PostgresAuditLog) RecordPlaylistAdd(ctx context.Context, playlistID string, videoIDs []string, failure error) error {
	status, detail := "ok", ""
	if failure != nil {
		status, detail = "failed", truncate(failure.Error(), maxDetailLen)
	}
	if videoIDs == nil {
		videoIDs = []string{}
	}
	_, err := a.db.Exec(ctx, `
		INSERT INTO ytm_playlist_additions (id, playlist_id, video_ids, status, detail)
		VALUES ($1, $2, $3, $4, $5)
	`, a.newID(), playlistID, videoIDs, status, detail)
	return err
}

// AutoMigrate creates the audit table when missing.
func AutoMigrate(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS ytm_playlist_additions (
          id          uuid PRIMARY KEY,
          playlist_id TEXT NOT NULL,
          video_ids   TEXT[] NOT NULL DEFAULT '{}',
          status      TEXT NOT NULL,
          detail      TEXT NOT NULL DEFAULT '',
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )
    `)
	return err
}
