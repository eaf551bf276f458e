package ytm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAudit(t *testing.T) (*PostgresAuditLog, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	a := NewPostgresAuditLog(mock)
	a.newID = func() uuid.UUID { return uuid.MustParse("11111111-1111-1111-1111-111111111111") }
	return a, mock
}

func TestPostgresAuditLog(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a, mock := newMockAudit(t)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO ytm_playlist_additions").
			WithArgs(uuid.MustParse("11111111-1111-1111-1111-111111111111"), "PL1", []string{"a", "b"}, "ok", "").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, a.RecordPlaylistAdd(context.Background(), "PL1", []string{"a", "b"}, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure detail is truncated", func(t *testing.T) {
		a, mock := newMockAudit(t)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO ytm_playlist_additions").
			WithArgs(pgxmock.AnyArg(), "PL1", []string{}, "failed", strings.Repeat("x", 200)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := a.RecordPlaylistAdd(context.Background(), "PL1", nil, errors.New(strings.Repeat("x", 250)))
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		a, mock := newMockAudit(t)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO ytm_playlist_additions").
			WillReturnError(errors.New("connection refused"))

		err := a.RecordPlaylistAdd(context.Background(), "PL1", []string{"a"}, nil)
		assert.EqualError(t, err, "connection refused")
	})
}

func TestAutoMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ytm_playlist_additions").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, AutoMigrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
