// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/logger"
)

// newTestSQLite opens a migrated in-memory database.
func newTestSQLite(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestSessionRepository_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestSQLite(t), logger.Nop())

	// пустая база - токена нет
	token, err := repo.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, repo.SaveToken(ctx, "first"))
	token, err = repo.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	require.NoError(t, repo.SaveToken(ctx, "second"))
	token, err = repo.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, repo.DeleteToken(ctx))
	token, err = repo.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// повторное удаление не ошибка
	require.NoError(t, repo.DeleteToken(ctx))
}

func TestSessionRepository_Errors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("disk I/O error")

	t.Run("token query fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, logger.Nop())

		mock.ExpectQuery("SELECT value FROM metadata").
			WithArgs(metadataKeyToken).
			WillReturnError(dbErr)

		_, err := repo.Token(ctx)
		require.ErrorIs(t, err, ErrExecutingQuery)
		require.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("save fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, logger.Nop())

		mock.ExpectExec("INSERT INTO metadata").
			WithArgs(metadataKeyToken, []byte("tok")).
			WillReturnError(dbErr)

		err := repo.SaveToken(ctx, "tok")
		require.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, logger.Nop())

		mock.ExpectExec("DELETE FROM metadata").
			WithArgs(metadataKeyToken).
			WillReturnError(dbErr)

		err := repo.DeleteToken(ctx)
		require.ErrorIs(t, err, ErrExecutingStatement)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
