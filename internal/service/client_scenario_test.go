// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/fakeapi"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

type scenario struct {
	fake     *fakeapi.Server
	storages *store.ClientStorages
	adapter  adapter.ServerAdapter
	services *ClientServices
}

// newScenario поднимает фейковый сервис и настоящие хранилище и адаптер
func newScenario(t *testing.T, opts ...fakeapi.Option) *scenario {
	t.Helper()
	ctx := context.Background()

	fake := fakeapi.New(append([]fakeapi.Option{fakeapi.WithUser("alice", "alice@example.com", "correct-horse")}, opts...)...)
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	dsn := filepath.Join(t.TempDir(), "client.db")
	storages, err := store.NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	serverAdapter, err := adapter.NewHTTPServerAdapter(
		config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second},
		storages.Session,
		logger.Nop(),
	)
	require.NoError(t, err)

	poll := PollPolicy{InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, MaxAttempts: 10}
	services := NewClientServices(storages, serverAdapter, poll, models.NewAppBuildInfo("", "", ""), logger.Nop())

	return &scenario{fake: fake, storages: storages, adapter: serverAdapter, services: services}
}

func TestScenario_SprintReview(t *testing.T) {
	s := newScenario(t, fakeapi.WithProcessingReads(0))
	ctx := context.Background()
	session := s.services.Session
	workflow := s.services.Transcriptions

	require.False(t, session.Initialize(ctx).LoggedIn())

	_, err := session.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	created, err := workflow.Create(ctx, models.NewTranscription{
		Title: "Sprint review",
		Date:  "2024-03-01",
		Audio: &models.AudioFile{Filename: "sprint.mp3", Reader: bytes.NewReader([]byte("ID3 sprint audio"))},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, []byte("ID3 sprint audio"), s.fake.Audio(created.ID))

	ack, err := workflow.Process(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, ack.Message)

	// подтверждение не меняет локальный статус
	snapshot, err := workflow.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.StatusPending, snapshot[0].Status)

	got, err := workflow.GetOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.ProcessedText)
	assert.NotEmpty(t, *got.ProcessedText)
	assert.True(t, CanDownload(got))

	snapshot, err = workflow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, snapshot[0].Status)

	doc, err := workflow.Download(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Data)
	assert.Equal(t, s.fake.Document(created.ID), doc.Data, "byte-identical round trip")
	assert.NotEmpty(t, doc.Filename)
}

func TestScenario_LoginRoundTripAndRestart(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	session, err := s.services.Session.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	require.True(t, session.LoggedIn())
	assert.Equal(t, "alice", session.User.Username)
	assert.False(t, session.ExpiresAt.IsZero(), "fake service issues JWTs")

	token, err := s.storages.Session.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Token, token)

	// новый процесс: сессия восстанавливается из сохранённого токена
	restarted := NewClientSessionService(s.storages, s.adapter, logger.Nop())
	restored := restarted.Initialize(ctx)
	require.True(t, restored.LoggedIn())
	assert.Equal(t, "alice", restored.User.Username)
}

func TestScenario_InvalidCredentialsNoPartialWrite(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	_, err := s.services.Session.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrAuth)

	token, err := s.storages.Session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, s.services.Session.Session().User)
}

func TestScenario_CreateWithoutAudioIsOffline(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()

	_, err := s.services.Session.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	before := s.fake.Requests()

	_, err = s.services.Transcriptions.Create(ctx, models.NewTranscription{Title: "Sprint review", Date: "2024-03-01"})
	require.ErrorIs(t, err, ErrValidation)
	require.ErrorIs(t, err, ErrAudioRequired)
	assert.Equal(t, before, s.fake.Requests(), "no network calls")
}

func TestScenario_AwaitTerminalAndLogout(t *testing.T) {
	s := newScenario(t, fakeapi.WithProcessingReads(3))
	ctx := context.Background()

	_, err := s.services.Session.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	workflow := s.services.Transcriptions
	ok, err := workflow.Create(ctx, models.NewTranscription{
		Title: "Planning", Date: "2024-03-02",
		Audio: &models.AudioFile{Filename: "p.wav", Reader: bytes.NewReader([]byte("RIFF"))},
	})
	require.NoError(t, err)
	broken, err := workflow.Create(ctx, models.NewTranscription{
		Title: "Broken " + fakeapi.DefaultFailMarker, Date: "2024-03-03",
		Audio: &models.AudioFile{Filename: "b.wav", Reader: bytes.NewReader([]byte("RIFF"))},
	})
	require.NoError(t, err)

	for _, id := range []models.TranscriptionID{ok.ID, broken.ID} {
		_, err = workflow.Process(ctx, id)
		require.NoError(t, err)
	}

	done, err := workflow.AwaitTerminal(ctx, ok.ID, PollPolicy{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)

	failed, err := workflow.AwaitTerminal(ctx, broken.ID, PollPolicy{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, failed.Status)
	assert.False(t, CanDownload(failed))

	items, err := workflow.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, broken.ID, items[0].ID, "service order: newest first")

	require.NoError(t, workflow.Delete(ctx, broken.ID))
	snapshot, err := workflow.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, ok.ID, snapshot[0].ID)

	// двойной выход даёт то же состояние, что и одинарный
	require.NoError(t, s.services.Session.Logout(ctx))
	first := s.services.Session.Session()
	require.NoError(t, s.services.Session.Logout(ctx))
	assert.Equal(t, first, s.services.Session.Session())

	token, err := s.storages.Session.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	snapshot, err = workflow.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	// после выхода сервис отвечает 401
	_, err = workflow.ListAll(ctx)
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
}
