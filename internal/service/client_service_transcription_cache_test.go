// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/mock"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

// newCachedTranscriptionSvc связывает сервис с настоящим SQLite кэшем
func newCachedTranscriptionSvc(t *testing.T, ctrl *gomock.Controller) (*clientTranscriptionService, *mock.MockServerAdapter) {
	t.Helper()

	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")}}
	storages, err := store.NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	mockAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientTranscriptionService(storages, mockAdapter, fastPoll, logger.Nop()).(*clientTranscriptionService)
	return svc, mockAdapter
}

func snapshotIDs(t *testing.T, svc *clientTranscriptionService) []models.TranscriptionID {
	t.Helper()

	items, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	out := make([]models.TranscriptionID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestClientTranscriptionService_ListAll_LastCompletedWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter := newCachedTranscriptionSvc(t, ctrl)
	ctx := context.Background()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	// первый запрос зависает на сервере, второй отвечает сразу
	mockAdapter.EXPECT().ListTranscriptions(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.Transcription, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-release
				return []models.Transcription{record("slow", models.StatusCompleted)}, nil
			}
			return []models.Transcription{record("fast-1", models.StatusPending), record("fast-2", models.StatusPending)}, nil
		}).
		Times(2)

	done := make(chan error, 1)
	go func() {
		_, err := svc.ListAll(ctx)
		done <- err
	}()
	<-started

	_, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TranscriptionID{"fast-1", "fast-2"}, snapshotIDs(t, svc))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, []models.TranscriptionID{"slow"}, snapshotIDs(t, svc))
}

func TestClientTranscriptionService_ListAll_DuplicateIDsRefreshSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter := newCachedTranscriptionSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().ListTranscriptions(ctx).
			Return([]models.Transcription{record("1", models.StatusPending)}, nil),
		mockAdapter.EXPECT().ListTranscriptions(ctx).
			Return([]models.Transcription{record("2", models.StatusPending), record("2", models.StatusCompleted)}, nil),
	)

	_, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TranscriptionID{"1"}, snapshotIDs(t, svc))

	got, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.TranscriptionID("2"), snapshot[0].ID)
	assert.Equal(t, models.StatusPending, snapshot[0].Status)
}
