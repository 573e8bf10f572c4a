// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

type clientTranscriptionService struct {
	adapter adapter.ServerAdapter
	cache   store.TranscriptionCache
	poll    PollPolicy

	logger *logger.Logger
}

// NewClientTranscriptionService creates the transcription workflow. poll is
// used for the fields a caller of AwaitTerminal leaves zero.
func NewClientTranscriptionService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, poll PollPolicy, logger *logger.Logger) ClientTranscriptionService {
	return &clientTranscriptionService{
		adapter: serverAdapter,
		cache:   storages.Transcriptions,
		poll:    poll.orDefault(DefaultPollPolicy()),
		logger:  logger,
	}
}

// Create implements [ClientTranscriptionService].
func (s *clientTranscriptionService) Create(ctx context.Context, req models.NewTranscription) (models.Transcription, error) {
	if err := ValidateNewTranscription(req); err != nil {
		return models.Transcription{}, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Date = strings.TrimSpace(req.Date)

	created, err := s.adapter.CreateTranscription(ctx, req)
	if err != nil {
		return models.Transcription{}, fmt.Errorf("create transcription: %w", err)
	}

	s.upsert(ctx, created)
	s.logger.Info().
		Str("func", "clientTranscriptionService.Create").
		Str("transcription_id", created.ID.String()).
		Msg("transcription created")
	return created, nil
}

// ValidateNewTranscription checks a creation request locally. The audio is
// checked first, then the title, then the date.
func ValidateNewTranscription(req models.NewTranscription) error {
	if req.Audio == nil || req.Audio.Reader == nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrAudioRequired)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrTitleRequired)
	}
	if !validDate(strings.TrimSpace(req.Date)) {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrDateInvalid, req.Date)
	}
	return nil
}

func validDate(date string) bool {
	if _, err := time.Parse(time.DateOnly, date); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, date)
	return err == nil
}

// ListAll implements [ClientTranscriptionService].
func (s *clientTranscriptionService) ListAll(ctx context.Context) ([]models.Transcription, error) {
	items, err := s.adapter.ListTranscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}

	if err = s.cache.ReplaceAll(ctx, items); err != nil {
		s.logger.Err(err).Str("func", "clientTranscriptionService.ListAll").Msg("cannot replace snapshot")
	}
	return items, nil
}

// GetOne implements [ClientTranscriptionService].
func (s *clientTranscriptionService) GetOne(ctx context.Context, id models.TranscriptionID) (models.Transcription, error) {
	item, err := s.adapter.GetTranscription(ctx, id)
	if err != nil {
		return models.Transcription{}, fmt.Errorf("get transcription %s: %w", id, mapRecordError(err))
	}

	s.upsert(ctx, item)
	return item, nil
}

// Process implements [ClientTranscriptionService].
func (s *clientTranscriptionService) Process(ctx context.Context, id models.TranscriptionID) (models.ProcessAck, error) {
	ack, err := s.adapter.ProcessTranscription(ctx, id)
	if err != nil {
		return models.ProcessAck{}, fmt.Errorf("process transcription %s: %w", id, mapRecordError(err))
	}

	s.logger.Info().
		Str("func", "clientTranscriptionService.Process").
		Str("transcription_id", id.String()).
		Str("status", ack.Status).
		Msg("processing requested")
	return ack, nil
}

// Download implements [ClientTranscriptionService].
func (s *clientTranscriptionService) Download(ctx context.Context, id models.TranscriptionID) (models.Document, error) {
	doc, err := s.adapter.DownloadDocument(ctx, id)
	if err != nil {
		return models.Document{}, fmt.Errorf("download document %s: %w", id, mapRecordError(err))
	}
	return doc, nil
}

// Delete implements [ClientTranscriptionService].
func (s *clientTranscriptionService) Delete(ctx context.Context, id models.TranscriptionID) error {
	if err := s.adapter.DeleteTranscription(ctx, id); err != nil {
		return fmt.Errorf("delete transcription %s: %w", id, mapRecordError(err))
	}

	if err := s.cache.Remove(ctx, id); err != nil {
		s.logger.Err(err).
			Str("func", "clientTranscriptionService.Delete").
			Str("transcription_id", id.String()).
			Msg("cannot remove from snapshot")
	}
	return nil
}

// Snapshot implements [ClientTranscriptionService].
func (s *clientTranscriptionService) Snapshot(ctx context.Context) ([]models.Transcription, error) {
	items, err := s.cache.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return items, nil
}

func (s *clientTranscriptionService) upsert(ctx context.Context, item models.Transcription) {
	if err := s.cache.Upsert(ctx, item); err != nil {
		s.logger.Err(err).
			Str("func", "clientTranscriptionService.upsert").
			Str("transcription_id", item.ID.String()).
			Msg("cannot update snapshot")
	}
}

// CanDownload reports whether the document of t may be requested.
func CanDownload(t models.Transcription) bool {
	return t.Status == models.StatusCompleted
}
