// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/models"
)

type transcriptionRepository struct {
	*DB
	logger *logger.Logger

	// mu serialises writers. Together with the single pooled connection and
	// the replace transaction it makes the last completed ReplaceAll win.
	mu sync.Mutex
}

// NewTranscriptionRepository returns a [TranscriptionCache] backed by the
// transcriptions table. Each record is stored as its JSON document.
func NewTranscriptionRepository(db *DB, logger *logger.Logger) TranscriptionCache {
	return &transcriptionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *transcriptionRepository) ReplaceAll(ctx context.Context, items []models.Transcription) error {
	deleteQuery, deleteArgs, err := sq.Delete(transcriptionsTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	insert := sq.Insert(transcriptionsTable).Columns("id", "position", "status", "document")
	count := 0
	seen := make(map[models.TranscriptionID]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			r.logger.Warn().
				Str("func", "transcriptionRepository.ReplaceAll").
				Str("transcription_id", item.ID.String()).
				Msg("duplicate transcription in listing, keeping the first one")
			continue
		}
		seen[item.ID] = struct{}{}

		document, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode transcription %s: %w", item.ID, err)
		}
		insert = insert.Values(string(item.ID), count, string(item.Status), document)
		count++
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "transcriptionRepository.ReplaceAll").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		r.logger.Err(err).Str("func", "transcriptionRepository.ReplaceAll").Msg("failed to clear snapshot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if count > 0 {
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			r.logger.Err(err).
				Str("func", "transcriptionRepository.ReplaceAll").
				Int("count", count).
				Msg("failed to insert snapshot")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "transcriptionRepository.ReplaceAll").Msg("failed to commit snapshot")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *transcriptionRepository) Upsert(ctx context.Context, item models.Transcription) error {
	document, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode transcription %s: %w", item.ID, err)
	}

	query, args, err := sq.Insert(transcriptionsTable).
		Columns("id", "position", "status", "document").
		Values(string(item.ID), sq.Expr(frontPosition), string(item.Status), document).
		Suffix(upsertTranscriptionSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "transcriptionRepository.Upsert").
			Str("transcription_id", item.ID.String()).
			Msg("failed to upsert transcription")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *transcriptionRepository) Remove(ctx context.Context, id models.TranscriptionID) error {
	query, args, err := sq.Delete(transcriptionsTable).Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "transcriptionRepository.Remove").
			Str("transcription_id", id.String()).
			Msg("failed to remove transcription")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *transcriptionRepository) List(ctx context.Context) ([]models.Transcription, error) {
	query, args, err := sq.Select("document").
		From(transcriptionsTable).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "transcriptionRepository.List").Msg("failed to query snapshot")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Transcription, 0)
	for rows.Next() {
		var document []byte
		if err = rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		var item models.Transcription
		if err = json.Unmarshal(document, &item); err != nil {
			r.logger.Err(err).Str("func", "transcriptionRepository.List").Msg("failed to decode cached transcription")
			return nil, fmt.Errorf("%w: %w", ErrCorruptedSnapshot, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *transcriptionRepository) Clear(ctx context.Context) error {
	query, args, err := sq.Delete(transcriptionsTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "transcriptionRepository.Clear").Msg("failed to clear snapshot")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
