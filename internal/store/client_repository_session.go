// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-transcriber/internal/logger"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository returns a [SessionStorage] backed by the metadata
// table.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionStorage {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Token(ctx context.Context) (string, error) {
	var value []byte
	err := r.DB.QueryRowContext(ctx, getMetadataValue, metadataKeyToken).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.Token").
			Msg("failed to read session token")
		return "", fmt.Errorf("%w: read token: %w", ErrExecutingQuery, err)
	}

	return string(value), nil
}

func (r *sessionRepository) SaveToken(ctx context.Context, token string) error {
	if _, err := r.DB.ExecContext(ctx, setMetadataValue, metadataKeyToken, []byte(token)); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.SaveToken").
			Msg("failed to persist session token")
		return fmt.Errorf("%w: save token: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) DeleteToken(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, deleteMetadataValue, metadataKeyToken); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.DeleteToken").
			Msg("failed to delete session token")
		return fmt.Errorf("%w: delete token: %w", ErrExecutingStatement, err)
	}

	return nil
}
