// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-transcriber/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionStorage persists the single session token of the client.
type SessionStorage interface {
	// Token returns the persisted token, or "" when none is stored.
	Token(ctx context.Context) (string, error)
	// SaveToken replaces the persisted token.
	SaveToken(ctx context.Context, token string) error
	// DeleteToken removes the persisted token. Deleting a missing token is
	// not an error.
	DeleteToken(ctx context.Context) error
}

// TranscriptionCache keeps the last known list of transcriptions in service
// order. Writes are last-write-wins.
type TranscriptionCache interface {
	// ReplaceAll discards the snapshot and stores items in the given order.
	ReplaceAll(ctx context.Context, items []models.Transcription) error
	// Upsert stores item, keeping its position when it is already present
	// and placing it first otherwise.
	Upsert(ctx context.Context, item models.Transcription) error
	// Remove drops the record with the given id, if any.
	Remove(ctx context.Context, id models.TranscriptionID) error
	// List returns the snapshot in stored order.
	List(ctx context.Context) ([]models.Transcription, error)
	// Clear empties the snapshot.
	Clear(ctx context.Context) error
}
