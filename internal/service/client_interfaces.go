// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client's session and transcription workflow.
// Both services talk to the transcription service through an
// [adapter.ServerAdapter] and keep their durable state in the [store]
// repositories.
package service

import (
	"context"

	"github.com/MKhiriev/go-transcriber/models"
)

// ClientSessionService owns the authentication state of the client.
//
// The persisted token is the only durable artifact. The in-memory user is
// present only while the token has been validated by the service.
type ClientSessionService interface {
	// Initialize restores the session from the persisted token. It never
	// fails: any problem (including network errors) clears the token and
	// leaves the session logged out.
	Initialize(ctx context.Context) models.Session

	// Login exchanges credentials for a token, persists it and loads the
	// user profile. A rejected login leaves the previous state untouched.
	Login(ctx context.Context, username, password string) (models.Session, error)

	// Register creates an account without touching the session.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Logout removes the persisted token, the user and the local snapshot.
	// It makes no network call and is idempotent.
	Logout(ctx context.Context) error

	// Session returns a copy of the current state.
	Session() models.Session

	// Teardown drops the in-memory state. Persisted data is left as is.
	Teardown()
}

// ClientTranscriptionService drives the lifecycle of transcription records.
type ClientTranscriptionService interface {
	// Create validates the request locally and uploads it.
	Create(ctx context.Context, req models.NewTranscription) (models.Transcription, error)

	// ListAll fetches every record and replaces the local snapshot.
	ListAll(ctx context.Context) ([]models.Transcription, error)

	// GetOne fetches a record and stores it in the local snapshot.
	GetOne(ctx context.Context, id models.TranscriptionID) (models.Transcription, error)

	// Process asks the service to process a record. It returns as soon as the
	// request is acknowledged.
	Process(ctx context.Context, id models.TranscriptionID) (models.ProcessAck, error)

	// Download returns the generated document. It does not check the status.
	Download(ctx context.Context, id models.TranscriptionID) (models.Document, error)

	// Delete removes a record remotely and from the snapshot.
	Delete(ctx context.Context, id models.TranscriptionID) error

	// Snapshot returns the locally held list.
	Snapshot(ctx context.Context) ([]models.Transcription, error)

	// AwaitTerminal polls a record until it is completed or failed.
	AwaitTerminal(ctx context.Context, id models.TranscriptionID, policy PollPolicy) (models.Transcription, error)
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}
