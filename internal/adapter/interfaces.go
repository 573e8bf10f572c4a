// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the transcription service.
//
// The primary abstraction is [ServerAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Every non-2xx response is normalised into a [*RemoteError] that matches the
// sentinel values defined in errors.go through [errors.Is] (e.g. [ErrNotFound]
// for 404, [ErrUnauthorized] for 401). Transport failures are wrapped in
// [ErrNetwork].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-transcriber/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource yields the bearer token to attach to an authenticated request.
// It is consulted on every call, so a token saved or deleted between two
// calls takes effect immediately. An empty token means "send no
// Authorization header".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ServerAdapter defines transport-agnostic communication with the
// transcription service. Implementations are responsible for serialisation,
// attaching the bearer token and mapping transport-level errors to the values
// defined in this package.
type ServerAdapter interface {
	// Register creates an account. No token is sent and none is returned.
	Register(ctx context.Context, registration models.Registration) (models.User, error)

	// Login exchanges credentials for an access token. The request is
	// form-encoded and never carries a bearer token.
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)

	// CurrentUser returns the profile the current token belongs to.
	CurrentUser(ctx context.Context) (models.User, error)

	// CreateTranscription uploads the audio payload together with the record
	// metadata as a multipart form.
	CreateTranscription(ctx context.Context, req models.NewTranscription) (models.Transcription, error)

	// ListTranscriptions returns every record of the current user in the order
	// chosen by the service.
	ListTranscriptions(ctx context.Context) ([]models.Transcription, error)

	// GetTranscription returns a single record.
	GetTranscription(ctx context.Context, id models.TranscriptionID) (models.Transcription, error)

	// ProcessTranscription asks the service to process a record. The
	// acknowledgement says nothing about the final outcome.
	ProcessTranscription(ctx context.Context, id models.TranscriptionID) (models.ProcessAck, error)

	// DownloadDocument returns the generated document as raw bytes.
	DownloadDocument(ctx context.Context, id models.TranscriptionID) (models.Document, error)

	// DeleteTranscription removes a record permanently.
	DeleteTranscription(ctx context.Context, id models.TranscriptionID) error

	// Health reports service liveness. No token is sent.
	Health(ctx context.Context) (models.Health, error)
}
