// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/service"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNotCompleted is returned by download when the record has no
	// document yet.
	ErrNotCompleted = errors.New("transcription is not completed")

	ErrAborted = errors.New("aborted")

	// ErrUsage wraps malformed arguments and flags.
	ErrUsage = errors.New("invalid usage")

	// ErrTerminalFailed is returned by wait when a record ended as failed.
	ErrTerminalFailed = errors.New("transcription processing failed")
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitAuth        = 3
	ExitNotFound    = 4
	ExitUnavailable = 5
	ExitPending     = 6
)

// ExitCode maps an error returned by [App.Run] to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, ErrAborted),
		errors.Is(err, config.ErrInvalidAdapterConfigs),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidAppConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs):
		return ExitUsage
	case errors.Is(err, ErrNotLoggedIn),
		errors.Is(err, service.ErrAuth),
		errors.Is(err, adapter.ErrUnauthorized):
		return ExitAuth
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, adapter.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, adapter.ErrNetwork):
		return ExitUnavailable
	case errors.Is(err, service.ErrPollExhausted),
		errors.Is(err, ErrNotCompleted):
		return ExitPending
	default:
		return ExitError
	}
}
