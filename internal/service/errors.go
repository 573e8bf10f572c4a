// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrValidation marks a client-side precondition failure. No request is
	// sent when it is returned.
	ErrValidation = errors.New("validation error")

	ErrAudioRequired       = errors.New("audio file is required")
	ErrTitleRequired       = errors.New("title is required")
	ErrDateInvalid         = errors.New("date must be YYYY-MM-DD or RFC3339")
	ErrCredentialsRequired = errors.New("username, email and password are required")

	// ErrAuth is returned when the service rejects a login or a registration.
	ErrAuth = errors.New("authentication rejected")

	ErrNotFound = errors.New("transcription not found")

	// ErrPollExhausted is returned when a record did not reach a terminal
	// status within the polling bound.
	ErrPollExhausted = errors.New("polling attempts exhausted")

	// ErrSessionChanged is returned when a logout or another login happened
	// while a login was still fetching the profile.
	ErrSessionChanged = errors.New("session changed during login")
)

var errNotTerminal = errors.New("transcription is not in a terminal status")
