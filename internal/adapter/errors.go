// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNetwork wraps failures where no response was received.
	ErrNetwork = errors.New("network error")

	// ErrDecodingResponse is returned when a 2xx body cannot be decoded.
	ErrDecodingResponse = errors.New("error decoding response")
)

// RemoteError is a non-2xx answer of the service.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Status, e.Detail)
}

// Is matches the sentinel corresponding to the status code.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrInternalServerError:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// Transient reports whether repeating the same request may succeed.
func (e *RemoteError) Transient() bool {
	return e.Status >= http.StatusInternalServerError
}

var (
	// ErrMissingAudio is returned when a creation request has no audio payload.
	ErrMissingAudio = errors.New("audio payload is required")

	// ErrReadingToken is returned when the token source fails.
	ErrReadingToken = errors.New("error reading session token")
)
