// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
)

// mapAuthError translates a rejected login or registration into ErrAuth.
// Network and server failures pass through unchanged.
func mapAuthError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	return err
}

// mapRecordError translates the adapter's error for a single record into a
// service error. The original error stays in the chain.
func mapRecordError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

// isTransient reports whether err may go away on its own: a transport
// failure or a 5xx answer.
func isTransient(err error) bool {
	if errors.Is(err, adapter.ErrNetwork) {
		return true
	}

	var remote *adapter.RemoteError
	return errors.As(err, &remote) && remote.Transient()
}
