// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs an HTTP handler until the process is asked to stop.
//
// It owns the listener lifecycle of the local development service: startup,
// signal handling and graceful shutdown.
package server
