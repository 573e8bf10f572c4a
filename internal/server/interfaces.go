// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the servers managed by this
// package.
//
// Implementations are expected to block in [Server.Run] until ctx is done or a
// stop signal arrives, and to release resources in [Server.Shutdown].
type Server interface {
	// Run starts serving requests and blocks until the server stops.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
