// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application runtime.
//
// It wires configuration, local storage, the service adapter and the client
// services into a cobra command tree and renders results as a table, JSON or
// YAML. Every command is a thin view over [service.ClientServices].
package client
