// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the go-transcriber client.
//
// Configuration is assembled from multiple sources in the following priority
// order (the first source that sets a field wins):
//  1. Command-line flags
//  2. Environment variables, including those loaded from a .env file
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetClientConfig].
package config
