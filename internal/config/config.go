// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-transcriber client. It aggregates all sub-configurations and is
// populated by merging values from command-line flags, environment variables
// (including a .env file), an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds presentation settings of the command-line client.
	App App `envPrefix:"APP_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the location of the transcription service and the
	// outbound request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the polling policy used while waiting for processing
	// to finish.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds presentation settings.
type App struct {
	// LogLevel is the minimum level written to the log file.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Output is the rendering format of command results: table, json or yaml.
	// Env: APP_OUTPUT
	Output string `env:"OUTPUT"`
}

// Storage groups the configuration for local storage.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database that keeps the
// session token and the last transcription snapshot.
type DB struct {
	// DSN is the SQLite file path (e.g. "transcriber.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the transcription service endpoint settings.
type Adapter struct {
	// HTTPAddress is the base URL of the service. A missing scheme defaults
	// to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "30s", "1m").
	// Uploads of long recordings need a generous value.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProcessTimeout bounds the processing request only. The service answers
	// it after recognition and document generation have finished, which can
	// take several minutes. Zero means no limit.
	// Env: ADAPTER_PROCESS_TIMEOUT
	ProcessTimeout time.Duration `env:"PROCESS_TIMEOUT"`
}

// Workers holds the polling policy of the wait operations.
type Workers struct {
	// PollInitialDelay is the pause before the first re-fetch.
	// Env: WORKERS_POLL_INITIAL_DELAY
	PollInitialDelay time.Duration `env:"POLL_INITIAL_DELAY"`

	// PollMaxDelay caps the exponential backoff between re-fetches.
	// Env: WORKERS_POLL_MAX_DELAY
	PollMaxDelay time.Duration `env:"POLL_MAX_DELAY"`

	// PollMaxAttempts bounds the number of re-fetches.
	// Env: WORKERS_POLL_MAX_ATTEMPTS
	PollMaxAttempts int `env:"POLL_MAX_ATTEMPTS"`
}

// Default values applied to fields left empty by every other source.
const (
	DefaultHTTPAddress      = "http://localhost:8010"
	DefaultRequestTimeout   = 60 * time.Second
	DefaultDSN              = "transcriber.db"
	DefaultLogLevel         = "info"
	DefaultOutput           = OutputTable
	DefaultPollInitialDelay = 2 * time.Second
	DefaultPollMaxDelay     = 30 * time.Second
	DefaultPollMaxAttempts  = 20
)

// Supported values of App.Output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: DefaultLogLevel,
			Output:   DefaultOutput,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			PollInitialDelay: DefaultPollInitialDelay,
			PollMaxDelay:     DefaultPollMaxDelay,
			PollMaxAttempts:  DefaultPollMaxAttempts,
		},
	}
}
