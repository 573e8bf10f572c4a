// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp holds presentation settings of the command-line client.
type ClientApp struct {
	// LogLevel is the minimum level written to the log file.
	LogLevel string
	// Output is one of [OutputTable], [OutputJSON], [OutputYAML].
	Output string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the transcription service.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// ProcessTimeout bounds the processing request; zero disables it.
	ProcessTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains the polling policy used by wait operations.
type ClientWorkers struct {
	PollInitialDelay time.Duration
	PollMaxDelay     time.Duration
	PollMaxAttempts  int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains presentation settings.
	App ClientApp
	// Adapter contains the service address and timeout.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains the polling policy.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. flags is the command's parsed flag set and
// may be nil.
func GetClientConfig(flags *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			LogLevel: cfg.App.LogLevel,
			Output:   cfg.App.Output,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProcessTimeout: cfg.Adapter.ProcessTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			PollInitialDelay: cfg.Workers.PollInitialDelay,
			PollMaxDelay:     cfg.Workers.PollMaxDelay,
			PollMaxAttempts:  cfg.Workers.PollMaxAttempts,
		},
	}
}
