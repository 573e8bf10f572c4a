// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_LEVEL": "debug",
		"APP_OUTPUT":    "yaml",

		"ADAPTER_ADDRESS":         "http://transcriber.local:8010",
		"ADAPTER_REQUEST_TIMEOUT": "90s",
		"ADAPTER_PROCESS_TIMEOUT": "20m",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/var/lib/transcriber/client.db",

		"WORKERS_POLL_INITIAL_DELAY": "1s",
		"WORKERS_POLL_MAX_DELAY":     "15s",
		"WORKERS_POLL_MAX_ATTEMPTS":  "7",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "yaml", cfg.App.Output)

	assert.Equal(t, "http://transcriber.local:8010", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 90*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 20*time.Minute, cfg.Adapter.ProcessTimeout)

	assert.Equal(t, "/var/lib/transcriber/client.db", cfg.Storage.DB.DSN)

	assert.Equal(t, time.Second, cfg.Workers.PollInitialDelay)
	assert.Equal(t, 15*time.Second, cfg.Workers.PollMaxDelay)
	assert.Equal(t, 7, cfg.Workers.PollMaxAttempts)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_OnlyStorageDB(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DATABASE_URI": "local.db",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "local.db", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Adapter.HTTPAddress)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_REQUEST_TIMEOUT": "invalid_duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_InvalidAttempts(t *testing.T) {
	setEnvVars(t, map[string]string{
		"WORKERS_POLL_MAX_ATTEMPTS": "many",
	})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1m30s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{
				"WORKERS_POLL_MAX_DELAY": tt.envValue,
			})

			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Workers.PollMaxDelay)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

var configEnvKeys = []string{
	"CONFIG",

	"APP_LOG_LEVEL",
	"APP_OUTPUT",

	"ADAPTER_ADDRESS",
	"ADAPTER_REQUEST_TIMEOUT",
	"ADAPTER_PROCESS_TIMEOUT",

	"STORAGE_DB_DATABASE_URI",

	"WORKERS_POLL_INITIAL_DELAY",
	"WORKERS_POLL_MAX_DELAY",
	"WORKERS_POLL_MAX_ATTEMPTS",
}

// clearEnvVars unsets every configuration variable for the duration of the
// test and restores the previous values afterwards.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		if prev, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, prev) })
		}
		_ = os.Unsetenv(k)
	}
}
