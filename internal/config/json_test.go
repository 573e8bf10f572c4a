// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")

	jsonBody := `{
		"app": { "log_level": "warn", "output": "yaml" },
		"adapter": {
			"http_address": "https://transcriber.example.com",
			"request_timeout": "2m",
			"process_timeout": "30m"
		},
		"storage": {
			"db": { "dsn": "/home/user/.transcriber.db" }
		},
		"workers": {
			"poll_initial_delay": "1s",
			"poll_max_delay": 10000000000,
			"poll_max_attempts": 12
		}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "yaml", cfg.App.Output)
	assert.Equal(t, "https://transcriber.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 2*time.Minute, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Adapter.ProcessTimeout)
	assert.Equal(t, "/home/user/.transcriber.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Second, cfg.Workers.PollInitialDelay)
	assert.Equal(t, 10*time.Second, cfg.Workers.PollMaxDelay)
	assert.Equal(t, 12, cfg.Workers.PollMaxAttempts)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app":`), 0o600))

	_, err := parseJSON(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad-duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"adapter":{"request_timeout":"forever"}}`), 0o600))

	_, err := parseJSON(p)

	require.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	in := struct {
		D Duration `json:"d"`
	}{D: Duration(1500 * time.Millisecond)}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"1.5s"}`, string(b))

	var out struct {
		D Duration `json:"d"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in.D, out.D)
}

func TestDuration_UnmarshalRejectsBool(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}
