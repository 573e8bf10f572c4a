// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
)

// Flag names shared by every client command.
const (
	FlagServer           = "server"
	FlagRequestTimeout   = "request-timeout"
	FlagProcessTimeout   = "process-timeout"
	FlagDB               = "db"
	FlagConfig           = "config"
	FlagLogLevel         = "log-level"
	FlagOutput           = "output"
	FlagPollInitialDelay = "poll-initial-delay"
	FlagPollMaxDelay     = "poll-max-delay"
	FlagPollMaxAttempts  = "poll-max-attempts"
)

// RegisterFlags defines the configuration flags on fs.
//
// Flags:
//
//	--server              transcription service base URL
//	--request-timeout     outbound request timeout (e.g. "30s", "2m")
//	--process-timeout     processing request timeout, 0 for no limit
//	--db                  local SQLite database path
//	-c/--config           json file path with configs
//	--log-level           log level (debug, info, warn, error)
//	--output              result format: table, json or yaml
//	--poll-initial-delay  pause before the first status re-fetch
//	--poll-max-delay      upper bound of the backoff between re-fetches
//	--poll-max-attempts   maximum number of status re-fetches
//
// Every flag defaults to its zero value so that an unset flag never hides a
// value coming from the environment or the JSON file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagServer, "", "Transcription service URL (default "+DefaultHTTPAddress+")")
	fs.Duration(FlagRequestTimeout, 0, "Request timeout, e.g. 30s, 2m (default 1m0s)")
	fs.Duration(FlagProcessTimeout, 0, "Timeout of the processing request (default: no limit)")
	fs.String(FlagDB, "", "Local database path (default "+DefaultDSN+")")
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.String(FlagLogLevel, "", "Log level: debug, info, warn, error (default "+DefaultLogLevel+")")
	fs.String(FlagOutput, "", "Output format: table, json, yaml (default "+DefaultOutput+")")
	fs.Duration(FlagPollInitialDelay, 0, "Delay before the first status check (default 2s)")
	fs.Duration(FlagPollMaxDelay, 0, "Maximum delay between status checks (default 30s)")
	fs.Int(FlagPollMaxAttempts, 0, "Maximum number of status checks (default 20)")
}

// parseFlags reads the flags registered by [RegisterFlags] from an already
// parsed flag set. Flags missing from fs are left empty; a nil fs yields an
// empty config.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if fs == nil {
		return cfg, nil
	}

	var errs []error
	str := func(name string, dst *string) {
		if fs.Lookup(name) == nil {
			return
		}
		v, err := fs.GetString(name)
		errs = append(errs, err)
		*dst = v
	}

	str(FlagServer, &cfg.Adapter.HTTPAddress)
	str(FlagDB, &cfg.Storage.DB.DSN)
	str(FlagConfig, &cfg.JSONFilePath)
	str(FlagLogLevel, &cfg.App.LogLevel)
	str(FlagOutput, &cfg.App.Output)

	if fs.Lookup(FlagRequestTimeout) != nil {
		v, err := fs.GetDuration(FlagRequestTimeout)
		errs = append(errs, err)
		cfg.Adapter.RequestTimeout = v
	}
	if fs.Lookup(FlagProcessTimeout) != nil {
		v, err := fs.GetDuration(FlagProcessTimeout)
		errs = append(errs, err)
		cfg.Adapter.ProcessTimeout = v
	}
	if fs.Lookup(FlagPollInitialDelay) != nil {
		v, err := fs.GetDuration(FlagPollInitialDelay)
		errs = append(errs, err)
		cfg.Workers.PollInitialDelay = v
	}
	if fs.Lookup(FlagPollMaxDelay) != nil {
		v, err := fs.GetDuration(FlagPollMaxDelay)
		errs = append(errs, err)
		cfg.Workers.PollMaxDelay = v
	}
	if fs.Lookup(FlagPollMaxAttempts) != nil {
		v, err := fs.GetInt(FlagPollMaxAttempts)
		errs = append(errs, err)
		cfg.Workers.PollMaxAttempts = v
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}

	return cfg, nil
}
