// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

func (cfg *ClientConfig) validate() error {
	// the session token has to survive between invocations
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if strings.TrimSpace(cfg.Adapter.HTTPAddress) == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ProcessTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.PollInitialDelay <= 0 || w.PollMaxDelay < w.PollInitialDelay || w.PollMaxAttempts <= 0 {
		return fmt.Errorf("%w: initial delay %s, max delay %s, attempts %d",
			ErrInvalidWorkerConfigs, w.PollInitialDelay, w.PollMaxDelay, w.PollMaxAttempts)
	}

	switch cfg.App.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidAppConfigs, cfg.App.Output)
	}

	return nil
}
