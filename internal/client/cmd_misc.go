// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-transcriber/internal/service"
)

func newHealthCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is reachable",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.adapter.Health(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.health(h)
		},
	}
}

func newVersionCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print build information",
		Args:        exactArgs(0),
		Annotations: map[string]string{annotationOffline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := service.NewAppInfoService(a.buildInfo, a.logger).BuildInfo(cmd.Context())
			return a.printer.buildInfo(info)
		},
	}
}
