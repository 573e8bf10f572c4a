// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is the command-line client of the transcription service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-transcriber/internal/client"
	"github.com/MKhiriev/go-transcriber/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app := client.NewApp(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return client.ExitCode(err)
	}
	return client.ExitSuccess
}
