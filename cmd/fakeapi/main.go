// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command fakeapi serves the in-memory transcription service for local
// development of the client.
//
// Usage:
//
//	fakeapi --address :8010 --user demo:demo@example.com:secret
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-transcriber/internal/fakeapi"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	fs := pflag.NewFlagSet("fakeapi", pflag.ExitOnError)
	address := fs.String("address", "localhost:8010", "Listen address")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	reads := fs.Int("processing-reads", 2, "Reads of a processing record before it finishes")
	failMarker := fs.String("fail-marker", fakeapi.DefaultFailMarker, "Title marker that makes processing fail")
	users := fs.StringArray("user", nil, "Seed account as username:email:password (repeatable)")
	_ = fs.Parse(os.Args[1:])

	log := logger.NewLogger(os.Stdout, "fakeapi", *logLevel)

	opts := []fakeapi.Option{
		fakeapi.WithLogger(log),
		fakeapi.WithProcessingReads(*reads),
		fakeapi.WithFailMarker(*failMarker),
	}
	for _, u := range *users {
		parts := strings.SplitN(u, ":", 3)
		if len(parts) != 3 {
			log.Fatal().Str("user", u).Msg("seed account must be username:email:password")
		}
		opts = append(opts, fakeapi.WithUser(parts[0], parts[1], parts[2]))
	}

	srv, err := server.NewServer(fakeapi.New(opts...).Handler(), *address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
