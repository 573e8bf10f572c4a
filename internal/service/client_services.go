// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/models"
)

// ClientServices groups the services used by the command-line client.
type ClientServices struct {
	Session        ClientSessionService
	Transcriptions ClientTranscriptionService
	AppInfo        AppInfoService
}

// NewClientServices wires the services to the storages and the adapter.
func NewClientServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	poll PollPolicy,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *ClientServices {
	return &ClientServices{
		Session:        NewClientSessionService(storages, serverAdapter, logger),
		Transcriptions: NewClientTranscriptionService(storages, serverAdapter, poll, logger),
		AppInfo:        NewAppInfoService(buildInfo, logger),
	}
}
