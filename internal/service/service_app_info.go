// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/models"
)

// notAvailable replaces build fields that were not injected by the linker.
const notAvailable = "N/A"

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewAppInfoService(buildInfo models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		buildInfo: models.NewAppBuildInfo(
			orNotAvailable(buildInfo.BuildVersion()),
			orNotAvailable(buildInfo.BuildDate()),
			orNotAvailable(buildInfo.BuildCommit()),
		),
		logger: logger,
	}
}

func (s *appInfoService) BuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}
