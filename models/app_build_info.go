// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags at build time and shown by the
// client's version command.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

type buildInfoView struct {
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date" yaml:"date"`
	Commit  string `json:"commit" yaml:"commit"`
}

func (a AppBuildInfo) view() buildInfoView {
	return buildInfoView{Version: a.buildVersion, Date: a.buildDate, Commit: a.buildCommit}
}

// MarshalJSON implements json.Marshaler.
func (a AppBuildInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.view())
}

// MarshalYAML implements yaml.Marshaler.
func (a AppBuildInfo) MarshalYAML() (any, error) {
	return a.view(), nil
}
