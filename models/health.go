// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Health is the liveness report of the transcription service.
type Health struct {
	Status string `json:"status" yaml:"status"`
}
