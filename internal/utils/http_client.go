// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every outgoing request.
const UserAgent = "go-transcriber"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient bound to baseURL.
//
// The client never retries on its own: a failed call is reported to the caller
// exactly once. A zero timeout disables the per-request deadline.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8010", time.Minute)
//	resp, err := client.R().Get("/health")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
