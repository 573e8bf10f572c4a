// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-transcriber/internal/logger"
)

func TestNewServer_Validation(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	_, err := NewServer(h, "", logger.Nop())
	assert.ErrorIs(t, err, errNoAddress)

	_, err = NewServer(nil, "127.0.0.1:0", logger.Nop())
	assert.ErrorIs(t, err, errNoHandler)
}

func TestServer_RunAndStop(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	srv, err := NewServer(h, "127.0.0.1:0", logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	addr := BoundAddress(waitCtx, srv)
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	// остановка через контекст
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_ListenError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	srv, err := NewServer(h, "127.0.0.1:99999", logger.Nop())
	require.NoError(t, err)

	assert.Error(t, srv.Run(context.Background()))
}
