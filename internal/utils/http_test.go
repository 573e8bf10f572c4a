// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "health", data: map[string]string{"status": "healthy"}, status: http.StatusOK, wantBody: `{"status":"healthy"}`},
		{name: "created list", data: []int{3, 2, 1}, status: http.StatusCreated, wantBody: `[3,2,1]`},
		{name: "null list", data: []string(nil), status: http.StatusOK, wantBody: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)
			require.NoError(t, err)

			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_NotSerializable(t *testing.T) {
	w := httptest.NewRecorder()

	// канал не сериализуется в JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteDetail(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteDetail(w, "Transcription not found", http.StatusNotFound)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Transcription not found"}`, w.Body.String())
}
