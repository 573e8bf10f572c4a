// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptionStatus_Label(t *testing.T) {
	want := map[TranscriptionStatus]string{
		StatusPending:    "Pending",
		StatusProcessing: "In progress",
		StatusCompleted:  "Completed",
		StatusFailed:     "Failed",
	}

	// каждый известный статус имеет свою метку
	for _, s := range Statuses() {
		assert.True(t, s.Known(), s)
		assert.Equal(t, want[s], s.Label(), s)
	}
	assert.Len(t, Statuses(), len(want))

	for _, unknown := range []TranscriptionStatus{"", "queued", "COMPLETED"} {
		assert.False(t, unknown.Known())
		assert.Equal(t, "Pending", unknown.Label())
	}
}

func TestTranscriptionStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, TranscriptionStatus("archived").IsTerminal())
}

func TestTranscriptionID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    TranscriptionID
		wantErr bool
	}{
		{name: "number", raw: `42`, want: "42"},
		{name: "string", raw: `"abc-1"`, want: "abc-1"},
		{name: "null", raw: `null`, want: ""},
		{name: "object", raw: `{}`, wantErr: true},
		{name: "bool", raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id TranscriptionID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestTranscription_DecodeServiceRecord(t *testing.T) {
	raw := `{
		"id": 3,
		"user_id": 1,
		"title": "Sprint review",
		"date": "2024-03-01T00:00:00",
		"initial_prompt": null,
		"audio_file_path": "uploads/audio/1/x.mp3",
		"status": "completed",
		"transcription_text": "raw",
		"processed_text": "clean",
		"document_path": "documents/3.docx",
		"created_at": "2024-03-01T10:15:30.123456"
	}`

	var tr Transcription
	require.NoError(t, json.Unmarshal([]byte(raw), &tr))

	assert.Equal(t, TranscriptionID("3"), tr.ID)
	assert.Equal(t, "2024-03-01", tr.Date.Format("2006-01-02"))
	assert.Nil(t, tr.InitialPrompt)
	assert.Equal(t, StatusCompleted, tr.Status)
	require.NotNil(t, tr.ProcessedText)
	assert.Equal(t, "clean", *tr.ProcessedText)
	assert.Equal(t, 123456000, tr.CreatedAt.Nanosecond())
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "Sprint review.docx", DocumentFilename(Transcription{Title: " Sprint review "}))
	assert.Equal(t, "a_b_c.docx", DocumentFilename(Transcription{Title: "a/b:c"}))
	assert.Equal(t, "transcription.docx", DocumentFilename(Transcription{Title: "  "}))
}

func TestSession_LoggedIn(t *testing.T) {
	assert.False(t, Session{}.LoggedIn())
	assert.False(t, Session{Token: "t"}.LoggedIn())
	assert.False(t, Session{User: &User{ID: 1}}.LoggedIn())
	assert.True(t, Session{Token: "t", User: &User{ID: 1}}.LoggedIn())
}
