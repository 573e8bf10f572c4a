// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TranscriptionID identifies a transcription record. The service issues
// integer identifiers; the client keeps them opaque.
type TranscriptionID string

// String returns the identifier as text.
func (id TranscriptionID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *TranscriptionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TranscriptionID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("transcription id must be a number or a string: %w", err)
	}
	*id = TranscriptionID(n.String())
	return nil
}

// TranscriptionStatus is the processing state of a transcription record.
// Transitions are decided by the service only.
type TranscriptionStatus string

const (
	StatusPending    TranscriptionStatus = "pending"
	StatusProcessing TranscriptionStatus = "processing"
	StatusCompleted  TranscriptionStatus = "completed"
	StatusFailed     TranscriptionStatus = "failed"
)

var statusLabels = map[TranscriptionStatus]string{
	StatusPending:    "Pending",
	StatusProcessing: "In progress",
	StatusCompleted:  "Completed",
	StatusFailed:     "Failed",
}

// Statuses returns every known status in lifecycle order.
func Statuses() []TranscriptionStatus {
	return []TranscriptionStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
}

// Known reports whether s is one of the four lifecycle states.
func (s TranscriptionStatus) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display label for s. Unknown values fall back to the
// pending label.
func (s TranscriptionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusPending]
}

// IsTerminal reports whether the service will not move the record any further.
func (s TranscriptionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transcription is a single audio submission and its processing results.
type Transcription struct {
	ID                TranscriptionID     `json:"id" yaml:"id"`
	Title             string              `json:"title" yaml:"title"`
	Date              Timestamp           `json:"date" yaml:"date"`
	InitialPrompt     *string             `json:"initial_prompt,omitempty" yaml:"initial_prompt,omitempty"`
	Status            TranscriptionStatus `json:"status" yaml:"status"`
	TranscriptionText *string             `json:"transcription_text,omitempty" yaml:"transcription_text,omitempty"`
	ProcessedText     *string             `json:"processed_text,omitempty" yaml:"processed_text,omitempty"`
	CreatedAt         Timestamp           `json:"created_at" yaml:"created_at"`

	// Informational fields echoed by the service.
	UserID        int64   `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	AudioFilePath string  `json:"audio_file_path,omitempty" yaml:"audio_file_path,omitempty"`
	DocumentPath  *string `json:"document_path,omitempty" yaml:"document_path,omitempty"`
}

// AudioFile is the audio payload of a creation request.
type AudioFile struct {
	Filename string
	Reader   io.Reader
}

// NewTranscription is the creation request for a transcription record.
type NewTranscription struct {
	Title string
	// Date is forwarded verbatim; the service expects an ISO date.
	Date          string
	InitialPrompt string
	Audio         *AudioFile
}

// ProcessAck is the acknowledgement returned when processing is requested.
// It says nothing about the final outcome.
type ProcessAck struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// Document is a downloaded transcription document.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentFilename returns a filename for the document of t when the service
// did not provide one.
func DocumentFilename(t Transcription) string {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "transcription"
	}
	title = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, title)
	return title + ".docx"
}
