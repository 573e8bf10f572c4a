// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-transcriber/internal/app"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/utils"
	"github.com/MKhiriev/go-transcriber/models"
)

const (
	maxUploadMemory = 32 << 20
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type transcriptionJSON struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"user_id"`
	Title             string  `json:"title"`
	Date              string  `json:"date"`
	InitialPrompt     *string `json:"initial_prompt"`
	AudioFilePath     string  `json:"audio_file_path"`
	Status            string  `json:"status"`
	TranscriptionText *string `json:"transcription_text"`
	ProcessedText     *string `json:"processed_text"`
	DocumentPath      *string `json:"document_path"`
	CreatedAt         string  `json:"created_at"`
}

func (rec *record) response() transcriptionJSON {
	return transcriptionJSON{
		ID:                rec.id,
		UserID:            rec.userID,
		Title:             rec.title,
		Date:              rec.date.Format("2006-01-02T15:04:05"),
		InitialPrompt:     rec.initialPrompt,
		AudioFilePath:     fmt.Sprintf("uploads/audio/%d/%s", rec.userID, rec.audioFilename),
		Status:            string(rec.status),
		TranscriptionText: rec.transcription,
		ProcessedText:     rec.processed,
		DocumentPath:      rec.documentPath,
		CreatedAt:         rec.createdAt.Format(isoLayout),
	}
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// parseISODate accepts what datetime.fromisoformat accepts for the client's
// inputs: a date, or a date-time with an optional zone.
func parseISODate(raw string) (time.Time, bool) {
	raw = strings.Replace(raw, "Z", "+00:00", 1)
	for _, layout := range []string{time.DateOnly, "2006-01-02T15:04:05", "2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05.999999-07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// lookup returns the record if it belongs to the user. Must be called with
// mu held.
func (s *Server) lookup(r *http.Request) (*record, bool) {
	rec, ok := s.records[parseID(chi.URLParam(r, "id"))]
	if !ok || rec.userID != currentUserID(r) {
		return nil, false
	}
	return rec, true
}

func (s *Server) createTranscription(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeMissing(w, "title", "date", "audio_file")
		return
	}

	title := r.FormValue("title")
	date := r.FormValue("date")
	file, header, fileErr := r.FormFile("audio_file")

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if fileErr != nil {
		missing = append(missing, "audio_file")
	}
	if len(missing) > 0 {
		if file != nil {
			_ = file.Close()
		}
		writeMissing(w, missing...)
		return
	}
	defer file.Close()

	meetingDate, ok := parseISODate(date)
	if !ok {
		_, _ = utils.WriteDetail(w, app.MsgInvalidDateFormat, http.StatusBadRequest)
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		_, _ = utils.WriteDetail(w, app.MsgCannotReadAudio, http.StatusBadRequest)
		return
	}

	var prompt *string
	if values, present := r.MultipartForm.Value["initial_prompt"]; present && len(values) > 0 {
		prompt = &values[0]
	}

	s.mu.Lock()
	s.nextRecordID++
	rec := &record{
		id:            s.nextRecordID,
		userID:        currentUserID(r),
		title:         title,
		date:          meetingDate,
		initialPrompt: prompt,
		audioFilename: header.Filename,
		audio:         audio,
		status:        models.StatusPending,
		createdAt:     s.now().Truncate(time.Microsecond),
	}
	s.records[rec.id] = rec
	s.order = append(s.order, rec.id)
	resp := rec.response()
	s.mu.Unlock()

	logger.FromRequest(r).Debug().Int64("transcription_id", rec.id).Msg("transcription created")
	_, _ = utils.WriteJSON(w, resp, http.StatusCreated)
}

func (s *Server) listTranscriptions(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	items := make([]transcriptionJSON, 0)
	// newest first, like ORDER BY created_at DESC
	for _, id := range slices.Backward(s.order) {
		rec := s.records[id]
		if rec == nil || rec.userID != userID {
			continue
		}
		s.advance(rec)
		items = append(items, rec.response())
	}
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, items, http.StatusOK)
}

func (s *Server) getTranscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgTranscriptionNotFound, http.StatusNotFound)
		return
	}
	s.advance(rec)
	resp := rec.response()
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

func (s *Server) processTranscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgTranscriptionNotFound, http.StatusNotFound)
		return
	}
	if rec.status == models.StatusProcessing {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgAlreadyProcessing, http.StatusBadRequest)
		return
	}

	rec.status = models.StatusProcessing
	rec.readsUntilDone = s.processingReads
	rec.transcription, rec.processed, rec.documentPath, rec.document = nil, nil, nil, nil
	s.mu.Unlock()

	_, _ = utils.WriteJSON(w, models.ProcessAck{
		Status:  string(models.StatusProcessing),
		Message: app.MsgProcessingStarted,
	}, http.StatusOK)
}

func (s *Server) downloadDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgTranscriptionNotFound, http.StatusNotFound)
		return
	}
	if rec.document == nil || rec.documentPath == nil {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgDocumentNotFound, http.StatusNotFound)
		return
	}
	document := append([]byte(nil), rec.document...)
	name := *rec.documentPath
	s.mu.Unlock()

	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (s *Server) deleteTranscription(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgTranscriptionNotFound, http.StatusNotFound)
		return
	}
	delete(s.records, rec.id)
	s.order = slices.DeleteFunc(s.order, func(id int64) bool { return id == rec.id })
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
