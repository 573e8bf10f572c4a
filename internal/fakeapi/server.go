// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fakeapi is an in-process stand-in for the transcription service.
//
// It speaks the same REST contract as the real service (form login, bearer
// tokens, multipart upload, FastAPI style {"detail": ...} errors) and keeps
// everything in memory. Processing is simulated: a record moves from
// processing to a terminal status after a configurable number of reads, so
// polling clients can be exercised end to end without speech recognition.
package fakeapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/models"
)

// isoLayout is the naive isoformat() layout used by the real service.
const isoLayout = "2006-01-02T15:04:05.000000"

// DefaultFailMarker makes processing of a record fail when its title
// contains it.
const DefaultFailMarker = "[fail]"

type account struct {
	user     models.User
	password string
}

type record struct {
	id             int64
	userID         int64
	title          string
	date           time.Time
	initialPrompt  *string
	audioFilename  string
	audio          []byte
	status         models.TranscriptionStatus
	transcription  *string
	processed      *string
	documentPath   *string
	document       []byte
	createdAt      time.Time
	readsUntilDone int
}

// Server is the in-memory transcription service.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account
	records  map[int64]*record
	order    []int64

	nextUserID   int64
	nextRecordID int64

	secret          []byte
	tokenTTL        time.Duration
	processingReads int
	failMarker      string
	now             func() time.Time

	requests int

	logger *logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithUser seeds an account.
func WithUser(username, email, password string) Option {
	return func(s *Server) {
		s.addAccount(username, email, password)
	}
}

// WithProcessingReads sets how many reads of a processing record happen
// before it reaches a terminal status. Zero finishes on the first read.
func WithProcessingReads(n int) Option {
	return func(s *Server) {
		if n < 0 {
			n = 0
		}
		s.processingReads = n
	}
}

// WithFailMarker changes the title marker that makes processing fail.
func WithFailMarker(marker string) Option {
	return func(s *Server) {
		s.failMarker = marker
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

// WithLogger sets the logger used by the request middleware.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates an empty service.
func New(opts ...Option) *Server {
	s := &Server{
		accounts:        make(map[string]*account),
		records:         make(map[int64]*record),
		secret:          []byte("fakeapi-signing-key"),
		tokenTTL:        30 * time.Minute,
		processingReads: 2,
		failMarker:      DefaultFailMarker,
		now:             func() time.Time { return time.Now().UTC() },
		logger:          logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Requests returns the number of requests served so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Document returns the generated document of a record, or nil.
func (s *Server) Document(id models.TranscriptionID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[parseID(string(id))]
	if !ok || rec.document == nil {
		return nil
	}
	return append([]byte(nil), rec.document...)
}

// Audio returns the uploaded audio of a record, or nil.
func (s *Server) Audio(id models.TranscriptionID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[parseID(string(id))]
	if !ok {
		return nil
	}
	return append([]byte(nil), rec.audio...)
}

func (s *Server) countRequest() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

// addAccount must be called with mu held or before the server is shared.
func (s *Server) addAccount(username, email, password string) *account {
	s.nextUserID++
	acc := &account{
		user: models.User{
			ID:        s.nextUserID,
			Username:  username,
			Email:     email,
			CreatedAt: models.Timestamp{Time: s.now().Truncate(time.Microsecond)},
		},
		password: password,
	}
	s.accounts[username] = acc
	return acc
}

// advance moves a processing record one read closer to its outcome.
// Must be called with mu held.
func (s *Server) advance(rec *record) {
	if rec.status != models.StatusProcessing {
		return
	}
	if rec.readsUntilDone > 0 {
		rec.readsUntilDone--
		return
	}

	raw := fmt.Sprintf("transcript of %s", rec.audioFilename)
	rec.transcription = &raw

	if s.failMarker != "" && strings.Contains(rec.title, s.failMarker) {
		rec.status = models.StatusFailed
		return
	}

	processed := fmt.Sprintf("# %s\n\n%s", rec.title, raw)
	rec.processed = &processed

	path := fmt.Sprintf("uploads/documents/%d/%d_%s.docx", rec.userID, rec.id, strings.ReplaceAll(rec.title, " ", "_"))
	rec.documentPath = &path
	rec.document = renderDocument(rec)
	rec.status = models.StatusCompleted
}

// renderDocument produces deterministic bytes standing in for a .docx file.
func renderDocument(rec *record) []byte {
	var b strings.Builder
	b.WriteString("PK\x03\x04")
	b.WriteString(rec.title)
	b.WriteByte(0)
	b.WriteString(rec.date.Format(time.DateOnly))
	b.WriteByte(0)
	if rec.processed != nil {
		b.WriteString(*rec.processed)
	}
	return []byte(b.String())
}
