// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-transcriber/internal/adapter"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/store"
	"github.com/MKhiriev/go-transcriber/internal/utils"
	"github.com/MKhiriev/go-transcriber/models"
)

type clientSessionService struct {
	tokens  store.SessionStorage
	cache   store.TranscriptionCache
	adapter adapter.ServerAdapter

	mu      sync.RWMutex
	session models.Session
	// generation changes on every login, logout and teardown. A profile
	// fetch started in an older generation must not write the user back.
	generation uint64

	logger *logger.Logger
}

// NewClientSessionService creates a session service in the logged-out state.
// Call Initialize to restore a persisted session.
func NewClientSessionService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		tokens:  storages.Session,
		cache:   storages.Transcriptions,
		adapter: serverAdapter,
		logger:  logger,
	}
}

// Initialize implements [ClientSessionService].
func (s *clientSessionService) Initialize(ctx context.Context) models.Session {
	s.mu.Lock()
	s.session.Loading = true
	gen := s.generation
	s.mu.Unlock()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Initialize").Msg("cannot read persisted token")
		s.resetIfCurrent(ctx, gen)
		return s.Session()
	}

	if token == "" {
		s.mu.Lock()
		if s.generation == gen {
			s.session = models.Session{}
		}
		s.mu.Unlock()
		return s.Session()
	}

	user, err := s.adapter.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "clientSessionService.Initialize").Msg("persisted token rejected, clearing session")
		s.resetIfCurrent(ctx, gen)
		return s.Session()
	}

	s.mu.Lock()
	if s.generation == gen {
		s.session = models.Session{
			Token:     token,
			User:      &user,
			ExpiresAt: tokenExpiry(token),
		}
	}
	s.mu.Unlock()

	s.logger.Debug().Str("func", "clientSessionService.Initialize").Str("username", user.Username).Msg("session restored")
	return s.Session()
}

// resetIfCurrent clears the persisted token and the in-memory state unless
// another login or logout happened since gen was taken.
func (s *clientSessionService) resetIfCurrent(ctx context.Context, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.session.Loading = false
		return
	}

	s.session = models.Session{}
	if err := s.tokens.DeleteToken(ctx); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.resetIfCurrent").Msg("cannot delete persisted token")
	}
}

// Login implements [ClientSessionService].
func (s *clientSessionService) Login(ctx context.Context, username, password string) (models.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return models.Session{}, fmt.Errorf("%w: %w", ErrValidation, ErrCredentialsRequired)
	}

	token, err := s.adapter.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		s.logger.Debug().Err(err).Str("func", "clientSessionService.Login").Msg("login rejected")
		return s.Session(), fmt.Errorf("login: %w", mapAuthError(err))
	}

	s.mu.Lock()
	if err = s.tokens.SaveToken(ctx, token.AccessToken); err != nil {
		s.mu.Unlock()
		return s.Session(), fmt.Errorf("persist token: %w", err)
	}
	s.generation++
	gen := s.generation
	s.session = models.Session{
		Token:     token.AccessToken,
		Loading:   true,
		ExpiresAt: tokenExpiry(token.AccessToken),
	}
	s.mu.Unlock()

	// the snapshot may belong to the previous user
	if err = s.cache.Clear(ctx); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Login").Msg("cannot clear transcription snapshot")
	}

	user, err := s.adapter.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		return s.copySession(), ErrSessionChanged
	}
	s.session.Loading = false
	if err != nil {
		return s.copySession(), fmt.Errorf("fetch profile: %w", err)
	}
	s.session.User = &user

	s.logger.Info().Str("func", "clientSessionService.Login").Str("username", user.Username).Msg("logged in")
	return s.copySession(), nil
}

// Register implements [ClientSessionService].
func (s *clientSessionService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, ErrCredentialsRequired)
	}

	user, err := s.adapter.Register(ctx, models.Registration{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", mapAuthError(err))
	}

	return user, nil
}

// Logout implements [ClientSessionService].
func (s *clientSessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	s.session = models.Session{}
	s.mu.Unlock()

	var errs []error
	if err := s.tokens.DeleteToken(ctx); err != nil {
		errs = append(errs, fmt.Errorf("delete token: %w", err))
	}
	if err := s.cache.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear snapshot: %w", err))
	}

	return errors.Join(errs...)
}

// Session implements [ClientSessionService].
func (s *clientSessionService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copySession()
}

// Teardown implements [ClientSessionService].
func (s *clientSessionService) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.session = models.Session{}
}

// copySession must be called with mu held.
func (s *clientSessionService) copySession() models.Session {
	session := s.session
	if session.User != nil {
		user := *session.User
		session.User = &user
	}
	return session
}

func tokenExpiry(token string) time.Time {
	exp, err := utils.TokenExpiry(token)
	if err != nil {
		return time.Time{}
	}
	return exp
}
