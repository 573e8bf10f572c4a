// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-transcriber/internal/app"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/utils"
)

const requestIDHeader = "X-Request-ID"

type userCtxKey struct{}

var errInvalidToken = errors.New("invalid token")

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		l := s.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)

		log.Debug().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Send()
	})
}

func (s *Server) withCounting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.countRequest()
		next.ServeHTTP(w, r)
	})
}

// auth resolves the bearer token to an account and stores its user id in
// the request context.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			_, _ = utils.WriteDetail(w, app.MsgNotAuthenticated, http.StatusUnauthorized)
			return
		}

		userID, err := s.parseToken(token)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("token rejected")
			w.Header().Set("WWW-Authenticate", "Bearer")
			_, _ = utils.WriteDetail(w, app.MsgCouldNotValidateCredentials, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, userID)))
	})
}

func currentUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userCtxKey{}).(int64)
	return id
}

func (s *Server) issueToken(username string) (string, error) {
	now := s.now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}).SignedString(s.secret)
}

func (s *Server) parseToken(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[claims.Subject]
	if !ok {
		return 0, errInvalidToken
	}
	return acc.user.ID, nil
}
