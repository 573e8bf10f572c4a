// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-transcriber/internal/app"
	"github.com/MKhiriev/go-transcriber/internal/utils"
)

// Handler returns the router serving the REST contract.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withRequestID, s.withLogging, s.withCounting)

	router.Get("/health", s.health)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.With(s.auth).Get("/me", s.me)
	})

	router.Route("/transcriptions", func(r chi.Router) {
		r.Use(s.auth)
		r.Post("/", s.createTranscription)
		r.Get("/", s.listTranscriptions)
		r.Get("/{id}", s.getTranscription)
		r.Delete("/{id}", s.deleteTranscription)
		r.Post("/{id}/process", s.processTranscription)
		r.Get("/{id}/download", s.downloadDocument)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteDetail(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteDetail(w, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
	})

	return router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, map[string]string{"status": app.MsgHealthy}, http.StatusOK)
}
