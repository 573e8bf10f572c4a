// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-transcriber/internal/app"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/utils"
	"github.com/MKhiriev/go-transcriber/models"
)

type validationItem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// writeMissing answers like FastAPI does for absent required fields.
func writeMissing(w http.ResponseWriter, fields ...string) {
	items := make([]validationItem, 0, len(fields))
	for _, field := range fields {
		items = append(items, validationItem{Loc: []string{"body", field}, Msg: app.MsgFieldRequired, Type: "missing"})
	}
	_, _ = utils.WriteJSON(w, map[string]any{"detail": items}, http.StatusUnprocessableEntity)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var registration models.Registration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		_, _ = utils.WriteDetail(w, app.MsgInvalidJSONBody, http.StatusUnprocessableEntity)
		return
	}

	var missing []string
	if registration.Username == "" {
		missing = append(missing, "username")
	}
	if registration.Email == "" {
		missing = append(missing, "email")
	}
	if registration.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		writeMissing(w, missing...)
		return
	}
	if !strings.Contains(registration.Email, "@") {
		_, _ = utils.WriteJSON(w, map[string]any{"detail": []validationItem{{
			Loc:  []string{"body", "email"},
			Msg:  app.MsgInvalidEmail,
			Type: "value_error",
		}}}, http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	if _, taken := s.accounts[registration.Username]; taken {
		s.mu.Unlock()
		_, _ = utils.WriteDetail(w, app.MsgUsernameRegistered, http.StatusBadRequest)
		return
	}
	for _, acc := range s.accounts {
		if strings.EqualFold(acc.user.Email, registration.Email) {
			s.mu.Unlock()
			_, _ = utils.WriteDetail(w, app.MsgEmailRegistered, http.StatusBadRequest)
			return
		}
	}
	acc := s.addAccount(registration.Username, registration.Email, registration.Password)
	user := acc.user
	s.mu.Unlock()

	logger.FromRequest(r).Debug().Str("username", user.Username).Msg("account registered")
	_, _ = utils.WriteJSON(w, userResponse(user), http.StatusOK)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_, _ = utils.WriteDetail(w, app.MsgInvalidFormBody, http.StatusUnprocessableEntity)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		writeMissing(w, missing...)
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[username]
	valid := ok && acc.password == password
	s.mu.Unlock()

	if !valid {
		w.Header().Set("WWW-Authenticate", "Bearer")
		_, _ = utils.WriteDetail(w, app.MsgIncorrectCredentials, http.StatusUnauthorized)
		return
	}

	token, err := s.issueToken(username)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("cannot sign token")
		_, _ = utils.WriteDetail(w, app.MsgCouldNotCreateToken, http.StatusInternalServerError)
		return
	}

	_, _ = utils.WriteJSON(w, models.Token{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.user.ID == userID {
			_, _ = utils.WriteJSON(w, userResponse(acc.user), http.StatusOK)
			return
		}
	}
	_, _ = utils.WriteDetail(w, app.MsgCouldNotValidateCredentials, http.StatusUnauthorized)
}

type userJSON struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func userResponse(u models.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(isoLayout),
	}
}
