// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the account record returned by the transcription service.
// The client never edits it; it only reads it back after authentication.
type User struct {
	// ID is the server-assigned identifier of the account.
	ID int64 `json:"id" yaml:"id"`

	// Username is the unique login name.
	Username string `json:"username" yaml:"username"`

	// Email is the address supplied during registration.
	Email string `json:"email" yaml:"email"`

	// CreatedAt is the moment the account was created on the server.
	CreatedAt Timestamp `json:"created_at" yaml:"created_at"`
}

// Credentials carries the username/password pair used for login.
// The value is transient and must never be persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration carries the data required to create a new account.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is a point-in-time view of the client's authentication state.
//
// Token is the only durable part of the session. User is set only after the
// service has accepted Token; Loading is true while the persisted token is
// being validated during start-up.
type Session struct {
	Token   string
	User    *User
	Loading bool

	// ExpiresAt is the "exp" claim of Token when the token is a JWT.
	// It is informational only and zero when unknown.
	ExpiresAt time.Time
}

// LoggedIn reports whether the session holds a validated user.
func (s Session) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}
