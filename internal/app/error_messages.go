// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable "detail" messages of the
// transcription service API.
//
// The in-process fake service writes them into error bodies and the tests of
// the client match against them, so the wording is kept in one place.
package app

const (
	// MsgFieldRequired is the per-field message of a 422 validation list.
	MsgFieldRequired = "Field required"

	// MsgInvalidJSONBody is returned when a JSON request body cannot be
	// decoded.
	MsgInvalidJSONBody = "Invalid JSON body"

	// MsgInvalidFormBody is returned when a form or multipart body cannot be
	// parsed.
	MsgInvalidFormBody = "Invalid form body"

	// MsgInvalidEmail is the validation message of a malformed e-mail address.
	MsgInvalidEmail = "value is not a valid email address"

	// MsgUsernameRegistered is returned when registration reuses a username.
	MsgUsernameRegistered = "Username already registered"

	// MsgEmailRegistered is returned when registration reuses an e-mail.
	MsgEmailRegistered = "Email already registered"

	// MsgIncorrectCredentials is returned by the token endpoint for an
	// unknown username or a wrong password.
	MsgIncorrectCredentials = "Incorrect username or password"

	// MsgCouldNotCreateToken is returned when the access token cannot be
	// signed.
	MsgCouldNotCreateToken = "Could not create token"

	// MsgNotAuthenticated is returned when the bearer token is missing.
	MsgNotAuthenticated = "Not authenticated"

	// MsgCouldNotValidateCredentials is returned when the bearer token is
	// malformed, expired or belongs to an unknown user.
	MsgCouldNotValidateCredentials = "Could not validate credentials"

	// MsgInvalidDateFormat is returned when the date of a new transcription
	// is not an ISO date.
	MsgInvalidDateFormat = "Invalid date format"

	// MsgCannotReadAudio is returned when the uploaded audio part cannot be
	// read.
	MsgCannotReadAudio = "Cannot read audio file"

	// MsgTranscriptionNotFound is returned for an unknown record or a record
	// owned by another user.
	MsgTranscriptionNotFound = "Transcription not found"

	// MsgAlreadyProcessing is returned when processing is requested for a
	// record that is already being processed.
	MsgAlreadyProcessing = "Transcription is already being processed"

	// MsgProcessingStarted is the message of a processing acknowledgement.
	MsgProcessingStarted = "Transcription processing started"

	// MsgDocumentNotFound is returned when the document of a record has not
	// been generated yet.
	MsgDocumentNotFound = "Document not found"

	// MsgNotFound is returned for an unknown route.
	MsgNotFound = "Not Found"

	// MsgMethodNotAllowed is returned for a known route with another method.
	MsgMethodNotAllowed = "Method Not Allowed"

	// MsgHealthy is the status reported by the health endpoint.
	MsgHealthy = "healthy"
)
