// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-transcriber/internal/config"
	"github.com/MKhiriev/go-transcriber/internal/logger"
	"github.com/MKhiriev/go-transcriber/internal/utils"
	"github.com/MKhiriev/go-transcriber/models"
)

const (
	pathRegister       = "/auth/register"
	pathLogin          = "/auth/login"
	pathMe             = "/auth/me"
	pathTranscriptions = "/transcriptions/"
	pathTranscription  = "/transcriptions/{id}"
	pathProcess        = "/transcriptions/{id}/process"
	pathDownload       = "/transcriptions/{id}/download"
	pathHealth         = "/health"

	headerRequestID = "X-Request-ID"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	// process carries the processing call, which the service answers only
	// after the document is ready.
	process *utils.HTTPClient
	tokens TokenSource
	ids    *utils.RequestIDGenerator

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and configures
// the underlying HTTP clients with the resolved base URL. The processing call
// uses cfg.ProcessTimeout, every other call uses cfg.RequestTimeout.
//
// tokens is consulted on every authenticated call; it may be nil when only
// unauthenticated endpoints are used.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		process: utils.NewHTTPClient(baseURL, cfg.ProcessTimeout),
		tokens:  tokens,
		ids:     utils.NewRequestIDGenerator(),
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Register implements [ServerAdapter]. It POSTs the registration as JSON to
// POST /auth/register and decodes the created profile.
func (h *httpServerAdapter) Register(ctx context.Context, registration models.Registration) (models.User, error) {
	var user models.User

	resp, err := h.execute(h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(registration), http.MethodPost, pathRegister)
	if err != nil {
		return user, mapTransportError("register request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	if err = decode(resp, &user); err != nil {
		return user, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials form-encoded to
// POST /auth/login. Any stored token is deliberately not attached.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	var token models.Token

	resp, err := h.execute(h.request(ctx).
		SetFormData(map[string]string{
			"username": credentials.Username,
			"password": credentials.Password,
		}), http.MethodPost, pathLogin)
	if err != nil {
		return token, mapTransportError("login request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return token, err
	}

	if err = decode(resp, &token); err != nil {
		return token, fmt.Errorf("login: %w", err)
	}
	if token.AccessToken == "" {
		return token, fmt.Errorf("login: %w: empty access token", ErrDecodingResponse)
	}
	return token, nil
}

// CurrentUser implements [ServerAdapter] via GET /auth/me.
func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User

	req, err := h.authedRequest(ctx)
	if err != nil {
		return user, err
	}

	resp, err := h.execute(req, http.MethodGet, pathMe)
	if err != nil {
		return user, mapTransportError("current user request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return user, err
	}

	if err = decode(resp, &user); err != nil {
		return user, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// CreateTranscription implements [ServerAdapter]. It POSTs a multipart form
// with the fields title, date, the optional initial_prompt and the file part
// audio_file to POST /transcriptions/.
func (h *httpServerAdapter) CreateTranscription(ctx context.Context, newTranscription models.NewTranscription) (models.Transcription, error) {
	var created models.Transcription

	if newTranscription.Audio == nil || newTranscription.Audio.Reader == nil {
		return created, ErrMissingAudio
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return created, err
	}

	fields := map[string]string{
		"title": newTranscription.Title,
		"date":  newTranscription.Date,
	}
	if newTranscription.InitialPrompt != "" {
		fields["initial_prompt"] = newTranscription.InitialPrompt
	}

	req.SetMultipartFormData(fields).
		SetFileReader("audio_file", newTranscription.Audio.Filename, newTranscription.Audio.Reader)

	resp, err := h.execute(req, http.MethodPost, pathTranscriptions)
	if err != nil {
		return created, mapTransportError("create transcription request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return created, err
	}

	if err = decode(resp, &created); err != nil {
		return created, fmt.Errorf("create transcription: %w", err)
	}
	return created, nil
}

// ListTranscriptions implements [ServerAdapter] via GET /transcriptions/.
func (h *httpServerAdapter) ListTranscriptions(ctx context.Context) ([]models.Transcription, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.execute(req, http.MethodGet, pathTranscriptions)
	if err != nil {
		return nil, mapTransportError("list transcriptions request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	items := make([]models.Transcription, 0)
	if err = decode(resp, &items); err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}
	if items == nil {
		// JSON null
		items = make([]models.Transcription, 0)
	}
	return items, nil
}

// GetTranscription implements [ServerAdapter] via GET /transcriptions/{id}.
func (h *httpServerAdapter) GetTranscription(ctx context.Context, id models.TranscriptionID) (models.Transcription, error) {
	var item models.Transcription

	req, err := h.authedRequest(ctx)
	if err != nil {
		return item, err
	}

	resp, err := h.execute(req.SetPathParam("id", id.String()), http.MethodGet, pathTranscription)
	if err != nil {
		return item, mapTransportError("get transcription request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return item, err
	}

	if err = decode(resp, &item); err != nil {
		return item, fmt.Errorf("get transcription: %w", err)
	}
	return item, nil
}

// ProcessTranscription implements [ServerAdapter] via
// POST /transcriptions/{id}/process. The request is not bound by the general
// request timeout.
func (h *httpServerAdapter) ProcessTranscription(ctx context.Context, id models.TranscriptionID) (models.ProcessAck, error) {
	var ack models.ProcessAck

	req, err := h.authedRequestWith(ctx, h.process)
	if err != nil {
		return ack, err
	}

	resp, err := h.execute(req.SetPathParam("id", id.String()), http.MethodPost, pathProcess)
	if err != nil {
		return ack, mapTransportError("process transcription request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return ack, err
	}

	if len(resp.Body()) == 0 {
		return ack, nil
	}
	if err = decode(resp, &ack); err != nil {
		return ack, fmt.Errorf("process transcription: %w", err)
	}
	return ack, nil
}

// DownloadDocument implements [ServerAdapter] via
// GET /transcriptions/{id}/download. The body is returned untouched.
func (h *httpServerAdapter) DownloadDocument(ctx context.Context, id models.TranscriptionID) (models.Document, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Document{}, err
	}

	resp, err := h.execute(req.
		SetHeader("Accept", "*/*").
		SetPathParam("id", id.String()), http.MethodGet, pathDownload)
	if err != nil {
		return models.Document{}, mapTransportError("download document request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, err
	}

	return models.Document{
		Filename:    attachmentFilename(resp.Header().Get("Content-Disposition")),
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}, nil
}

// DeleteTranscription implements [ServerAdapter] via
// DELETE /transcriptions/{id}.
func (h *httpServerAdapter) DeleteTranscription(ctx context.Context, id models.TranscriptionID) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := h.execute(req.SetPathParam("id", id.String()), http.MethodDelete, pathTranscription)
	if err != nil {
		return mapTransportError("delete transcription request", err)
	}

	return mapHTTPError(resp)
}

// Health implements [ServerAdapter] via GET /health.
func (h *httpServerAdapter) Health(ctx context.Context) (models.Health, error) {
	var health models.Health

	resp, err := h.execute(h.request(ctx), http.MethodGet, pathHealth)
	if err != nil {
		return health, mapTransportError("health request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return health, err
	}

	if err = decode(resp, &health); err != nil {
		return health, fmt.Errorf("health: %w", err)
	}
	return health, nil
}

// request builds an unauthenticated request tagged with a request id.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	return h.requestWith(ctx, h.client)
}

func (h *httpServerAdapter) requestWith(ctx context.Context, client *utils.HTTPClient) *resty.Request {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	return client.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestID)
}

// authedRequest builds a request carrying the token that is current at call
// time.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	return h.authedRequestWith(ctx, h.client)
}

func (h *httpServerAdapter) authedRequestWith(ctx context.Context, client *utils.HTTPClient) (*resty.Request, error) {
	req := h.requestWith(ctx, client)
	if h.tokens == nil {
		return req, nil
	}

	token, err := h.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingToken, err)
	}
	if token = strings.TrimSpace(token); token != "" {
		req.SetAuthToken(token)
	}
	return req, nil
}

func (h *httpServerAdapter) execute(req *resty.Request, method, path string) (*resty.Response, error) {
	log := h.logger.WithRequestID(req.Header.Get(headerRequestID))
	started := time.Now()

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Debug().
			Err(err).
			Str("method", method).
			Str("path", path).
			Dur("duration", time.Since(started)).
			Msg("request failed")
		return nil, err
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(started)).
		Msg("request completed")
	return resp, nil
}

func decode(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	return nil
}

// attachmentFilename returns the filename parameter of a Content-Disposition
// header, or "" when absent.
func attachmentFilename(header string) string {
	if header == "" {
		return ""
	}

	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}

	name := params["filename"]
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}
