// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// maxDetailLength bounds a plain-text body used as error detail.
const maxDetailLength = 512

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return &RemoteError{
		Status: resp.StatusCode(),
		Detail: errorDetail(resp.StatusCode(), resp.Body()),
	}
}

// errorDetail extracts a human-readable message from an error body.
// The service answers {"detail": "..."} or, for validation failures,
// {"detail": [{"loc": [...], "msg": "...", "type": "..."}]}.
func errorDetail(status int, body []byte) string {
	body = bytes.TrimSpace(body)

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		if detail := parseDetail(envelope.Detail); detail != "" {
			return detail
		}
	}

	if len(body) > 0 && !json.Valid(body) {
		return truncateDetail(string(body))
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("http %d", status)
}

// truncateDetail cuts text to at most maxDetailLength bytes without splitting
// a multi-byte character.
func truncateDetail(text string) string {
	if len(text) <= maxDetailLength {
		return text
	}

	cut := maxDetailLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func parseDetail(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg == "" {
				continue
			}
			if field := fieldName(item.Loc); field != "" {
				messages = append(messages, field+": "+item.Msg)
				continue
			}
			messages = append(messages, item.Msg)
		}
		return strings.Join(messages, "; ")
	}

	return ""
}

// fieldName returns the last element of a validation location, e.g.
// ["body", "email"] -> "email".
func fieldName(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if name, ok := loc[len(loc)-1].(string); ok {
		return name
	}
	return ""
}

func mapTransportError(op string, err error) error {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
}
