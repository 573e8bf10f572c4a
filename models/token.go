// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Token is the response of a successful login exchange.
//
// AccessToken is an opaque bearer credential. The client stores it verbatim
// and attaches it to every authenticated request as
// "Authorization: Bearer <AccessToken>".
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// String implements fmt.Stringer without revealing the credential, so a token
// printed or logged by accident shows only its type.
func (t Token) String() string {
	if t.AccessToken == "" {
		return "<empty token>"
	}
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return tokenType + " <redacted>"
}
