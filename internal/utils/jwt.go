// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by TokenExpiry when the token carries no "exp" claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// TokenExpiry extracts the "exp" claim of a JWT without verifying its
// signature. The client has no key to verify server tokens, so the result is
// informational only and must never be used to decide whether a token is
// accepted.
//
// Returns an error if tokenString is not a JWT or has no "exp" claim.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}
