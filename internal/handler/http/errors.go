// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Bearer" scheme is present but the
	// token itself is blank.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrMalformedBody is returned when a form or JSON body cannot be parsed.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrMalformedQuery is returned when a numeric query parameter is not a
	// number.
	ErrMalformedQuery = errors.New("malformed query parameter")

	errBodyTooLarge = errors.New("request body too large")
)
