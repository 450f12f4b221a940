// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Account is a marketplace member. The auth material (Salt, Hash, Token)
// never leaves the server: it carries no JSON representation.
type Account struct {
	// ID is the server-assigned identifier (UUID string).
	ID string `json:"id"`

	// Email is the unique login key of the account.
	Email string `json:"email"`

	// Profile is the public-ish part of the account.
	Profile Profile `json:"account"`

	// Salt is the random per-account salt mixed into the password digest.
	Salt string `json:"-"`

	// Hash is the salted password digest (base64 text).
	Hash string `json:"-"`

	// Token is the opaque bearer token. It is issued once at signup and
	// returned unchanged on every login.
	Token string `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// Profile holds the account's display data.
type Profile struct {
	Username   string `json:"username"`
	Avatar     *Asset `json:"avatar,omitempty"`
	Newsletter bool   `json:"newsletter"`
}

// PublicProfile is the part of an account exposed next to listings.
type PublicProfile struct {
	Username string `json:"username"`
	Avatar   *Asset `json:"avatar,omitempty"`
}

