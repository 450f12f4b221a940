// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-marketplace/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists marketplace accounts.
type AccountRepository interface {
	// Create inserts a new account. A duplicate email or token yields
	// [ErrAccountAlreadyExists].
	Create(ctx context.Context, account models.Account) (models.Account, error)
	// FindByEmail returns [ErrAccountNotFound] when no account uses email.
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	// FindByToken returns [ErrAccountNotFound] when no account holds token.
	FindByToken(ctx context.Context, token string) (models.Account, error)
}

// ListingRepository persists listings.
type ListingRepository interface {
	Create(ctx context.Context, listing models.Listing) (models.Listing, error)
	// Search returns one page of summaries and the number of listings that
	// match the filter regardless of the page.
	Search(ctx context.Context, filter models.SearchFilter) ([]models.ListingSummary, int64, error)
	// FindByID returns the listing with its owner's public profile populated,
	// or [ErrListingNotFound].
	FindByID(ctx context.Context, id string) (models.Listing, error)
	// Update applies the non-nil fields of update. A non-nil Details field
	// replaces the stored sequence in full, in the same transaction.
	Update(ctx context.Context, update models.OfferUpdate) error
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
