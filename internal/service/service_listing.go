// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-marketplace/internal/asset"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/store"
	"github.com/MKhiriev/go-marketplace/internal/utils"
	"github.com/MKhiriev/go-marketplace/internal/validators"
	"github.com/MKhiriev/go-marketplace/models"
)

type listingService struct {
	listings  store.ListingRepository
	relay     asset.Relay
	validator validators.Validator
	ids       IDGenerator
	policy    AccessPolicy

	logger *logger.Logger
}

// NewListingService constructs a [ListingService]. policy decides whether
// updates are restricted to the listing owner.
func NewListingService(listings store.ListingRepository, relay asset.Relay, ids IDGenerator, policy AccessPolicy, logger *logger.Logger) ListingService {
	return &listingService{
		listings:  listings,
		relay:     relay,
		validator: validators.NewMarketplaceValidator(),
		ids:       ids,
		policy:    policy,
		logger:    logger,
	}
}

// Publish creates a listing owned by owner. The picture is uploaded to the
// listing's folder before the row is inserted.
func (l *listingService) Publish(ctx context.Context, owner models.Account, req models.PublishRequest) (models.Listing, error) {
	log := logger.FromContext(ctx)

	if err := l.validator.Validate(ctx, req); err != nil {
		return models.Listing{}, validationError(err)
	}
	price, err := validators.ParsePrice(req.Price)
	if err != nil {
		return models.Listing{}, validationError(err)
	}

	listing := models.Listing{
		ID:          l.ids.Generate(),
		Name:        req.Title,
		Description: req.Description,
		Price:       price,
		Details:     models.NewDetails(req.DetailValues()),
		OwnerID:     owner.ID,
	}

	picture, err := l.relay.UploadPicture(ctx, listing.ID, req.Picture)
	if err != nil {
		return models.Listing{}, assetError(err)
	}
	listing.Image = &picture

	if _, err = l.listings.Create(ctx, listing); err != nil {
		log.Err(err).
			Str("func", "listingService.Publish").
			Str("orphaned_public_id", picture.PublicID).
			Msg("listing creation failed")
		if errors.Is(err, store.ErrOwnerNotFound) {
			return models.Listing{}, fmt.Errorf("%w: account no longer exists", ErrUnauthenticated)
		}
		return models.Listing{}, persistenceError(err)
	}

	log.Info().Str("listing_id", listing.ID).Str("owner_id", owner.ID).Msg("listing published")

	return l.read(ctx, listing.ID)
}

// Search returns one page of listings matching filter together with the
// total number of matches.
func (l *listingService) Search(ctx context.Context, filter models.SearchFilter) (models.SearchResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.Title = strings.TrimSpace(filter.Title)

	offers, count, err := l.listings.Search(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "listingService.Search").Msg("search failed")
		return models.SearchResult{}, persistenceError(err)
	}
	if offers == nil {
		offers = []models.ListingSummary{}
	}

	return models.SearchResult{Count: count, Offers: offers}, nil
}

func (l *listingService) GetByID(ctx context.Context, id string) (models.Listing, error) {
	if !utils.IsValidUUID(id) {
		return models.Listing{}, ErrNotFound
	}
	return l.read(ctx, id)
}

// Update applies the non-empty fields of req to the listing identified by id.
//
// Details are merged by key: only entries already present on the listing are
// touched. A supplied picture replaces the stored one. Whether actor must own
// the listing is decided by the service's [AccessPolicy].
func (l *listingService) Update(ctx context.Context, id string, actor models.Account, req models.UpdateRequest) (models.Listing, error) {
	log := logger.FromContext(ctx)

	if !utils.IsValidUUID(id) {
		return models.Listing{}, ErrNotFound
	}

	current, err := l.read(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}

	if err = l.policy.CanModify(actor, current); err != nil {
		log.Info().Str("listing_id", id).Str("actor_id", actor.ID).Msg("update denied")
		return models.Listing{}, err
	}

	if err = l.validator.Validate(ctx, req); err != nil {
		return models.Listing{}, validationError(err)
	}

	update := models.OfferUpdate{ID: id}
	if req.Title != "" {
		update.Name = &req.Title
	}
	if req.Description != "" {
		update.Description = &req.Description
	}
	if strings.TrimSpace(req.Price) != "" {
		price, err := validators.ParsePrice(req.Price)
		if err != nil {
			return models.Listing{}, validationError(err)
		}
		update.Price = &price
	}
	if details, changed := current.Details.Merge(req.DetailValues()); changed {
		update.Details = details
	}

	if len(req.Picture) > 0 {
		picture, err := l.relay.ReplacePicture(ctx, id, current.Image, req.Picture)
		if err != nil {
			return models.Listing{}, assetError(err)
		}
		update.Image = &picture
	}

	if update.IsEmpty() {
		return current, nil
	}

	err = l.listings.Update(ctx, update)
	if errors.Is(err, store.ErrListingNotFound) {
		return models.Listing{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "listingService.Update").Str("listing_id", id).Msg("listing update failed")
		return models.Listing{}, persistenceError(err)
	}

	log.Info().Str("listing_id", id).Str("actor_id", actor.ID).Msg("listing updated")

	return l.read(ctx, id)
}

// read loads a listing and maps a missing row to [ErrNotFound].
func (l *listingService) read(ctx context.Context, id string) (models.Listing, error) {
	listing, err := l.listings.FindByID(ctx, id)
	if errors.Is(err, store.ErrListingNotFound) {
		return models.Listing{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "listingService.read").Str("listing_id", id).Msg("listing lookup failed")
		return models.Listing{}, persistenceError(err)
	}
	return listing, nil
}
