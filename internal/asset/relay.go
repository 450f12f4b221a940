// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package asset moves uploaded images to a remote media host and hands back
// stable references to them. Backends implement [Store]; the [Relay] adds
// payload checks and the folder layout on top of any backend.
package asset

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/models"
)

type relay struct {
	store  Store
	root   string
	logger *logger.Logger
}

// NewRelay builds a [Relay] storing assets below rootFolder.
func NewRelay(store Store, rootFolder string, logger *logger.Logger) Relay {
	logger.Debug().Str("root_folder", rootFolder).Msg("creating asset relay")
	return &relay{
		store:  store,
		root:   strings.Trim(rootFolder, "/"),
		logger: logger,
	}
}

// AccountFolder returns the folder holding the avatar of accountID.
func (r *relay) AccountFolder(accountID string) string {
	return path.Join(r.root, "users", accountID)
}

// ListingFolder returns the folder holding the picture of listingID.
func (r *relay) ListingFolder(listingID string) string {
	return path.Join(r.root, "offers", listingID)
}

func (r *relay) UploadAvatar(ctx context.Context, accountID string, raw []byte) (models.Asset, error) {
	return r.Upload(ctx, raw, r.AccountFolder(accountID))
}

func (r *relay) UploadPicture(ctx context.Context, listingID string, raw []byte) (models.Asset, error) {
	return r.Upload(ctx, raw, r.ListingFolder(listingID))
}

func (r *relay) ReplacePicture(ctx context.Context, listingID string, old *models.Asset, raw []byte) (models.Asset, error) {
	return r.Replace(ctx, old, raw, r.ListingFolder(listingID))
}

// Upload validates raw, encodes it for transport and stores it in folder.
func (r *relay) Upload(ctx context.Context, raw []byte, folder string) (models.Asset, error) {
	log := logger.FromContext(ctx)

	image, err := NewImage(raw)
	if err != nil {
		return models.Asset{}, err
	}

	stored, err := r.store.Upload(ctx, image, folder)
	if err != nil {
		log.Err(err).
			Str("func", "relay.Upload").
			Str("folder", folder).
			Int("bytes", len(raw)).
			Msg("media host rejected upload")
		return models.Asset{}, fmt.Errorf("%w: %w", ErrAssetStore, err)
	}

	log.Debug().
		Str("func", "relay.Upload").
		Str("public_id", stored.PublicID).
		Msg("asset uploaded")

	return stored, nil
}

// Replace destroys old and uploads raw to folder. A failed destroy is logged
// and does not prevent the upload.
func (r *relay) Replace(ctx context.Context, old *models.Asset, raw []byte, folder string) (models.Asset, error) {
	log := logger.FromContext(ctx)

	if _, err := NewImage(raw); err != nil {
		return models.Asset{}, err
	}

	if old != nil && old.PublicID != "" {
		if err := r.store.Destroy(ctx, old.PublicID); err != nil {
			log.Warn().Err(err).
				Str("func", "relay.Replace").
				Str("public_id", old.PublicID).
				Msg("failed to destroy previous asset, continuing with upload")
		}
	}

	return r.Upload(ctx, raw, folder)
}

// NewImage checks raw and sniffs its content type.
func NewImage(raw []byte) (models.Image, error) {
	if len(raw) == 0 {
		return models.Image{}, ErrEmptyPayload
	}

	contentType := http.DetectContentType(raw)
	if !strings.HasPrefix(contentType, "image/") {
		return models.Image{}, fmt.Errorf("%w: detected %s", ErrUnsupportedMedia, contentType)
	}

	return models.Image{Data: raw, ContentType: contentType}, nil
}

var extensions = map[string]string{
	"image/jpeg":   "jpg",
	"image/png":    "png",
	"image/gif":    "gif",
	"image/webp":   "webp",
	"image/bmp":    "bmp",
	"image/x-icon": "ico",
}

// Extension returns the file extension conventionally used for contentType.
func Extension(contentType string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return "bin"
}
