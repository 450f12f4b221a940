// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package asset

import (
	"context"

	"github.com/MKhiriev/go-marketplace/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/asset_mock.go -package=mock

// Store is a remote media host backend.
type Store interface {
	// Upload stores image under folder and returns its reference.
	Upload(ctx context.Context, image models.Image, folder string) (models.Asset, error)
	// Destroy removes the asset identified by publicID.
	Destroy(ctx context.Context, publicID string) error
}

// Relay offloads account avatars and listing pictures to a [Store].
type Relay interface {
	// UploadAvatar stores an avatar in the folder of accountID.
	UploadAvatar(ctx context.Context, accountID string, raw []byte) (models.Asset, error)
	// UploadPicture stores a listing picture in the folder of listingID.
	UploadPicture(ctx context.Context, listingID string, raw []byte) (models.Asset, error)
	// ReplacePicture destroys old (best effort) and stores raw in its place.
	ReplacePicture(ctx context.Context, listingID string, old *models.Asset, raw []byte) (models.Asset, error)
}
