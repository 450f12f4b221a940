// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can start the
// server: an HTTP address, a database DSN and a fully configured asset
// backend are required.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.MaxUploadSize < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Assets.Backend {
	case AssetBackendCloudinary:
		c := cfg.Assets.Cloudinary
		if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
			return fmt.Errorf("%w: cloudinary cloud name, api key and api secret are required", ErrInvalidAssetsConfigs)
		}
	case AssetBackendS3:
		s := cfg.Assets.S3
		if s.Bucket == "" || s.PublicBaseURL == "" {
			return fmt.Errorf("%w: s3 bucket and public base url are required", ErrInvalidAssetsConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidAssetsConfigs, cfg.Assets.Backend)
	}

	return nil
}
