package asset

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-marketplace/internal/config"
	"github.com/MKhiriev/go-marketplace/internal/logger"
)

// NewStore builds the media host backend selected by cfg.Backend.
func NewStore(ctx context.Context, cfg config.Assets, logger *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.AssetBackendCloudinary:
		return NewCloudinaryStore(cfg.Cloudinary, logger), nil
	case config.AssetBackendS3:
		return NewS3Store(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
