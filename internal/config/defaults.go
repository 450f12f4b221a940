package config

import "time"

const (
	defaultRequestTimeout    = 30 * time.Second
	defaultMaxUploadSize     = 10 << 20
	defaultAssetBackend      = AssetBackendCloudinary
	defaultAssetRootFolder   = "vinted"
	defaultCloudinaryBaseURL = "https://api.cloudinary.com"
	defaultCloudinaryTimeout = 30 * time.Second
	defaultCloudinaryRetries = 2
	defaultLogLevel          = "info"
	defaultS3Region          = "us-east-1"
)

// applyDefaults fills fields left empty by every configuration source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = defaultLogLevel
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.MaxUploadSize == 0 {
		cfg.Server.MaxUploadSize = defaultMaxUploadSize
	}
	if cfg.Assets.Backend == "" {
		cfg.Assets.Backend = defaultAssetBackend
	}
	if cfg.Assets.RootFolder == "" {
		cfg.Assets.RootFolder = defaultAssetRootFolder
	}
	if cfg.Assets.Cloudinary.BaseURL == "" {
		cfg.Assets.Cloudinary.BaseURL = defaultCloudinaryBaseURL
	}
	if cfg.Assets.Cloudinary.Timeout == 0 {
		cfg.Assets.Cloudinary.Timeout = defaultCloudinaryTimeout
	}
	if cfg.Assets.Cloudinary.RetryCount == 0 {
		cfg.Assets.Cloudinary.RetryCount = defaultCloudinaryRetries
	}
	if cfg.Assets.S3.Region == "" {
		cfg.Assets.S3.Region = defaultS3Region
	}
}
