package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates a missing HTTP address or a negative
	// upload limit.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an empty database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAssetsConfigs indicates an unknown asset backend or missing
	// backend credentials.
	ErrInvalidAssetsConfigs = errors.New("invalid assets configuration")
)
