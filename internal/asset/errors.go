package asset

import "errors"

var (
	// ErrAssetStore wraps every failure reported by the media host backend.
	ErrAssetStore = errors.New("asset store failure")

	// ErrEmptyPayload is returned when an upload carries no bytes.
	ErrEmptyPayload = errors.New("empty image payload")

	// ErrUnsupportedMedia is returned when the payload is not an image.
	ErrUnsupportedMedia = errors.New("payload is not an image")
)

// ErrUnknownBackend is returned by [NewStore] for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown asset backend")
