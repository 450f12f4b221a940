package models

import (
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Asset is a reference to an image stored on the remote media host.
// It is persisted as-is (jsonb) so that it can later be destroyed by PublicID.
type Asset struct {
	// URL is the stable, publicly reachable address of the stored image.
	URL string `json:"secure_url"`

	// PublicID is the identifier of the asset inside the media host.
	PublicID string `json:"public_id"`

	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Bytes  int64  `json:"bytes,omitempty"`
}

// Value implements driver.Valuer. A nil asset is stored as SQL NULL.
func (a *Asset) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for jsonb columns.
func (a *Asset) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("scan asset: %w", err)
	}
	if raw == nil {
		*a = Asset{}
		return nil
	}
	return json.Unmarshal(raw, a)
}

// AssetURL returns the URL of a possibly nil asset.
func AssetURL(a *Asset) string {
	if a == nil {
		return ""
	}
	return a.URL
}

// Image is an uploaded binary payload prepared for the media host.
type Image struct {
	Data        []byte
	ContentType string
}

// Base64 returns the transport encoding of the payload.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI returns the payload as a "data:<mime>;base64,<...>" URI,
// the form accepted by the media host's upload endpoint.
func (i Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + i.Base64()
}

var errUnsupportedScanType = errors.New("unsupported scan source type")

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", errUnsupportedScanType, src)
	}
}
