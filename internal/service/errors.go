package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-marketplace/internal/asset"
	"github.com/MKhiriev/go-marketplace/internal/validators"
)

// ErrorKind classifies use-case failures. The transport layer maps each kind
// to a response status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindAssetStore
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindAssetStore:
		return "asset_store"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// Sentinel errors, one per [ErrorKind]. Services wrap them with details;
// callers match them with [errors.Is] or classify with [KindOf].
var (
	ErrValidation         = errors.New("missing or malformed parameters")
	ErrConflict           = errors.New("this email already has an account")
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrUnauthenticated    = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrAssetStore         = errors.New("media host failure")
	ErrPersistence        = errors.New("persistence failure")
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrConflict, KindConflict},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrForbidden, KindForbidden},
	{ErrNotFound, KindNotFound},
	{ErrAssetStore, KindAssetStore},
	{ErrPersistence, KindPersistence},
}

// KindOf returns the kind of the first sentinel found in err's chain.
// Unclassified errors are [KindInternal].
func KindOf(err error) ErrorKind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// validationError wraps a validator failure into [ErrValidation].
func validationError(err error) error {
	if errors.Is(err, validators.ErrMissingParameter) || errors.Is(err, validators.ErrInvalidPrice) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}

// assetError classifies a relay failure: bad payloads are the caller's fault,
// everything else is the media host's.
func assetError(err error) error {
	if errors.Is(err, asset.ErrEmptyPayload) || errors.Is(err, asset.ErrUnsupportedMedia) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return fmt.Errorf("%w: %w", ErrAssetStore, err)
}

func persistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
