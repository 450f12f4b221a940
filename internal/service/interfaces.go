package service

import (
	"context"

	"github.com/MKhiriev/go-marketplace/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountService covers signup, login and bearer token resolution.
type AccountService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.SignupResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	// Authenticate resolves a bearer token to its account.
	Authenticate(ctx context.Context, token string) (models.Account, error)
}

// ListingService covers publishing, browsing and editing listings.
type ListingService interface {
	Publish(ctx context.Context, owner models.Account, req models.PublishRequest) (models.Listing, error)
	Search(ctx context.Context, filter models.SearchFilter) (models.SearchResult, error)
	GetByID(ctx context.Context, id string) (models.Listing, error)
	Update(ctx context.Context, id string, actor models.Account, req models.UpdateRequest) (models.Listing, error)
}

// IDGenerator issues identifiers for new records.
type IDGenerator interface {
	Generate() string
}
