package service

import (
	"github.com/MKhiriev/go-marketplace/internal/asset"
	"github.com/MKhiriev/go-marketplace/internal/config"
	"github.com/MKhiriev/go-marketplace/internal/logger"
	"github.com/MKhiriev/go-marketplace/internal/store"
	"github.com/MKhiriev/go-marketplace/internal/utils"
)

type Services struct {
	AccountService AccountService
	ListingService ListingService
}

func NewServices(storages *store.Storages, relay asset.Relay, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()
	policy := AccessPolicy{OwnershipEnforced: cfg.App.OwnershipEnforced}

	return &Services{
		AccountService: NewAccountService(storages.AccountRepository, relay, ids, logger),
		ListingService: NewListingService(storages.ListingRepository, relay, ids, policy, logger),
	}
}
