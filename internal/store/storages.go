package store

import "github.com/MKhiriev/go-marketplace/internal/logger"

// Storages groups every repository the services depend on.
type Storages struct {
	AccountRepository AccountRepository
	ListingRepository ListingRepository
}

// NewStorages builds the PostgreSQL repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		AccountRepository: NewAccountRepository(db, log),
		ListingRepository: NewListingRepository(db, log),
	}
}
