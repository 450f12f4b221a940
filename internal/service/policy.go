package service

import (
	"fmt"

	"github.com/MKhiriev/go-marketplace/models"
)

// AccessPolicy decides who may modify a listing. With OwnershipEnforced
// unset any authenticated account may update any listing.
type AccessPolicy struct {
	OwnershipEnforced bool
}

// CanModify returns [ErrForbidden] when the policy denies actor access to
// listing.
func (p AccessPolicy) CanModify(actor models.Account, listing models.Listing) error {
	if !p.OwnershipEnforced || actor.ID == listing.OwnerID {
		return nil
	}
	return fmt.Errorf("%w: only the owner can modify this offer", ErrForbidden)
}
