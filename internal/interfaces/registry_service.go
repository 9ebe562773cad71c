package interfaces

import (
	"context"

	"github.com/ternarybob/ledgerline/internal/models"
)

// CompanyRegistry looks up normalized company profiles by business ID.
type CompanyRegistry interface {
	// Lookup returns the profile for businessID. Failures collapse to
	// registry.ErrNotFound or registry.ErrMalformed.
	Lookup(ctx context.Context, businessID string) (*models.CompanyProfile, error)
}
