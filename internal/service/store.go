// Package service orchestrates address validation and route planning on top
// of the locality store, the matcher and the hub router.
package service

import (
	"context"

	"github.com/raphaelgruber/pinroute/internal/models"
)

// LocalityStore provides locality records. Implemented by db.Client and
// db.MemoryStore. Results are ordered by PIN code, then office name.
type LocalityStore interface {
	// FindByPincode returns nil, nil when no office has the PIN code.
	FindByPincode(ctx context.Context, pincode string) (*models.Locality, error)
	// FindByDistrict matches district as a case-insensitive substring.
	FindByDistrict(ctx context.Context, district string) ([]models.Locality, error)
	All(ctx context.Context) ([]models.Locality, error)
	Search(ctx context.Context, query string, limit int) ([]models.Locality, error)
}
