package db

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/samber/lo"
)

// MemoryStore serves locality records from memory. It answers the same
// queries as Client and is read-only after construction.
type MemoryStore struct {
	records []models.Locality
	metrics *metrics.Collector
}

// NewMemoryStore normalizes and validates records and keeps them ordered
// by PIN code, then office name. mc may be nil.
func NewMemoryStore(records []models.Locality, mc *metrics.Collector) (*MemoryStore, error) {
	out := make([]models.Locality, 0, len(records))
	var errs []error
	for _, l := range records {
		l.Normalize()
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, l)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortStableFunc(out, func(a, b models.Locality) int {
		return cmp.Or(cmp.Compare(a.Pincode, b.Pincode), cmp.Compare(a.OfficeName, b.OfficeName))
	})
	return &MemoryStore{records: out, metrics: mc}, nil
}

// FindByPincode returns the first office registered under pincode.
// Returns nil if not found.
func (s *MemoryStore) FindByPincode(_ context.Context, pincode string) (*models.Locality, error) {
	defer s.metrics.Since(metrics.OpStoreQuery, time.Now())

	l, ok := lo.Find(s.records, func(l models.Locality) bool { return l.Pincode == pincode })
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// FindByDistrict returns offices whose district contains district,
// case-insensitively. An empty district returns every office.
func (s *MemoryStore) FindByDistrict(_ context.Context, district string) ([]models.Locality, error) {
	defer s.metrics.Since(metrics.OpStoreQuery, time.Now())

	needle := strings.ToLower(district)
	return lo.Filter(s.records, func(l models.Locality, _ int) bool {
		return strings.Contains(strings.ToLower(l.District), needle)
	}), nil
}

// Search returns offices where any query word appears in the office name,
// followed by offices where it only appears in the district.
func (s *MemoryStore) Search(_ context.Context, query string, limit int) ([]models.Locality, error) {
	defer s.metrics.Since(metrics.OpStoreSearch, time.Now())

	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 || limit <= 0 {
		return []models.Locality{}, nil
	}
	hit := func(field string) bool {
		field = strings.ToLower(field)
		return lo.SomeBy(words, func(w string) bool { return strings.Contains(field, w) })
	}

	byName := lo.Filter(s.records, func(l models.Locality, _ int) bool { return hit(l.OfficeName) })
	byDistrict := lo.Filter(s.records, func(l models.Locality, _ int) bool {
		return !hit(l.OfficeName) && hit(l.District)
	})

	return lo.Subset(append(byName, byDistrict...), 0, uint(limit)), nil
}

// Count returns the number of stored offices.
func (s *MemoryStore) Count(context.Context) (int, error) {
	return len(s.records), nil
}

// All returns every office ordered by PIN code, then office name.
func (s *MemoryStore) All(ctx context.Context) ([]models.Locality, error) {
	return s.FindByDistrict(ctx, "")
}
