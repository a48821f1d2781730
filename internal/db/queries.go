package db

import (
	"context"
	"fmt"
	"time"

	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// FindByPincode returns the first office registered under pincode.
// Returns nil if not found.
func (c *Client) FindByPincode(ctx context.Context, pincode string) (*models.Locality, error) {
	defer c.metrics.Since(metrics.OpStoreQuery, time.Now())

	results, err := surrealdb.Query[[]models.Locality](ctx, c.db, `
		SELECT * FROM locality WHERE pincode = $pincode ORDER BY office_name LIMIT 1
	`, map[string]any{"pincode": pincode})
	if err != nil {
		return nil, fmt.Errorf("find by pincode: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// FindByDistrict returns offices whose district contains district,
// case-insensitively. An empty district returns every office.
// Results are ordered by PIN code, then office name.
func (c *Client) FindByDistrict(ctx context.Context, district string) ([]models.Locality, error) {
	defer c.metrics.Since(metrics.OpStoreQuery, time.Now())

	where := ""
	vars := map[string]any{}
	if district != "" {
		where = "WHERE string::lowercase(district) CONTAINS string::lowercase($district)"
		vars["district"] = district
	}

	sql := fmt.Sprintf(`SELECT * FROM locality %s ORDER BY pincode, office_name`, where)
	results, err := surrealdb.Query[[]models.Locality](ctx, c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("find by district: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Locality{}, nil
	}
	return (*results)[0].Result, nil
}

// Search runs a BM25 full-text search over office names and districts.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.Locality, error) {
	defer c.metrics.Since(metrics.OpStoreSearch, time.Now())

	results, err := surrealdb.Query[[]models.Locality](ctx, c.db, `
		SELECT *, search::score(0) + search::score(1) AS score
		FROM locality
		WHERE office_name @0@ $q OR district @1@ $q
		ORDER BY score DESC
		LIMIT $limit
	`, map[string]any{"q": query, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("search: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 {
		return []models.Locality{}, nil
	}
	return (*results)[0].Result, nil
}

// Count returns the number of stored offices.
func (c *Client) Count(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		C int `json:"c"`
	}](ctx, c.db, `SELECT count() AS c FROM locality GROUP ALL`, nil)
	if err != nil {
		return 0, fmt.Errorf("count: %w", wrapQueryError(err))
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].C, nil
}

// InsertLocalities validates and stores records in one statement.
// Returns the number of records inserted.
func (c *Client) InsertLocalities(ctx context.Context, records []models.Locality) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([]map[string]any, 0, len(records))
	for _, l := range records {
		l.Normalize()
		if err := l.Validate(); err != nil {
			return 0, err
		}
		rows = append(rows, map[string]any{
			"pincode":     l.Pincode,
			"office_name": l.OfficeName,
			"district":    l.District,
			"state":       l.State,
			"office_type": string(l.OfficeType),
		})
	}

	results, err := surrealdb.Query[[]models.Locality](ctx, c.db, `INSERT INTO locality $rows`,
		map[string]any{"rows": rows})
	if err != nil {
		return 0, fmt.Errorf("insert localities: %w", wrapQueryError(err))
	}

	n := 0
	if results != nil && len(*results) > 0 {
		n = len((*results)[0].Result)
	}
	c.logger.Info("inserted localities", "count", n)
	return n, nil
}

// All returns every office ordered by PIN code, then office name.
func (c *Client) All(ctx context.Context) ([]models.Locality, error) {
	return c.FindByDistrict(ctx, "")
}
