package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/raphaelgruber/pinroute/internal/matcher"
	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/models"
	"github.com/raphaelgruber/pinroute/internal/similarity"
	"github.com/samber/lo"
)

const (
	// MinSearchLength is the shortest accepted search query, in runes.
	MinSearchLength = 2
	// SearchLimit caps the number of search results.
	SearchLimit = 10
	// HighConfidence is the score above which a match needs no review.
	HighConfidence = 90
)

var (
	// ErrMissingInput is returned when neither an address nor a PIN code is given.
	ErrMissingInput = errors.New("please provide either address or PIN code")

	// ErrQueryTooShort is returned for search queries below MinSearchLength.
	ErrQueryTooShort = fmt.Errorf("search query must be at least %d characters", MinSearchLength)
)

// Messages returned with a Validation.
const (
	MsgPincodeValid   = "PIN code validated successfully"
	MsgHighConfidence = "High confidence match"
	MsgPossibleMatch  = "Possible match - please verify"
	MsgNoMatch        = "Could not match address. Please check spelling."
)

// ValidateRequest is an address to validate. Pincode takes precedence over
// Address; District narrows the fuzzy candidates.
type ValidateRequest struct {
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
	District string `json:"district"`
}

// Suggestion is a scored locality that did not win the match.
type Suggestion struct {
	Locality   models.Locality
	Confidence int
}

// Validation is the result of validating an address.
type Validation struct {
	// Found is true when Locality holds the corrected address.
	Found        bool
	Confidence   int
	Locality     *models.Locality
	Alternatives []Suggestion
	// Outcome is matcher.Matched for PIN code hits.
	Outcome matcher.Outcome
	Message string
}

// AddressService resolves free-text addresses and PIN codes to offices.
type AddressService struct {
	store   LocalityStore
	opts    []matcher.Option
	metrics *metrics.Collector
}

// NewAddressService creates an address service. mc may be nil.
func NewAddressService(store LocalityStore, mc *metrics.Collector, opts ...matcher.Option) *AddressService {
	return &AddressService{store: store, opts: opts, metrics: mc}
}

// Validate resolves req to an office. A PIN code is looked up exactly;
// otherwise the address is fuzzy-matched against the offices of the
// requested district, or all offices if no district is given.
func (s *AddressService) Validate(ctx context.Context, req ValidateRequest) (Validation, error) {
	address := strings.TrimSpace(req.Address)
	pincode := strings.TrimSpace(req.Pincode)
	district := strings.TrimSpace(req.District)

	switch {
	case pincode != "":
		return s.validatePincode(ctx, pincode)
	case address != "":
		return s.matchAddress(ctx, address, district)
	default:
		return Validation{}, ErrMissingInput
	}
}

func (s *AddressService) validatePincode(ctx context.Context, pincode string) (Validation, error) {
	s.metrics.Inc("validate_pincode")

	l, err := s.store.FindByPincode(ctx, pincode)
	if err != nil {
		return Validation{}, fmt.Errorf("validate pincode: %w", err)
	}
	if l == nil {
		return Validation{
			Outcome: matcher.NoMatch,
			Message: fmt.Sprintf("Invalid PIN code: %s not found in database", pincode),
		}, nil
	}
	return Validation{
		Found:      true,
		Confidence: similarity.ExactScore,
		Locality:   l,
		Outcome:    matcher.Matched,
		Message:    MsgPincodeValid,
	}, nil
}

func (s *AddressService) matchAddress(ctx context.Context, address, district string) (Validation, error) {
	s.metrics.Inc("validate_address")

	records, err := s.store.FindByDistrict(ctx, district)
	if err != nil {
		return Validation{}, fmt.Errorf("validate address: %w", err)
	}
	if len(records) == 0 {
		msg := "No post offices found in database"
		if district != "" {
			msg = "No post offices found in district: " + district
		}
		return Validation{Outcome: matcher.Empty, Message: msg}, nil
	}

	start := time.Now()
	res := matcher.Match(address, models.OfficeNames(records), s.opts...)
	s.metrics.Since(metrics.OpMatch, start)

	slog.Debug("address matched",
		"address", address,
		"district", district,
		"candidates", len(records),
		"outcome", res.Outcome.String(),
		"score", res.Score)

	v := Validation{
		Outcome: res.Outcome,
		Alternatives: lo.Map(res.Alternatives, func(alt matcher.Scored, _ int) Suggestion {
			return Suggestion{Locality: records[alt.Index], Confidence: alt.Score}
		}),
	}

	if res.Match == nil {
		s.metrics.Inc("no_match")
		v.Message = MsgNoMatch
		return v, nil
	}

	matched := records[res.Match.Index]
	v.Found = true
	v.Confidence = res.Score
	v.Locality = &matched
	v.Message = MsgPossibleMatch
	if res.Score > HighConfidence {
		v.Message = MsgHighConfidence
	}
	return v, nil
}

// Search runs a text search over office names and districts and returns at
// most SearchLimit offices.
func (s *AddressService) Search(ctx context.Context, query string) ([]models.Locality, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, ErrQueryTooShort
	}

	results, err := s.store.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}
