// Package matcher ranks candidate locality names against a free-text query
// and applies the acceptance policy: hard threshold, then a lenient floor,
// then "did you mean" suggestions.
package matcher

import (
	"slices"
	"strings"

	"github.com/raphaelgruber/pinroute/internal/similarity"
)

// Defaults for the acceptance policy.
const (
	DefaultThreshold       = 70
	DefaultLenientFloor    = 50
	DefaultMaxAlternatives = 3
)

// Outcome tells callers which branch of the policy produced a Result.
type Outcome int

const (
	// Empty means the query or the candidate set was empty.
	Empty Outcome = iota
	// Matched means the best candidate cleared the threshold.
	Matched
	// Lenient means no candidate cleared the threshold but the best one
	// reached the lenient floor and was accepted anyway.
	Lenient
	// NoMatch means nothing reached the lenient floor. Alternatives still
	// carry the closest candidates.
	NoMatch
)

func (o Outcome) String() string {
	switch o {
	case Empty:
		return "empty"
	case Matched:
		return "matched"
	case Lenient:
		return "lenient"
	case NoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// Scored is a candidate with its similarity to the query.
// Index is the candidate's position in the input slice.
type Scored struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Index int    `json:"-"`
}

// Result is the outcome of Match. Match is nil when nothing was accepted.
type Result struct {
	Match        *Scored  `json:"match,omitempty"`
	Score        int      `json:"score"`
	Alternatives []Scored `json:"alternatives"`
	Outcome      Outcome  `json:"-"`
}

// Options configures Match.
type Options struct {
	Threshold       int
	LenientFloor    int
	MaxAlternatives int
}

// Option is a functional option for Match.
type Option func(*Options)

// WithThreshold sets the score a candidate needs to be accepted outright.
func WithThreshold(t int) Option {
	return func(o *Options) { o.Threshold = t }
}

// WithLenientFloor sets the score at which the best candidate is still
// accepted when nothing clears the threshold.
func WithLenientFloor(f int) Option {
	return func(o *Options) { o.LenientFloor = f }
}

// WithMaxAlternatives caps the number of alternatives returned.
func WithMaxAlternatives(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxAlternatives = n
		}
	}
}

// DefaultOptions returns the standard policy: threshold 70, floor 50, three alternatives.
func DefaultOptions() Options {
	return Options{
		Threshold:       DefaultThreshold,
		LenientFloor:    DefaultLenientFloor,
		MaxAlternatives: DefaultMaxAlternatives,
	}
}

// Match scores every candidate against query and picks the best one.
//
// Candidates are ranked by descending score; ties keep input order.
// Alternatives are drawn from the ranked list after the accepted match,
// or from its head when nothing is accepted.
func Match(query string, candidates []string, opts ...Option) Result {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return Result{Alternatives: []Scored{}, Outcome: Empty}
	}

	ranked := Rank(query, candidates)
	best := ranked[0]

	switch {
	case best.Score >= cfg.Threshold:
		return accepted(ranked, cfg.MaxAlternatives, Matched)
	case best.Score >= cfg.LenientFloor:
		return accepted(ranked, cfg.MaxAlternatives, Lenient)
	default:
		return Result{
			Score:        0,
			Alternatives: head(ranked, 0, cfg.MaxAlternatives),
			Outcome:      NoMatch,
		}
	}
}

// Rank scores all candidates against query and returns them sorted by
// descending score. The sort is stable.
func Rank(query string, candidates []string) []Scored {
	ranked := make([]Scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = Scored{Name: c, Score: similarity.Score(query, c), Index: i}
	}
	slices.SortStableFunc(ranked, func(a, b Scored) int {
		return b.Score - a.Score
	})
	return ranked
}

func accepted(ranked []Scored, maxAlt int, outcome Outcome) Result {
	best := ranked[0]
	return Result{
		Match:        &best,
		Score:        best.Score,
		Alternatives: head(ranked, 1, maxAlt),
		Outcome:      outcome,
	}
}

// head copies up to n entries of ranked starting at from.
func head(ranked []Scored, from, n int) []Scored {
	if from >= len(ranked) {
		return []Scored{}
	}
	end := min(from+n, len(ranked))
	return slices.Clone(ranked[from:end])
}
