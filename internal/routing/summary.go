package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/raphaelgruber/pinroute/internal/hubgraph"
)

// DefaultAverageSpeedKmh is the assumed average hub-to-hub travel speed.
// It is a modelling constant, not a measurement.
const DefaultAverageSpeedKmh = 40.0

var (
	// ErrNoRoute is returned by Summarize for a Result with Found == false.
	ErrNoRoute = errors.New("routing: no route between hubs")

	// ErrBadSpeed is returned when the average speed is not a finite positive number.
	ErrBadSpeed = errors.New("routing: average speed must be positive")
)

// Leg is one hub on a route. DistanceFromPrevious is nil for the first hub.
type Leg struct {
	Step                 int    `json:"stepNumber"`
	Hub                  string `json:"hubName"`
	District             string `json:"district"`
	DistanceFromPrevious *int64 `json:"distanceFromPrevious,omitempty"`
}

// Summary is a found route with per-leg detail and derived figures.
type Summary struct {
	Legs             []Leg `json:"path"`
	TotalDistance    int64 `json:"totalDistance"`
	Hops             int   `json:"numberOfHops"`
	EstimatedMinutes int64 `json:"estimatedTime"`
}

// ValidSpeed reports whether speedKmh is a finite, positive speed.
func ValidSpeed(speedKmh float64) bool {
	return speedKmh > 0 && !math.IsInf(speedKmh, 0)
}

// EstimatedMinutes converts a distance to travel minutes at speedKmh,
// rounded to the nearest minute.
func EstimatedMinutes(distance int64, speedKmh float64) int64 {
	return int64(math.Round(float64(distance) / speedKmh * 60))
}

// Summarize expands res into legs using the distances in g and computes the
// totals. res must come from a Router over g.
func Summarize(g *hubgraph.Graph, res Result, speedKmh float64) (Summary, error) {
	if !res.Found {
		return Summary{}, ErrNoRoute
	}
	if !ValidSpeed(speedKmh) {
		return Summary{}, fmt.Errorf("%w: %v", ErrBadSpeed, speedKmh)
	}

	legs := make([]Leg, len(res.Path))
	for i, hub := range res.Path {
		district, _ := g.District(hub)
		legs[i] = Leg{Step: i + 1, Hub: hub, District: district}
		if i == 0 {
			continue
		}
		w, ok := g.Weight(res.Path[i-1], hub)
		if !ok {
			return Summary{}, fmt.Errorf("%w: %q → %q", hubgraph.ErrDanglingNeighbor, res.Path[i-1], hub)
		}
		legs[i].DistanceFromPrevious = &w
	}

	return Summary{
		Legs:             legs,
		TotalDistance:    res.Distance,
		Hops:             res.Hops(),
		EstimatedMinutes: EstimatedMinutes(res.Distance, speedKmh),
	}, nil
}
