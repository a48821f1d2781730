package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raphaelgruber/pinroute/internal/hubgraph"
	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/routing"
)

// ErrUnmappedDistrict is returned when a district has no hub.
var ErrUnmappedDistrict = errors.New("could not determine hubs for given districts")

// Messages returned with a RoutePlan.
const (
	MsgSameHub = "Source and destination are in the same hub!"
	MsgNoRoute = "No route found between these hubs"
)

// RouteRequest names the districts to route between.
type RouteRequest struct {
	SourceDistrict      string `json:"sourceDistrict"`
	DestinationDistrict string `json:"destinationDistrict"`
}

// Endpoint is a route end: the district asked for and the hub serving it.
type Endpoint struct {
	Hub      string `json:"hub"`
	District string `json:"district"`
}

// RoutePlan is a planned hub-to-hub route.
// Summary is only meaningful when Found is true.
type RoutePlan struct {
	Source      Endpoint
	Destination Endpoint
	Found       bool
	SameHub     bool
	Summary     routing.Summary
	Message     string
}

// HubInfo describes one hub for listings.
type HubInfo struct {
	Name        string `json:"name"`
	District    string `json:"district"`
	Connections int    `json:"connections"`
}

// RouteService plans routes between districts over a fixed hub network.
type RouteService struct {
	graph   *hubgraph.Graph
	router  *routing.Router
	speed   float64
	metrics *metrics.Collector
}

// NewRouteService creates a route service over g. speedKmh is the average
// travel speed used for time estimates. mc may be nil.
func NewRouteService(g *hubgraph.Graph, speedKmh float64, mc *metrics.Collector, opts ...routing.Option) (*RouteService, error) {
	if !routing.ValidSpeed(speedKmh) {
		return nil, fmt.Errorf("%w: %v", routing.ErrBadSpeed, speedKmh)
	}
	return &RouteService{
		graph:   g,
		router:  routing.New(g, opts...),
		speed:   speedKmh,
		metrics: mc,
	}, nil
}

// Districts returns the districts that have a hub, in configuration order.
func (s *RouteService) Districts() []string {
	return s.graph.Districts()
}

// Plan finds the shortest hub route between the hubs serving the two
// districts. District names must match exactly. When both districts share a
// hub no search is run.
func (s *RouteService) Plan(req RouteRequest) (RoutePlan, error) {
	src := strings.TrimSpace(req.SourceDistrict)
	dst := strings.TrimSpace(req.DestinationDistrict)

	srcHub, okSrc := s.graph.HubForDistrict(src)
	dstHub, okDst := s.graph.HubForDistrict(dst)
	if !okSrc || !okDst {
		var missing []string
		if !okSrc {
			missing = append(missing, fmt.Sprintf("%q", src))
		}
		if !okDst {
			missing = append(missing, fmt.Sprintf("%q", dst))
		}
		return RoutePlan{}, fmt.Errorf("%w: %s", ErrUnmappedDistrict, strings.Join(missing, ", "))
	}

	plan := RoutePlan{
		Source:      Endpoint{Hub: srcHub, District: src},
		Destination: Endpoint{Hub: dstHub, District: dst},
	}

	if srcHub == dstHub {
		s.metrics.Inc("route_same_hub")
		district, _ := s.graph.District(srcHub)
		plan.Found = true
		plan.SameHub = true
		plan.Summary = routing.Summary{Legs: []routing.Leg{{Step: 1, Hub: srcHub, District: district}}}
		plan.Message = MsgSameHub
		return plan, nil
	}

	start := time.Now()
	res, err := s.router.Route(srcHub, dstHub)
	s.metrics.Since(metrics.OpRoute, start)
	if err != nil {
		return RoutePlan{}, fmt.Errorf("plan route: %w", err)
	}

	if !res.Found {
		s.metrics.Inc("route_unreachable")
		plan.Message = MsgNoRoute
		return plan, nil
	}

	sum, err := routing.Summarize(s.graph, res, s.speed)
	if err != nil {
		return RoutePlan{}, fmt.Errorf("plan route: %w", err)
	}
	plan.Found = true
	plan.Summary = sum
	return plan, nil
}

// Hubs lists every hub with its district and outgoing connection count.
func (s *RouteService) Hubs() []HubInfo {
	hubs := s.graph.Hubs()
	out := make([]HubInfo, len(hubs))
	for i, h := range hubs {
		out[i] = HubInfo{Name: h.Name, District: h.District, Connections: len(h.Connections)}
	}
	return out
}
