package service_test

import (
	"math"
	"testing"

	"github.com/raphaelgruber/pinroute/internal/hubgraph"
	"github.com/raphaelgruber/pinroute/internal/metrics"
	"github.com/raphaelgruber/pinroute/internal/routing"
	"github.com/raphaelgruber/pinroute/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouteService(t *testing.T, g *hubgraph.Graph, mc *metrics.Collector) *service.RouteService {
	t.Helper()
	svc, err := service.NewRouteService(g, routing.DefaultAverageSpeedKmh, mc)
	require.NoError(t, err)
	return svc
}

func TestPlan_ReferenceRoute(t *testing.T) {
	mc := metrics.NewCollector()
	svc := newRouteService(t, hubgraph.MustDefault(), mc)

	plan, err := svc.Plan(service.RouteRequest{SourceDistrict: "Mumbai", DestinationDistrict: "Nagpur"})
	require.NoError(t, err)
	assert.True(t, plan.Found)
	assert.False(t, plan.SameHub)
	assert.Equal(t, service.Endpoint{Hub: "Mumbai GPO", District: "Mumbai"}, plan.Source)
	assert.Equal(t, service.Endpoint{Hub: "Nagpur GPO", District: "Nagpur"}, plan.Destination)
	assert.Equal(t, int64(815), plan.Summary.TotalDistance)
	assert.Equal(t, 3, plan.Summary.Hops)
	assert.Equal(t, int64(1223), plan.Summary.EstimatedMinutes)

	hubs := make([]string, len(plan.Summary.Legs))
	for i, l := range plan.Summary.Legs {
		hubs[i] = l.Hub
	}
	assert.Equal(t, []string{"Mumbai GPO", "Nashik Road", "Aurangabad GPO", "Nagpur GPO"}, hubs)
	assert.Equal(t, int64(1), mc.Snapshot().Route.Count)
}

func TestPlan_SameHub(t *testing.T) {
	svc := newRouteService(t, hubgraph.MustDefault(), nil)

	plan, err := svc.Plan(service.RouteRequest{SourceDistrict: "Wardha", DestinationDistrict: "Wardha"})
	require.NoError(t, err)
	assert.True(t, plan.Found)
	assert.True(t, plan.SameHub)
	assert.Equal(t, service.MsgSameHub, plan.Message)
	require.Len(t, plan.Summary.Legs, 1)
	assert.Equal(t, "Wardha HO", plan.Summary.Legs[0].Hub)
	assert.Zero(t, plan.Summary.TotalDistance)
	assert.Zero(t, plan.Summary.EstimatedMinutes)
}

func TestPlan_UnmappedDistrict(t *testing.T) {
	svc := newRouteService(t, hubgraph.MustDefault(), nil)

	_, err := svc.Plan(service.RouteRequest{SourceDistrict: "Goa", DestinationDistrict: "Nagpur"})
	require.ErrorIs(t, err, service.ErrUnmappedDistrict)
	assert.Contains(t, err.Error(), `"Goa"`)

	_, err = svc.Plan(service.RouteRequest{SourceDistrict: "mumbai", DestinationDistrict: "Nagpur"})
	assert.ErrorIs(t, err, service.ErrUnmappedDistrict, "district lookup is exact")

	assert.Contains(t, svc.Districts(), "Mumbai")
}

func TestPlan_Unreachable(t *testing.T) {
	g, err := hubgraph.New(hubgraph.Network{
		Hubs: []hubgraph.Hub{
			{Name: "A", District: "Alpha", Connections: []hubgraph.Connection{{To: "B", Distance: 10}}},
			{Name: "B", District: "Beta", Connections: []hubgraph.Connection{{To: "A", Distance: 10}}},
			{Name: "C", District: "Gamma"},
		},
		Districts: []hubgraph.DistrictHub{
			{District: "Alpha", Hub: "A"},
			{District: "Gamma", Hub: "C"},
		},
	})
	require.NoError(t, err)
	mc := metrics.NewCollector()
	svc := newRouteService(t, g, mc)

	plan, err := svc.Plan(service.RouteRequest{SourceDistrict: "Alpha", DestinationDistrict: "Gamma"})
	require.NoError(t, err)
	assert.False(t, plan.Found)
	assert.Equal(t, service.MsgNoRoute, plan.Message)
	assert.Equal(t, int64(1), mc.Snapshot().Counters["route_unreachable"])
}

func TestNewRouteService_BadSpeed(t *testing.T) {
	for _, speed := range []float64{0, -40, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := service.NewRouteService(hubgraph.MustDefault(), speed, nil)
		assert.ErrorIs(t, err, routing.ErrBadSpeed, "speed %v", speed)
	}
}

func TestHubs(t *testing.T) {
	svc := newRouteService(t, hubgraph.MustDefault(), nil)

	hubs := svc.Hubs()
	require.Len(t, hubs, 12)
	assert.Equal(t, service.HubInfo{Name: "Mumbai GPO", District: "Mumbai", Connections: 2}, hubs[0])
	assert.Equal(t, service.HubInfo{Name: "Pune GPO", District: "Pune", Connections: 4}, hubs[1])
}
