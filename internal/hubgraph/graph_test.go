package hubgraph

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() Network {
	return Network{
		Hubs: []Hub{
			{Name: "A", District: "Alpha", Connections: []Connection{{To: "B", Distance: 1}, {To: "C", Distance: 5}}},
			{Name: "B", District: "Beta", Connections: []Connection{{To: "A", Distance: 1}, {To: "C", Distance: 2}}},
			{Name: "C", District: "Gamma", Connections: []Connection{{To: "A", Distance: 5}, {To: "B", Distance: 2}}},
		},
		Districts: []DistrictHub{
			{District: "Alpha", Hub: "A"},
			{District: "Beta", Hub: "B"},
		},
	}
}

func TestNew_Triangle(t *testing.T) {
	g, err := New(triangle())
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"A", "B", "C"}, g.HubNames())
	assert.Equal(t, map[string]int64{"B": 1, "C": 5}, g.Neighbors("A"))
	assert.Nil(t, g.Neighbors("Z"))

	w, ok := g.Weight("B", "C")
	assert.True(t, ok)
	assert.Equal(t, int64(2), w)

	d, ok := g.District("C")
	assert.True(t, ok)
	assert.Equal(t, "Gamma", d)

	hub, ok := g.HubForDistrict("Beta")
	assert.True(t, ok)
	assert.Equal(t, "B", hub)

	_, ok = g.HubForDistrict("Gamma")
	assert.False(t, ok, "unserved district")
	assert.Equal(t, []string{"Alpha", "Beta"}, g.Districts())
	assert.Equal(t, 2, g.Index("C"))
	assert.Equal(t, -1, g.Index("Z"))
}

func TestGraph_ReturnsCopies(t *testing.T) {
	g, err := New(triangle())
	require.NoError(t, err)

	g.Neighbors("A")["B"] = 99
	names := g.HubNames()
	names[0] = "mutated"
	h, _ := g.Hub("A")
	h.Connections[0].Distance = 42

	w, _ := g.Weight("A", "B")
	assert.Equal(t, int64(1), w)
	assert.Equal(t, "A", g.HubNames()[0])
	h, _ = g.Hub("A")
	assert.Equal(t, int64(1), h.Connections[0].Distance)
}

func TestGraph_Edges(t *testing.T) {
	g, err := New(triangle())
	require.NoError(t, err)

	var got []string
	for to, w := range g.Edges("A") {
		got = append(got, to)
		assert.Positive(t, w)
	}
	assert.Equal(t, []string{"B", "C"}, got)

	for range g.Edges("missing") {
		t.Fatal("unknown hub must have no edges")
	}
}

func TestNew_OneWayConnectionAllowed(t *testing.T) {
	n := Network{Hubs: []Hub{
		{Name: "A", Connections: []Connection{{To: "B", Distance: 3}}},
		{Name: "B"},
	}}
	g, err := New(n)
	require.NoError(t, err)

	_, ok := g.Weight("B", "A")
	assert.False(t, ok)
}

func TestNew_IntegrityErrors(t *testing.T) {
	tests := []struct {
		name string
		net  Network
		want error
	}{
		{
			name: "empty hub name",
			net:  Network{Hubs: []Hub{{Name: ""}}},
			want: ErrEmptyHubName,
		},
		{
			name: "duplicate hub",
			net:  Network{Hubs: []Hub{{Name: "A"}, {Name: "A"}}},
			want: ErrDuplicateHub,
		},
		{
			name: "dangling neighbor",
			net:  Network{Hubs: []Hub{{Name: "A", Connections: []Connection{{To: "Nowhere", Distance: 4}}}}},
			want: ErrDanglingNeighbor,
		},
		{
			name: "zero distance",
			net: Network{Hubs: []Hub{
				{Name: "A", Connections: []Connection{{To: "B", Distance: 0}}},
				{Name: "B"},
			}},
			want: ErrNonPositiveWeight,
		},
		{
			name: "negative distance",
			net: Network{Hubs: []Hub{
				{Name: "A", Connections: []Connection{{To: "B", Distance: -7}}},
				{Name: "B"},
			}},
			want: ErrNonPositiveWeight,
		},
		{
			name: "distance above limit",
			net: Network{Hubs: []Hub{
				{Name: "A", Connections: []Connection{{To: "B", Distance: math.MaxInt64 - 1}}},
				{Name: "B", Connections: []Connection{{To: "C", Distance: 5}}},
				{Name: "C"},
			}},
			want: ErrWeightTooLarge,
		},
		{
			name: "self loop",
			net:  Network{Hubs: []Hub{{Name: "A", Connections: []Connection{{To: "A", Distance: 1}}}}},
			want: ErrSelfLoop,
		},
		{
			name: "duplicate edge",
			net: Network{Hubs: []Hub{
				{Name: "A", Connections: []Connection{{To: "B", Distance: 1}, {To: "B", Distance: 1}}},
				{Name: "B"},
			}},
			want: ErrDuplicateEdge,
		},
		{
			name: "asymmetric back edge",
			net: Network{Hubs: []Hub{
				{Name: "A", Connections: []Connection{{To: "B", Distance: 10}}},
				{Name: "B", Connections: []Connection{{To: "A", Distance: 12}}},
			}},
			want: ErrAsymmetricEdge,
		},
		{
			name: "district to unknown hub",
			net:  Network{Hubs: []Hub{{Name: "A"}}, Districts: []DistrictHub{{District: "X", Hub: "B"}}},
			want: ErrUnknownDistrictHub,
		},
		{
			name: "district mapped twice",
			net: Network{
				Hubs:      []Hub{{Name: "A"}, {Name: "B"}},
				Districts: []DistrictHub{{District: "X", Hub: "A"}, {District: "X", Hub: "B"}},
			},
			want: ErrDuplicateDistrict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.net)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrIntegrity)
		})
	}
}

func TestNew_ReportsAllDefects(t *testing.T) {
	n := Network{Hubs: []Hub{
		{Name: "A", Connections: []Connection{{To: "Z", Distance: 1}, {To: "B", Distance: -1}}},
		{Name: "B"},
	}}
	_, err := New(n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingNeighbor))
	assert.True(t, errors.Is(err, ErrNonPositiveWeight))
}

func TestMaxDistance(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), MaxDistance(0))
	assert.Equal(t, int64(math.MaxInt64/3), MaxDistance(3))

	limit := MaxDistance(2)
	_, err := New(Network{Hubs: []Hub{
		{Name: "A", Connections: []Connection{{To: "B", Distance: limit}}},
		{Name: "B"},
	}})
	assert.NoError(t, err)
}

func TestDefault(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 12, g.Len())
	assert.Equal(t, "Mumbai GPO", g.HubNames()[0])
	assert.Len(t, g.Districts(), 12)

	hub, ok := g.HubForDistrict("Nashik")
	require.True(t, ok)
	assert.Equal(t, "Nashik Road", hub)

	w, ok := g.Weight("Aurangabad GPO", "Nagpur GPO")
	require.True(t, ok)
	assert.Equal(t, int64(450), w)

	// Authored as one-way legs.
	_, ok = g.Weight("Aurangabad GPO", "Jalgaon HO")
	assert.False(t, ok)
	_, ok = g.Weight("Pune GPO", "Ahmednagar HO")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	src := `
hubs:
  - name: North
    district: Upper
    connections:
      - {to: South, distance: 30}
  - name: South
    district: Lower
    connections:
      - {to: North, distance: 30}
districts:
  - {district: Upper, hub: North}
`
	g, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, g.HubNames())

	_, err = Load(strings.NewReader("hubs:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err, "unknown fields are rejected")

	_, err = Load(strings.NewReader(`
hubs:
  - name: A
    connections:
      - {to: B, distance: 3}
  - name: B
    connections:
      - {to: A, distance: 4}
`))
	assert.ErrorIs(t, err, ErrAsymmetricEdge)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/network.yaml")
	assert.Error(t, err)
}
