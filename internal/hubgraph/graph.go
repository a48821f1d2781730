// Package hubgraph holds the immutable hub network used for routing:
// hub offices, their direct road connections and the district → hub index.
//
// A Graph is built once with New (or Load / Default), validated up front and
// never mutated afterwards, so it is safe to share between goroutines.
package hubgraph

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
)

// Connection is a directed road link to a neighbouring hub.
type Connection struct {
	To       string `yaml:"to" json:"to"`
	Distance int64  `yaml:"distance" json:"distance"`
}

// Hub is a regional office acting as a routing node.
type Hub struct {
	Name        string       `yaml:"name" json:"name"`
	District    string       `yaml:"district" json:"district"`
	Connections []Connection `yaml:"connections" json:"connections"`
}

// DistrictHub maps a district to the hub that serves it.
type DistrictHub struct {
	District string `yaml:"district" json:"district"`
	Hub      string `yaml:"hub" json:"hub"`
}

// Network is the authored description a Graph is built from.
type Network struct {
	Hubs      []Hub         `yaml:"hubs" json:"hubs"`
	Districts []DistrictHub `yaml:"districts" json:"districts"`
}

// Graph is a validated, read-only hub network.
type Graph struct {
	order     []string                    // hub names in configuration order
	index     map[string]int              // hub name → position in order
	hubs      map[string]Hub              // hub name → record
	adj       map[string]map[string]int64 // from → to → distance
	districts map[string]string           // district → hub name
	dOrder    []string                    // districts in configuration order
}

// MaxDistance is the largest connection distance a network of hubs hubs
// accepts. Any simple path then sums to less than math.MaxInt64.
func MaxDistance(hubs int) int64 {
	if hubs < 1 {
		return math.MaxInt64
	}
	return math.MaxInt64 / int64(hubs)
}

// New validates n and builds a Graph from it. All integrity defects found are
// reported together; every one of them matches ErrIntegrity.
func New(n Network) (*Graph, error) {
	g := &Graph{
		order:     make([]string, 0, len(n.Hubs)),
		index:     make(map[string]int, len(n.Hubs)),
		hubs:      make(map[string]Hub, len(n.Hubs)),
		adj:       make(map[string]map[string]int64, len(n.Hubs)),
		districts: make(map[string]string, len(n.Districts)),
	}

	var errs []error

	for _, h := range n.Hubs {
		if h.Name == "" {
			errs = append(errs, ErrEmptyHubName)
			continue
		}
		if _, dup := g.index[h.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateHub, h.Name))
			continue
		}
		g.index[h.Name] = len(g.order)
		g.order = append(g.order, h.Name)
		h.Connections = slices.Clone(h.Connections)
		g.hubs[h.Name] = h
	}

	limit := MaxDistance(len(g.order))
	for _, name := range g.order {
		h := g.hubs[name]
		edges := make(map[string]int64, len(h.Connections))
		for _, c := range h.Connections {
			switch {
			case c.To == name:
				errs = append(errs, fmt.Errorf("%w: %q", ErrSelfLoop, name))
			case !g.has(c.To):
				errs = append(errs, fmt.Errorf("%w: %q → %q", ErrDanglingNeighbor, name, c.To))
			case c.Distance <= 0:
				errs = append(errs, fmt.Errorf("%w: %q → %q distance=%d", ErrNonPositiveWeight, name, c.To, c.Distance))
			case c.Distance > limit:
				errs = append(errs, fmt.Errorf("%w: %q → %q distance=%d limit=%d", ErrWeightTooLarge, name, c.To, c.Distance, limit))
			default:
				if _, dup := edges[c.To]; dup {
					errs = append(errs, fmt.Errorf("%w: %q → %q", ErrDuplicateEdge, name, c.To))
					continue
				}
				edges[c.To] = c.Distance
			}
		}
		g.adj[name] = edges
	}

	// A missing return leg is a one-way road; a return leg with another
	// distance is an authoring error. Each pair is checked once.
	for _, from := range g.order {
		for _, c := range g.hubs[from].Connections {
			fwd, ok := g.adj[from][c.To]
			if !ok || g.index[c.To] < g.index[from] {
				continue
			}
			if back, ok := g.adj[c.To][from]; ok && back != fwd {
				errs = append(errs, fmt.Errorf("%w: %q → %q is %d, %q → %q is %d",
					ErrAsymmetricEdge, from, c.To, fwd, c.To, from, back))
			}
		}
	}

	for _, d := range n.Districts {
		if _, dup := g.districts[d.District]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateDistrict, d.District))
			continue
		}
		if !g.has(d.Hub) {
			errs = append(errs, fmt.Errorf("%w: %q → %q", ErrUnknownDistrictHub, d.District, d.Hub))
			continue
		}
		g.districts[d.District] = d.Hub
		g.dOrder = append(g.dOrder, d.District)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

func (g *Graph) has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Has reports whether name is a hub in the network.
func (g *Graph) Has(name string) bool { return g.has(name) }

// Len returns the number of hubs.
func (g *Graph) Len() int { return len(g.order) }

// HubNames returns all hub names in configuration order.
func (g *Graph) HubNames() []string { return slices.Clone(g.order) }

// Index returns the configuration position of a hub, or -1 if unknown.
func (g *Graph) Index(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	return -1
}

// Hub returns the record for name.
func (g *Graph) Hub(name string) (Hub, bool) {
	h, ok := g.hubs[name]
	if !ok {
		return Hub{}, false
	}
	h.Connections = slices.Clone(h.Connections)
	return h, true
}

// Hubs returns copies of all hub records in configuration order.
func (g *Graph) Hubs() []Hub {
	out := make([]Hub, 0, len(g.order))
	for _, name := range g.order {
		h, _ := g.Hub(name)
		out = append(out, h)
	}
	return out
}

// Neighbors returns a copy of the outgoing connections of hub.
// The map is nil for unknown hubs.
func (g *Graph) Neighbors(hub string) map[string]int64 {
	edges, ok := g.adj[hub]
	if !ok {
		return nil
	}
	return maps.Clone(edges)
}

// Edges iterates the outgoing connections of hub in configuration order
// without copying.
func (g *Graph) Edges(hub string) iter.Seq2[string, int64] {
	return func(yield func(string, int64) bool) {
		edges := g.adj[hub]
		for _, c := range g.hubs[hub].Connections {
			w, ok := edges[c.To]
			if !ok {
				continue
			}
			if !yield(c.To, w) {
				return
			}
		}
	}
}

// Weight returns the distance of the direct connection from → to.
func (g *Graph) Weight(from, to string) (int64, bool) {
	w, ok := g.adj[from][to]
	return w, ok
}

// District returns the district label of hub.
func (g *Graph) District(hub string) (string, bool) {
	h, ok := g.hubs[hub]
	return h.District, ok
}

// HubForDistrict returns the hub serving district.
func (g *Graph) HubForDistrict(district string) (string, bool) {
	hub, ok := g.districts[district]
	return hub, ok
}

// Districts returns the served districts in configuration order.
func (g *Graph) Districts() []string { return slices.Clone(g.dOrder) }
