// Package routing finds minimum-distance routes between hubs of a
// hubgraph.Graph and derives the distance and travel-time figures shown to
// users.
//
// Router is stateless apart from its read-only graph; concurrent calls to
// Route are safe.
package routing

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/raphaelgruber/pinroute/internal/hubgraph"
)

// Unreachable is the distance reported for a target with no path.
const Unreachable int64 = math.MaxInt64

// ErrUnknownHub is returned when the source or target is not in the graph.
var ErrUnknownHub = errors.New("routing: unknown hub")

// Result is the outcome of a single route search.
//
// When Found is false, Distance is Unreachable and Path holds only the target;
// it does not describe a real route.
type Result struct {
	Path     []string `json:"path"`
	Distance int64    `json:"distance"`
	Found    bool     `json:"found"`
}

// Hops is the number of legs on the path.
func (r Result) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// Options configures a Router.
type Options struct {
	Strategy Strategy
}

// Option is a functional option for New.
type Option func(*Options)

// WithStrategy picks the frontier implementation. Both strategies return
// identical results.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// Router runs Dijkstra searches over a fixed graph.
type Router struct {
	g        *hubgraph.Graph
	strategy Strategy
}

// New returns a Router over g.
func New(g *hubgraph.Graph, opts ...Option) *Router {
	cfg := Options{Strategy: LinearScan}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Router{g: g, strategy: cfg.Strategy}
}

// Graph returns the network the router searches.
func (r *Router) Graph() *hubgraph.Graph { return r.g }

// Route computes the shortest path from source to target.
//
// Hubs are settled in order of tentative distance; ties go to the hub listed
// first in the network configuration, so results are deterministic. The
// search stops as soon as the target is settled or nothing reachable is
// left.
func (r *Router) Route(source, target string) (Result, error) {
	s, t := r.g.Index(source), r.g.Index(target)
	if s < 0 {
		return Result{}, fmt.Errorf("%w: source %q", ErrUnknownHub, source)
	}
	if t < 0 {
		return Result{}, fmt.Errorf("%w: target %q", ErrUnknownHub, target)
	}

	names := r.g.HubNames()
	n := len(names)

	dist := make([]int64, n)
	prev := make([]int, n)
	settled := make([]bool, n)
	for i := range dist {
		dist[i] = Unreachable
		prev[i] = -1
	}

	f := newFrontier(r.strategy, n)
	dist[s] = 0
	f.push(s, 0)

	for {
		cur, ok := f.pop(dist, settled)
		if !ok || cur == t {
			break
		}
		settled[cur] = true

		for to, w := range r.g.Edges(names[cur]) {
			j := r.g.Index(to)
			if settled[j] {
				continue
			}
			if alt := dist[cur] + w; alt < dist[j] {
				dist[j] = alt
				prev[j] = cur
				f.push(j, alt)
			}
		}
	}

	path := []string{}
	for at := t; at >= 0; at = prev[at] {
		path = append(path, names[at])
	}
	slices.Reverse(path)

	return Result{
		Path:     path,
		Distance: dist[t],
		Found:    dist[t] != Unreachable,
	}, nil
}
