package routing

import "container/heap"

// Strategy selects how the next hub to settle is found.
type Strategy int

const (
	// LinearScan walks every unsettled hub on each step. O(V²), fine for the
	// dozen-hub networks the service ships with.
	LinearScan Strategy = iota

	// Heap keeps a binary heap keyed by (distance, configuration index).
	// Produces the same choices as LinearScan.
	Heap
)

func (s Strategy) String() string {
	switch s {
	case LinearScan:
		return "linear"
	case Heap:
		return "heap"
	default:
		return "unknown"
	}
}

// frontier yields the unsettled hub with the smallest tentative distance.
// Ties go to the hub that comes first in configuration order.
type frontier interface {
	// push records that hub's tentative distance dropped to dist.
	push(hub int, dist int64)
	// pop returns the next hub to settle, or false when no unsettled hub
	// is reachable.
	pop(dist []int64, settled []bool) (int, bool)
}

func newFrontier(s Strategy, n int) frontier {
	if s == Heap {
		return &heapFrontier{pq: make(hubPQ, 0, n)}
	}
	return linearFrontier{}
}

type linearFrontier struct{}

func (linearFrontier) push(int, int64) {}

func (linearFrontier) pop(dist []int64, settled []bool) (int, bool) {
	best, bestDist := -1, Unreachable
	for i, d := range dist {
		if !settled[i] && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

type heapFrontier struct {
	pq hubPQ
}

func (f *heapFrontier) push(hub int, dist int64) {
	heap.Push(&f.pq, hubItem{hub: hub, dist: dist})
}

// pop discards stale entries: hubs already settled, or entries superseded by
// a later, shorter push.
func (f *heapFrontier) pop(dist []int64, settled []bool) (int, bool) {
	for f.pq.Len() > 0 {
		it := heap.Pop(&f.pq).(hubItem)
		if settled[it.hub] || it.dist != dist[it.hub] {
			continue
		}
		return it.hub, true
	}
	return -1, false
}

type hubItem struct {
	hub  int
	dist int64
}

// hubPQ is a min-heap ordered by distance, then configuration index.
type hubPQ []hubItem

func (pq hubPQ) Len() int { return len(pq) }

func (pq hubPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].hub < pq[j].hub
}

func (pq hubPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *hubPQ) Push(x any) { *pq = append(*pq, x.(hubItem)) }

func (pq *hubPQ) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
