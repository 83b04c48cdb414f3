package collector_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/specialistvlad/gcsim/internal/collector"
	"github.com/specialistvlad/gcsim/internal/heap"
	"github.com/specialistvlad/gcsim/internal/testutil"
	"github.com/stretchr/testify/require"
)

// randomHeap is a random object graph together with a plain adjacency list
// used to compute the expected survivors independently of the collector.
type randomHeap struct {
	handles []*heap.Handle
	edges   [][]int
	alive   []bool
}

func buildRandomHeap(rng *rand.Rand, a *heap.Arena, c *collector.Collector) *randomHeap {
	n := 1 + rng.Intn(40)
	rh := &randomHeap{
		handles: make([]*heap.Handle, n),
		edges:   make([][]int, n),
		alive:   make([]bool, n),
	}
	for i := range n {
		rh.handles[i] = testutil.NewNode(a, c, fmt.Sprintf("o%d", i))
		rh.alive[i] = true
	}
	for i := range n {
		for range rng.Intn(4) {
			j := rng.Intn(n)
			rh.handles[i].AddChild(rh.handles[j])
			rh.edges[i] = append(rh.edges[i], j)
		}
	}
	// Drop host ownership of a few objects.
	for i := range n {
		if rng.Intn(6) == 0 {
			rh.handles[i].Release()
			rh.alive[i] = false
		}
	}
	return rh
}

// expectedSurvivors walks the adjacency list recursively, which is fine for
// the small graphs generated here.
func (rh *randomHeap) expectedSurvivors(roots []int) int {
	seen := make([]bool, len(rh.handles))
	var walk func(i int)
	walk = func(i int) {
		if seen[i] || !rh.alive[i] {
			return
		}
		seen[i] = true
		for _, j := range rh.edges[i] {
			walk(j)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	count := 0
	for _, s := range seen {
		if s {
			count++
		}
	}
	return count
}

// Property: after a collection the registry holds exactly the live objects
// reachable from the roots, for every strategy.
func TestPropertyReachabilitySoundness(t *testing.T) {
	for _, s := range testutil.Strategies {
		t.Run(s.String(), func(t *testing.T) {
			for seed := range 200 {
				rng := rand.New(rand.NewSource(int64(seed)))
				a := heap.NewArena()
				c := collector.New(a, s)
				rh := buildRandomHeap(rng, a, c)

				// Run a few cycles with different roots and edge removals in
				// between, checking for stale state across cycles.
				for cycle := range 3 {
					var roots []int
					var rootHandles []*heap.Handle
					for i := range rh.handles {
						if rng.Intn(8) == 0 {
							roots = append(roots, i)
							rootHandles = append(rootHandles, rh.handles[i])
						}
					}

					c.CollectGarbage(context.Background(), rootHandles...)
					expected := rh.expectedSurvivors(roots)
					require.Equal(t, expected, c.CountObjects(), "seed %d cycle %d", seed, cycle)

					// A second collection with the same roots changes nothing.
					c.CollectGarbage(context.Background(), rootHandles...)
					require.Equal(t, expected, c.CountObjects(), "seed %d cycle %d (repeat)", seed, cycle)

					// Reset the registry so the next cycle starts from every
					// live object again.
					c.CollectGarbage(context.Background())
					for i, h := range rh.handles {
						if rh.alive[i] {
							c.Register(h)
						}
					}

					if i := rng.Intn(len(rh.handles)); len(rh.edges[i]) > 0 {
						j := rh.edges[i][0]
						rh.handles[i].RemoveChild(rh.handles[j])
						rh.edges[i] = without(rh.edges[i], j)
					}
				}
			}
		})
	}
}

func without(xs []int, v int) []int {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
