package collector

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/gcsim/internal/ctxlog"
	"github.com/specialistvlad/gcsim/internal/heap"
)

// Stats describes a single CollectGarbage call.
type Stats struct {
	// Cycle is the 1-based number of the collection.
	Cycle int
	// Roots is the number of root handles supplied.
	Roots int
	// Marked is the number of distinct live objects reached from the roots,
	// registered or not.
	Marked int
	// Kept is the registry size after sweep.
	Kept int
	// Swept is the number of registry entries removed.
	Swept int
	// Dead is the part of Swept whose objects were already gone.
	Dead int
	// Duration is the wall time of the collection.
	Duration time.Duration
}

// Collector tracks registered objects and reclaims the ones that are not
// reachable from a root set. It is safe for concurrent use; a collection
// excludes every other collector call while it runs.
type Collector struct {
	mu       sync.Mutex
	arena    *heap.Arena
	strategy Strategy
	objects  []heap.Ref
	cycles   int
}

// New creates a collector for objects allocated in arena.
func New(arena *heap.Arena, strategy Strategy) *Collector {
	return &Collector{
		arena:    arena,
		strategy: strategy,
	}
}

// Strategy returns the mark strategy the collector was created with.
func (c *Collector) Strategy() Strategy {
	return c.strategy
}

// Register adds a non-owning registry entry for h. Registering the same
// object twice yields two entries.
func (c *Collector) Register(h *heap.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects = append(c.objects, h.Ref())
}

// CollectGarbage marks everything reachable from roots and removes every
// other entry from the registry. An empty root set reclaims all entries.
func (c *Collector) CollectGarbage(ctx context.Context, roots ...*heap.Handle) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	c.cycles++
	before := len(c.objects)

	logger.Debug("Mark phase started.", "cycle", c.cycles, "roots", len(roots), "strategy", c.strategy.String())
	st := c.mark(roots)
	logger.Debug("Mark phase finished.", "cycle", c.cycles, "marked", len(st.trail))

	dead, unmarked := c.sweep(st)
	logger.Debug("Sweep phase finished.", "cycle", c.cycles, "dead", dead, "unmarked", unmarked, "kept", len(c.objects))

	stats := Stats{
		Cycle:    c.cycles,
		Roots:    len(roots),
		Marked:   len(st.trail),
		Kept:     len(c.objects),
		Swept:    before - len(c.objects),
		Dead:     dead,
		Duration: time.Since(start),
	}
	logger.Info("Collection complete.", "cycle", stats.Cycle, "kept", stats.Kept, "swept", stats.Swept, "duration", stats.Duration)
	return stats
}

// CountObjects returns the current registry size.
func (c *Collector) CountObjects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.objects)
}

// Cycles returns how many collections have run.
func (c *Collector) Cycles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycles
}

// Objects returns the names of registry entries whose objects still exist, in
// registration order.
func (c *Collector) Objects() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.objects))
	for _, ref := range c.objects {
		if name, ok := c.arena.Name(ref); ok {
			names = append(names, name)
		}
	}
	return names
}
