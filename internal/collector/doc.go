// Package collector implements a stop-the-world mark-and-sweep collector over
// a heap.Arena.
//
// # Registry
//
// The Collector keeps a registry with one non-owning entry per Register call.
// The registry is a liveness ledger, not an owner: an entry never keeps its
// object alive.
//
// # Collection
//
// CollectGarbage runs two phases while holding the collector lock:
//
//  1. Mark: an iterative, stack based traversal starting from every root at
//     once. Each object is visited at most once, which makes cycles, shared
//     subgraphs and duplicate edges harmless. Edges to objects that are gone
//     are skipped.
//  2. Sweep: the registry is filtered, keeping an entry only if its object
//     still exists and was marked.
//
// Two interchangeable mark strategies are available. MarkSet records visited
// identities in a set rebuilt for every cycle. MarkBits sets the per-object
// mark bit and clears it again at the end of sweep for every object marked in
// the cycle, registered or not; skipping that reset would leave stale marks
// that make garbage look reachable in the next cycle.
package collector
